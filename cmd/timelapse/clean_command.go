package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"timelapse/internal/fileutil"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all generated video outputs",
		Long: `Clean deletes every video file in the output directory matching the
configured extension. Capture directories and their frames are never touched.
Removing zero files is success.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			removed, err := fileutil.RemoveMatching(cfg.Paths.OutputDir, "*"+cfg.Encoder.VideoExt)
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clean.")
				return nil
			}
			for _, name := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d file(s).\n", len(removed))
			return nil
		},
	}
}
