package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"timelapse/internal/capture"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List capture directories and their build state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sessions, err := capture.ListSessions(cfg.Paths.CaptureRoot, cfg.Capture.DirPrefix)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No capture directories found in %s (prefix %q).\n",
					cfg.Paths.CaptureRoot, cfg.Capture.DirPrefix)
				return nil
			}

			rows := make([][]string, 0, len(sessions))
			for _, session := range sessions {
				frames, err := capture.Frames(session.Path, cfg.Capture.FrameGlob)
				if err != nil {
					return err
				}
				outputName := session.OutputName(cfg.Encoder.VideoExt)
				built := "no"
				if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, outputName)); err == nil {
					built = "yes"
				}
				rows = append(rows, []string{session.Name, strconv.Itoa(len(frames)), outputName, built})
			}

			table := renderTable(
				[]string{"Capture", "Frames", "Output", "Built"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
