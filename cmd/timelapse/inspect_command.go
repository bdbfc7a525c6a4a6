package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"timelapse/internal/media/ffprobe"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <video>",
		Short: "Inspect a produced video with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return err
			}

			rows := [][]string{
				{"File", result.Format.Filename},
				{"Container", result.Format.FormatName},
				{"Duration", formatSeconds(result.DurationSeconds())},
				{"Size", formatBytes(result.SizeBytes())},
				{"Video streams", strconv.Itoa(result.VideoStreamCount())},
			}
			if stream := result.VideoStream(); stream != nil {
				rows = append(rows,
					[]string{"Codec", stream.CodecName},
					[]string{"Resolution", fmt.Sprintf("%dx%d", stream.Width, stream.Height)},
					[]string{"Pixel format", stream.PixFmt},
					[]string{"Frames", strconv.FormatInt(result.FrameCount(), 10)},
				)
			}

			table := renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func formatSeconds(seconds float64) string {
	if math.IsNaN(seconds) {
		return "unknown"
	}
	return fmt.Sprintf("%.2fs", seconds)
}

func formatBytes(size int64) string {
	if size <= 0 {
		return "unknown"
	}
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
