package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timelapse/internal/build"
	"timelapse/internal/config"
	"timelapse/internal/history"
	"timelapse/internal/services/ffmpeg"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var frameRate int
	var fontPath string
	var preset string
	var verify bool

	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "build <output>",
		Short: "Build a timelapse video from its capture directory",
		Long: `Build stitches the frames in a capture directory into an H.264 video.

The source directory is derived from the output name: "capture-x.mp4" is
built from the frames in "capture-x/". The output is overwritten
unconditionally if it already exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			// Flags win over environment and file values.
			if cmd.Flags().Changed("frame-rate") {
				cfg.Encoder.FrameRate = frameRate
			}
			if cmd.Flags().Changed("font") {
				cfg.Encoder.FontPath = fontPath
			}
			if cmd.Flags().Changed("preset") {
				cfg.Encoder.Preset = preset
			}
			if cfg.Encoder.FrameRate <= 0 {
				return fmt.Errorf("frame rate must be a positive integer, got %d", cfg.Encoder.FrameRate)
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			encoder := ffmpeg.NewCLI(
				ffmpeg.WithBinary(cfg.FFmpegBinary()),
				ffmpeg.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			)

			opts := []build.Option{}
			if verify {
				opts = append(opts, build.WithVerification())
			}
			engine := build.New(cfg, encoder, store, logger, opts...)

			result, err := engine.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Built %s from %d frame(s) in %s\n",
				result.OutputPath, result.FrameCount, result.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().IntVar(&frameRate, "frame-rate", defaults.Encoder.FrameRate, "Frames per second sampled from the still sequence")
	cmd.Flags().StringVar(&fontPath, "font", defaults.Encoder.FontPath, "Font file for the frame counter overlay (empty disables it)")
	cmd.Flags().StringVar(&preset, "preset", defaults.Encoder.Preset, "Encoder speed/quality preset (passed through to ffmpeg)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify the produced file with ffprobe after encoding")

	return cmd
}
