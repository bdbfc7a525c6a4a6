package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"timelapse/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent build attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit, failedOnly)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No build history.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				detail := rec.ErrorKind
				if detail == "" {
					detail = "-"
				}
				rows = append(rows, []string{
					strconv.FormatInt(rec.ID, 10),
					rec.Output,
					strconv.Itoa(rec.FrameCount),
					strconv.Itoa(rec.FrameRate),
					rec.Preset,
					statusCell(string(rec.Status), cmd.OutOrStdout()),
					rec.Duration().Round(time.Millisecond).String(),
					rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
					detail,
				})
			}

			table := renderTable(
				[]string{"ID", "Output", "Frames", "FPS", "Preset", "Status", "Duration", "Started", "Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of attempts to show")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only failed attempts")

	cmd.AddCommand(newHistoryExportCommand(ctx))

	return cmd
}

func newHistoryExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <destination>",
		Short: "Copy the history database to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ExportTo(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
			return nil
		},
	}
}
