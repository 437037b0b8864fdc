package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"zenfeeds/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent runs, or the failures of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cmd.Context(), cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return showRun(cmd, store, strings.TrimSpace(args[0]), asJSON)
			}

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					humanize.Time(run.StartedAt),
					run.Mode,
					run.Producer,
					string(run.Status),
					fmt.Sprintf("%d", run.AddedCount),
					fmt.Sprintf("%d", run.FailedCount),
					writtenLabel(run),
					run.Duration().Round(time.Second).String(),
				})
			}
			fmt.Fprintln(out, renderTable([]tableColumn{
				{Title: "Run"},
				{Title: "Started"},
				{Title: "Mode"},
				{Title: "Producer"},
				{Title: "Status"},
				{Title: "Added", Numeric: true},
				{Title: "Failed", Numeric: true},
				{Title: "Written"},
				{Title: "Took", Numeric: true},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func showRun(cmd *cobra.Command, store *history.Store, prefix string, asJSON bool) error {
	id, err := store.Resolve(cmd.Context(), prefix)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("run %s not found", prefix)
	}
	run, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}
	if asJSON {
		return writeJSON(cmd, run)
	}

	out := cmd.OutOrStdout()
	lines := renderSectionHeader("Run "+run.ID, false)
	lines = append(lines,
		renderField("Started", fmt.Sprintf("%s (%s)", run.StartedAt.Local().Format(time.DateTime), humanize.Time(run.StartedAt))),
		renderField("Mode", run.Mode),
		renderField("Producer", run.Producer),
		renderField("Status", string(run.Status)),
		renderField("Catalog", fmt.Sprintf("%d records, %d already in feed", run.CatalogCount, run.ExistingCount)),
		renderField("Added", fmt.Sprintf("%d", run.AddedCount)),
		renderField("Written", writtenLabel(*run)),
	)
	if run.Error != "" {
		lines = append(lines, renderField("Error", run.Error))
	}
	if len(run.Failures) > 0 {
		lines = append(lines, "", "Failures:")
		for _, failure := range run.Failures {
			lines = append(lines, fmt.Sprintf("%s%s [%s] %s", statusIndent, failure.ItemID, failure.Kind, failure.Message))
		}
	}
	fmt.Fprintln(out, strings.Join(lines, "\n"))
	return nil
}

func writtenLabel(run history.Run) string {
	if run.DryRun {
		return "dry run"
	}
	return yesNo(run.Written)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
