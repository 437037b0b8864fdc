package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"zenfeeds/internal/config"
	"zenfeeds/internal/history"
	"zenfeeds/internal/logging"
	"zenfeeds/internal/notifications"
	"zenfeeds/internal/workflow"
)

// sampleEntries is how many added entries the run summary previews.
const sampleEntries = 3

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var limit int
	var producer string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Add feed entries for catalog records that do not have one yet",
		Long: "Add feed entries for catalog records that do not have one yet.\n\n" +
			"Existing entries are never modified. Items the producer cannot describe are\n" +
			"skipped and retried on the next run. The feed store is only rewritten when at\n" +
			"least one entry was added.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				cfg.Sync.Limit = max(limit, 0)
			}
			if cmd.Flags().Changed("producer") {
				cfg.Sync.Producer = strings.ToLower(strings.TrimSpace(producer))
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return runWorkflow(cmd, ctx, workflow.Request{Mode: workflow.ModeIncremental, DryRun: dryRun})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Produce entries but do not write the feed store")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only consider the first N catalog records (0 = all)")
	cmd.Flags().StringVar(&producer, "producer", "", "Override sync.producer (tables, gemini, llm)")
	return cmd
}

func newRebuildCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var seed int64

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Regenerate every feed entry with the table producer",
		Long: "Regenerate every feed entry from the catalog with the deterministic table\n" +
			"producer. Hand edits to the feed store are discarded. The same catalog and\n" +
			"seed always produce the same file; it is only rewritten when it differs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg.Sync.Producer = config.ProducerTables
			if cmd.Flags().Changed("seed") {
				cfg.Sync.Seed = seed
			}
			return runWorkflow(cmd, ctx, workflow.Request{Mode: workflow.ModeRebuild, DryRun: dryRun})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build the feed but do not write it")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Override sync.seed for article rotation")
	return cmd
}

func runWorkflow(cmd *cobra.Command, ctx *commandContext, req workflow.Request) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	producer, err := newProducer(cfg)
	if err != nil {
		return err
	}

	opts := []workflow.Option{
		workflow.WithLogger(logger),
		workflow.WithNotifier(notifications.NewService(cfg)),
	}
	if store := openHistory(cmd.Context(), cfg, logger); store != nil {
		defer store.Close()
		opts = append(opts, workflow.WithHistory(store))
	}

	runner := workflow.NewRunner(cfg, producer, opts...)
	report, err := runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}
	printRunSummary(cmd.OutOrStdout(), report)
	return nil
}

// openHistory opens the run history. A broken history database never blocks
// a run; it is reported and the run continues unrecorded.
func openHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger) *history.Store {
	store, err := history.Open(ctx, cfg.HistoryPath())
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.String("path", cfg.HistoryPath()),
			logging.String(logging.FieldErrorHint, "delete the history database to reset it"),
			logging.String(logging.FieldImpact, "this run will not be recorded"),
			logging.Error(err),
		)
		return nil
	}
	return store
}

func printRunSummary(out io.Writer, report workflow.Report) {
	colorize := shouldColorize(out)
	title := "Sync"
	if report.Mode == workflow.ModeRebuild {
		title = "Rebuild"
	}
	lines := renderSectionHeader(title, colorize)

	added := report.Result.AddedCount()
	failed := report.Result.Failed

	lines = append(lines,
		renderField("Run", report.RunID),
		renderField("Producer", report.Producer),
		renderField("Catalog", fmt.Sprintf("%d records", report.CatalogCount)),
	)
	addedKind := statusInfo
	if added > 0 {
		addedKind = statusOK
	}
	lines = append(lines, renderStatusLine("Added", addedKind, fmt.Sprintf("%d", added), colorize))
	if report.Mode == workflow.ModeIncremental {
		lines = append(lines, renderField("Unchanged", fmt.Sprintf("%d", report.Result.Skipped)))
	}
	if len(failed) > 0 {
		lines = append(lines, renderStatusLine("Failed", statusWarn,
			fmt.Sprintf("%d (%s)", len(failed), strings.Join(report.Result.FailedIDs(), ", ")), colorize))
	}

	switch {
	case report.Written && report.BackedUp:
		lines = append(lines, renderStatusLine("Feed store", statusOK, "written, previous copy kept as .bak", colorize))
	case report.Written:
		lines = append(lines, renderStatusLine("Feed store", statusOK, "written", colorize))
	case report.DryRun && added > 0:
		lines = append(lines, renderStatusLine("Feed store", statusInfo, "dry run, not written", colorize))
	default:
		lines = append(lines, renderStatusLine("Feed store", statusInfo, "unchanged", colorize))
	}
	lines = append(lines, renderField("Path", report.StorePath))

	if added > 0 {
		lines = append(lines, "", "Sample entries:")
		for i, id := range report.Result.Added {
			if i == sampleEntries {
				lines = append(lines, fmt.Sprintf("%s... and %d more", statusIndent, added-sampleEntries))
				break
			}
			record := report.Result.Feed[id]
			lines = append(lines, fmt.Sprintf("%s%s [%s] %s", statusIndent, id, record.Category, record.Title))
		}
	}

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}
