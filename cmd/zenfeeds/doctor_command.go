package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/config"
	"zenfeeds/internal/content/tables"
	"zenfeeds/internal/deps"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/fileutil"
	"zenfeeds/internal/history"
	"zenfeeds/internal/notifications"
	"zenfeeds/internal/services/llm"
)

const doctorLLMTimeout = 20 * time.Second

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var sendTest bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check inputs, external tools and the selected producer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failures := 0
			emit := func(label string, kind statusKind, message string) {
				if kind == statusError {
					failures++
				}
				fmt.Fprintln(out, renderStatusLine(label, kind, message, colorize))
			}

			for _, line := range renderSectionHeader("Inputs", colorize) {
				fmt.Fprintln(out, line)
			}
			checkCatalog(cfg, emit)
			checkFeedStore(cfg, emit)
			checkHistory(cmd.Context(), cfg, emit)

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Producer: "+cfg.Sync.Producer, colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
				switch {
				case status.Available:
					emit(status.Name, statusOK, status.Path)
				case status.Optional:
					emit(status.Name, statusInfo, status.Detail+" (not needed for this producer)")
				default:
					emit(status.Name, statusError, status.Detail)
				}
			}
			checkProducer(cmd.Context(), cfg, emit)
			checkNotifications(cmd.Context(), cfg, sendTest, emit)

			if failures > 0 {
				return fmt.Errorf("doctor found %d problem(s)", failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sendTest, "notify", false, "Send a test notification to the configured ntfy topic")
	return cmd
}

type emitFunc func(label string, kind statusKind, message string)

func checkCatalog(cfg *config.Config, emit emitFunc) {
	records, err := catalog.Load(cfg.Paths.Catalog)
	if err != nil {
		emit("Catalog", statusError, err.Error())
		return
	}
	window := len(catalog.Latest(records, cfg.Sync.Limit))
	emit("Catalog", statusOK, fmt.Sprintf("%d records (%d in window)", len(records), window))
}

func checkFeedStore(cfg *config.Config, emit emitFunc) {
	if !fileutil.Exists(cfg.Paths.FeedStore) {
		emit("Feed store", statusInfo, "not created yet; the first sync writes it")
		return
	}
	feed, err := feedstore.Load(cfg.Paths.FeedStore)
	if err != nil {
		emit("Feed store", statusError, err.Error())
		return
	}
	emit("Feed store", statusOK, fmt.Sprintf("%d entries", len(feed)))
}

func checkHistory(ctx context.Context, cfg *config.Config, emit emitFunc) {
	store, err := history.Open(ctx, cfg.HistoryPath())
	if err != nil {
		kind := statusWarn
		if errors.Is(err, history.ErrSchemaMismatch) {
			kind = statusError
		}
		emit("Run history", kind, err.Error())
		return
	}
	defer store.Close()
	emit("Run history", statusOK, store.Path())
}

func checkProducer(ctx context.Context, cfg *config.Config, emit emitFunc) {
	switch cfg.Sync.Producer {
	case config.ProducerTables:
		if strings.TrimSpace(cfg.Paths.TablesFile) == "" {
			emit("Tables", statusOK, "built-in")
			return
		}
		if _, err := tables.Load(cfg.Paths.TablesFile); err != nil {
			emit("Tables", statusError, err.Error())
			return
		}
		emit("Tables", statusOK, cfg.Paths.TablesFile)
	case config.ProducerLLM:
		client := llm.NewClient(llm.Config(cfg.GetLLM()), llm.WithRetryMaxAttempts(1))
		checkCtx, cancel := context.WithTimeout(ctx, doctorLLMTimeout)
		defer cancel()
		if err := client.HealthCheck(checkCtx); err != nil {
			emit("LLM", statusError, err.Error())
			return
		}
		emit("LLM", statusOK, cfg.LLM.Model)
	}
}

func checkNotifications(ctx context.Context, cfg *config.Config, sendTest bool, emit emitFunc) {
	topic := cfg.Notifications.NtfyTopic
	switch {
	case topic == "":
		emit("Notifications", statusInfo, "disabled")
	case !sendTest:
		emit("Notifications", statusOK, topic)
	default:
		if err := notifications.NewService(cfg).Publish(ctx, notifications.EventTest, nil); err != nil {
			emit("Notifications", statusError, err.Error())
			return
		}
		emit("Notifications", statusOK, "test sent to "+topic)
	}
}
