package main

import (
	"fmt"
	"strings"

	"zenfeeds/internal/config"
	"zenfeeds/internal/content"
	"zenfeeds/internal/content/tables"
	"zenfeeds/internal/services"
	"zenfeeds/internal/services/gemini"
	"zenfeeds/internal/services/llm"
)

// newProducer builds the content producer named by cfg.Sync.Producer.
func newProducer(cfg *config.Config) (content.Producer, error) {
	classifier := content.DefaultClassifier()
	switch cfg.Sync.Producer {
	case config.ProducerTables:
		var (
			tbl *tables.Tables
			err error
		)
		if strings.TrimSpace(cfg.Paths.TablesFile) != "" {
			tbl, err = tables.Load(cfg.Paths.TablesFile)
		} else {
			tbl, err = tables.Default()
		}
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "tables", "load", "content tables", err)
		}
		return tables.New(tbl, classifier, cfg.Sync.Seed), nil
	case config.ProducerGemini:
		client, err := gemini.New(cfg.Gemini.Binary, cfg.Gemini.TimeoutSeconds, cfg.Gemini.Attempts)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "gemini", "init", "", err)
		}
		return content.NewGenerative(config.ProducerGemini, client, classifier), nil
	case config.ProducerLLM:
		client := llm.NewClient(llm.Config(cfg.GetLLM()))
		return content.NewGenerative(config.ProducerLLM, client, classifier), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "producer", "select", fmt.Sprintf("unknown producer %q", cfg.Sync.Producer), nil)
	}
}
