package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic must be a full URL such as https://ntfy.sh/my-topic (got %q)", topic)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Catalog) == "" {
		return errors.New("paths.catalog must be set")
	}
	if strings.TrimSpace(c.Paths.FeedStore) == "" {
		return errors.New("paths.feed_store must be set")
	}
	if c.Paths.Catalog == c.Paths.FeedStore {
		return errors.New("paths.catalog and paths.feed_store must differ")
	}
	return nil
}

func (c *Config) validateSync() error {
	switch c.Sync.Producer {
	case ProducerTables, ProducerGemini, ProducerLLM:
	default:
		return fmt.Errorf("sync.producer must be one of %s, %s, %s (got %q)", ProducerTables, ProducerGemini, ProducerLLM, c.Sync.Producer)
	}
	if c.Sync.ProducerTimeoutSeconds <= 0 {
		return errors.New("sync.producer_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.Score != nil && *c.Defaults.Score < 0 {
		return errors.New("defaults.score must not be negative")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.Sync.Producer != ProducerLLM {
		return nil
	}
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("llm.api_key is required when sync.producer is %q. Set OPENROUTER_API_KEY or edit %s (create with 'zenfeeds config init')", ProducerLLM, defaultPath)
	}
	return nil
}
