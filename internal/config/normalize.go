package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSync()
	c.normalizeDefaults()
	c.normalizeGemini()
	c.normalizeLLM()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.Catalog, err = expandPath(strings.TrimSpace(c.Paths.Catalog)); err != nil {
		return fmt.Errorf("paths.catalog: %w", err)
	}
	if c.Paths.FeedStore, err = expandPath(strings.TrimSpace(c.Paths.FeedStore)); err != nil {
		return fmt.Errorf("paths.feed_store: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.TablesFile, err = expandPath(strings.TrimSpace(c.Paths.TablesFile)); err != nil {
		return fmt.Errorf("paths.tables_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeSync() {
	c.Sync.Producer = strings.ToLower(strings.TrimSpace(c.Sync.Producer))
	if c.Sync.Producer == "" {
		c.Sync.Producer = defaultProducer
	}
	if c.Sync.Limit < 0 {
		c.Sync.Limit = 0
	}
	if c.Sync.ProducerTimeoutSeconds <= 0 {
		c.Sync.ProducerTimeoutSeconds = defaultProducerTimeoutSeconds
	}
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Author = strings.TrimSpace(c.Defaults.Author)
	c.Defaults.Date = strings.TrimSpace(c.Defaults.Date)
}

func (c *Config) normalizeGemini() {
	if value, ok := os.LookupEnv("ZENFEEDS_GEMINI_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.Gemini.Binary = value
	}
	c.Gemini.Binary = strings.TrimSpace(c.Gemini.Binary)
	if c.Gemini.Binary == "" {
		c.Gemini.Binary = defaultGeminiBinary
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = defaultGeminiTimeoutSeconds
	}
	if c.Gemini.Attempts <= 0 {
		c.Gemini.Attempts = defaultGeminiAttempts
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.LLM.APIKey = strings.TrimSpace(value)
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeNotifications() {
	if value, ok := os.LookupEnv("ZENFEEDS_NTFY_TOPIC"); ok && strings.TrimSpace(value) != "" {
		c.Notifications.NtfyTopic = value
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
