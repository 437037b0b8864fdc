package config

const (
	defaultConfigPath             = "~/.config/zenfeeds/config.toml"
	defaultCatalogPath            = "../zen-wallpapers/s-grade-curated.json"
	defaultFeedStorePath          = "feeds.json"
	defaultProducer               = ProducerTables
	defaultProducerTimeoutSeconds = 180
	defaultSeed                   = 2026
	defaultAuthor                 = "Unknown"
	defaultGeminiBinary           = "gemini"
	defaultGeminiTimeoutSeconds   = 120
	defaultGeminiAttempts         = 1
	defaultLLMBaseURL             = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel               = "google/gemini-3-flash-preview"
	defaultLLMReferer             = "https://github.com/zenfeeds/zenfeeds"
	defaultLLMTitle               = "zenfeeds"
	defaultLLMTimeoutSeconds      = 60
	defaultNtfyTimeoutSeconds     = 10
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Producer names accepted by sync.producer.
const (
	ProducerTables = "tables"
	ProducerGemini = "gemini"
	ProducerLLM    = "llm"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Catalog:   defaultCatalogPath,
			FeedStore: defaultFeedStorePath,
			StateDir:  defaultStateDir(),
		},
		Sync: Sync{
			Producer:               defaultProducer,
			ProducerTimeoutSeconds: defaultProducerTimeoutSeconds,
			Seed:                   defaultSeed,
			KeepBackup:             true,
		},
		Defaults: Defaults{
			Author: defaultAuthor,
		},
		Gemini: Gemini{
			Binary:         defaultGeminiBinary,
			TimeoutSeconds: defaultGeminiTimeoutSeconds,
			Attempts:       defaultGeminiAttempts,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
