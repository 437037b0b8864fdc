package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"zenfeeds/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Catalog = filepath.Join(base, "catalog.json")
	cfgVal.Paths.FeedStore = filepath.Join(base, "site", "feeds.json")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""
	cfgVal.LLM.APIKey = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithProducer selects the content producer on the test config.
func WithProducer(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.Producer = name
	}
}

// WithCatalog writes body as the catalog file.
func WithCatalog(body string) ConfigOption {
	return func(b *configBuilder) {
		WriteText(b.t, b.cfg.Paths.Catalog, body)
	}
}

// WithLimit restricts runs to the first n catalog records.
func WithLimit(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.Limit = n
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. Each stub prints output and exits 0. If names is
// empty, the gemini binary is stubbed.
func WithStubbedBinaries(output string, names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"gemini"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteStub(b.t, filepath.Join(binDir, name), output)
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Catalog)
}
