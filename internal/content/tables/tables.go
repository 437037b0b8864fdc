package tables

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"zenfeeds/internal/feedstore"
)

//go:embed tables.yaml
var defaultTables []byte

// Description is one title/summary pair.
type Description struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Keyword associates a search phrase with candidate descriptions.
type Keyword struct {
	Key     string        `yaml:"key"`
	Entries []Description `yaml:"entries"`
}

// Article is a structured essay attached by category.
type Article struct {
	Headline string   `yaml:"headline"`
	Content  string   `yaml:"content"`
	Tips     []string `yaml:"tips"`
}

// Tables holds every lookup the producer uses. Keywords are ordered and
// matched first to last.
type Tables struct {
	Keywords  []Keyword                `yaml:"keywords"`
	Fallbacks map[string][]Description `yaml:"fallbacks"`
	Articles  map[string][]Article     `yaml:"articles"`
}

// Default returns the embedded tables.
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// Load reads tables from path, or the embedded defaults when path is empty.
func Load(path string) (*Tables, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}
	tables, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tables %s: %w", path, err)
	}
	return tables, nil
}

// Parse decodes and validates a YAML tables document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	for i := range t.Keywords {
		t.Keywords[i].Key = strings.ToLower(strings.TrimSpace(t.Keywords[i].Key))
	}
	return &t, nil
}

// Validate checks that every lookup the producer can reach is non-empty.
func (t *Tables) Validate() error {
	if len(t.Fallbacks[feedstore.CategoryNature]) == 0 {
		return errors.New("tables: fallbacks.nature must not be empty")
	}
	for i, kw := range t.Keywords {
		if strings.TrimSpace(kw.Key) == "" {
			return fmt.Errorf("tables: keywords[%d]: key must be set", i)
		}
		if len(kw.Entries) == 0 {
			return fmt.Errorf("tables: keyword %q has no entries", kw.Key)
		}
		for j, entry := range kw.Entries {
			if err := entry.validate(); err != nil {
				return fmt.Errorf("tables: keyword %q entry %d: %w", kw.Key, j, err)
			}
		}
	}
	for category, entries := range t.Fallbacks {
		for j, entry := range entries {
			if err := entry.validate(); err != nil {
				return fmt.Errorf("tables: fallback %q entry %d: %w", category, j, err)
			}
		}
	}
	for category, articles := range t.Articles {
		for j, article := range articles {
			if strings.TrimSpace(article.Headline) == "" || strings.TrimSpace(article.Content) == "" {
				return fmt.Errorf("tables: article %q entry %d: headline and content must be set", category, j)
			}
		}
	}
	return nil
}

func (d Description) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title must be set")
	}
	if strings.TrimSpace(d.Summary) == "" {
		return errors.New("summary must be set")
	}
	return nil
}

// Match returns the entries of the first keyword related to query, where
// either string contains the other.
func (t *Tables) Match(query string) ([]Description, bool) {
	if query == "" {
		return nil, false
	}
	for _, kw := range t.Keywords {
		if strings.Contains(query, kw.Key) || strings.Contains(kw.Key, query) {
			return kw.Entries, true
		}
	}
	return nil, false
}

// Fallback returns the fallback descriptions for category, or nature's.
func (t *Tables) Fallback(category string) []Description {
	if entries := t.Fallbacks[category]; len(entries) > 0 {
		return entries
	}
	return t.Fallbacks[feedstore.CategoryNature]
}
