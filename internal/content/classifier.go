package content

import (
	"strings"

	"zenfeeds/internal/feedstore"
)

// Rule maps reason text to a category. A rule matches when the lower-cased
// reason contains any of its terms.
type Rule struct {
	Category string
	Terms    []string
}

// Classifier assigns a category from a record's free-text reason. Rules are
// evaluated in order and the first match wins.
type Classifier struct {
	rules    []Rule
	fallback string
}

// NewClassifier builds a classifier. An empty fallback means nature.
func NewClassifier(rules []Rule, fallback string) Classifier {
	if fallback == "" {
		fallback = feedstore.CategoryNature
	}
	copied := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		terms := make([]string, 0, len(rule.Terms))
		for _, term := range rule.Terms {
			if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
				terms = append(terms, term)
			}
		}
		copied = append(copied, Rule{Category: rule.Category, Terms: terms})
	}
	return Classifier{rules: copied, fallback: fallback}
}

// DefaultClassifier recognizes curation themes ("Food/Culinary",
// "Travel/Landscape") as well as loose keywords.
func DefaultClassifier() Classifier {
	return NewClassifier([]Rule{
		{Category: feedstore.CategoryFood, Terms: []string{"food/culinary", "food", "culinary"}},
		{Category: feedstore.CategoryTravel, Terms: []string{"travel/landscape", "travel", "landscape"}},
	}, feedstore.CategoryNature)
}

// Classify returns the category for reason.
func (c Classifier) Classify(reason string) string {
	lowered := strings.ToLower(reason)
	for _, rule := range c.rules {
		for _, term := range rule.Terms {
			if strings.Contains(lowered, term) {
				return rule.Category
			}
		}
	}
	if c.fallback == "" {
		return feedstore.CategoryNature
	}
	return c.fallback
}
