package content

import (
	"context"
	"fmt"
	"strings"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/services/llm"
)

// Completer turns a prompt into raw model output.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const generativePrompt = `Create a zen-inspired blog article for a high-quality image.
Image details: %s by %s.

Output in JSON format with exactly these keys:
- title: A short, poetic title (max 60 chars)
- summary: A calming summary/teaser (max 150 chars)
- article: A short, mindful essay (3-4 paragraphs) exploring the theme of the image (Zen, Nature, or Culinary beauty).

Language: English.
Return ONLY valid JSON.`

// Generative asks a Completer for a title, summary and essay. Its output
// varies between calls, so it never reports itself deterministic.
type Generative struct {
	name       string
	completer  Completer
	classifier Classifier
}

// NewGenerative wraps completer. name is used in logs and run history.
func NewGenerative(name string, completer Completer, classifier Classifier) *Generative {
	return &Generative{name: name, completer: completer, classifier: classifier}
}

// Name returns the producer name.
func (g *Generative) Name() string {
	return g.name
}

// Prompt renders the generation prompt for item.
func Prompt(item catalog.Record) string {
	reason := strings.TrimSpace(item.Reason)
	if reason == "" {
		reason = "a serene photograph"
	}
	author := strings.TrimSpace(item.Author)
	if author == "" {
		author = "an unknown photographer"
	}
	return fmt.Sprintf(generativePrompt, reason, author)
}

type generatedEntry struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
	Article *string `json:"article"`
}

// Describe implements Producer.
func (g *Generative) Describe(ctx context.Context, item catalog.Record, _ int) (Content, error) {
	raw, err := g.completer.Complete(ctx, Prompt(item))
	if err != nil {
		return Content{}, err
	}
	return ParseGenerated(raw, g.classifier.Classify(item.Reason))
}

// ParseGenerated decodes a completer reply that must be a JSON object with
// exactly the keys title, summary and article, optionally wrapped in a
// markdown code fence.
func ParseGenerated(raw, category string) (Content, error) {
	var entry generatedEntry
	if err := llm.DecodeStrictJSON(raw, &entry); err != nil {
		return Content{}, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}
	switch {
	case entry.Title == nil || entry.Summary == nil || entry.Article == nil:
		return Content{}, fmt.Errorf("%w: title, summary and article are required", ErrMalformedOutput)
	case strings.TrimSpace(*entry.Title) == "":
		return Content{}, fmt.Errorf("%w: empty title", ErrMalformedOutput)
	case strings.TrimSpace(*entry.Summary) == "":
		return Content{}, fmt.Errorf("%w: empty summary", ErrMalformedOutput)
	}

	content := Content{
		Title:    *entry.Title,
		Summary:  *entry.Summary,
		Category: category,
	}
	if article := strings.TrimSpace(*entry.Article); article != "" {
		content.Article = &feedstore.Article{Text: article}
	}
	return content, nil
}
