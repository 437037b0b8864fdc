package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
)

type stubCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestGenerativeDescribe(t *testing.T) {
	completer := &stubCompleter{reply: "```json\n{\"title\":\"Still Harbor\",\"summary\":\"Boats rest.\",\"article\":\"Para one.\\n\\nPara two.\"}\n```"}
	producer := content.NewGenerative("gemini", completer, content.DefaultClassifier())

	got, err := producer.Describe(context.Background(), catalog.Record{
		ID:     "a1",
		URL:    "https://x/a1",
		Author: "Ana",
		Reason: "Travel/Landscape harbor",
	}, 0)
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if got.Title != "Still Harbor" || got.Summary != "Boats rest." {
		t.Fatalf("unexpected content %+v", got)
	}
	if got.Category != feedstore.CategoryTravel {
		t.Fatalf("category = %q", got.Category)
	}
	if got.Article == nil || got.Article.Structured() || !strings.Contains(got.Article.Text, "Para two.") {
		t.Fatalf("unexpected article %+v", got.Article)
	}
	if len(completer.prompts) != 1 || !strings.Contains(completer.prompts[0], "Travel/Landscape harbor by Ana") {
		t.Fatalf("prompt missing image details: %q", completer.prompts)
	}
	if content.IsDeterministic(producer) {
		t.Fatal("generative producer must not be deterministic")
	}
	if content.NameOf(producer) != "gemini" {
		t.Fatalf("name = %q", content.NameOf(producer))
	}
}

func TestGenerativeDescribePropagatesCompleterError(t *testing.T) {
	boom := errors.New("exit status 1")
	producer := content.NewGenerative("gemini", &stubCompleter{err: boom}, content.DefaultClassifier())
	if _, err := producer.Describe(context.Background(), catalog.Record{ID: "a1"}, 0); !errors.Is(err, boom) {
		t.Fatalf("expected completer error, got %v", err)
	}
}

func TestParseGeneratedRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "prose", raw: "Here is a lovely essay about tea."},
		{name: "missing article", raw: `{"title":"t","summary":"s"}`},
		{name: "extra key", raw: `{"title":"t","summary":"s","article":"a","mood":"calm"}`},
		{name: "empty title", raw: `{"title":" ","summary":"s","article":"a"}`},
		{name: "empty summary", raw: `{"title":"t","summary":"","article":"a"}`},
		{name: "wrong type", raw: `{"title":"t","summary":"s","article":{"headline":"h"}}`},
		{name: "array", raw: `[{"title":"t","summary":"s","article":"a"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.ParseGenerated(tt.raw, feedstore.CategoryNature)
			if !errors.Is(err, content.ErrMalformedOutput) {
				t.Fatalf("expected ErrMalformedOutput, got %v", err)
			}
		})
	}
}

func TestParseGeneratedAllowsEmptyArticle(t *testing.T) {
	got, err := content.ParseGenerated(`{"title":"t","summary":"s","article":""}`, feedstore.CategoryFood)
	if err != nil {
		t.Fatalf("ParseGenerated returned error: %v", err)
	}
	if got.Article != nil {
		t.Fatalf("expected nil article, got %+v", got.Article)
	}
	if got.Category != feedstore.CategoryFood {
		t.Fatalf("category = %q", got.Category)
	}
}

func TestPromptDefaults(t *testing.T) {
	prompt := content.Prompt(catalog.Record{ID: "a1"})
	if !strings.Contains(prompt, "a serene photograph by an unknown photographer") {
		t.Fatalf("unexpected prompt %q", prompt)
	}
	if !strings.Contains(prompt, "Return ONLY valid JSON.") {
		t.Fatal("prompt should demand JSON")
	}
}
