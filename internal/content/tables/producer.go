package tables

import (
	"context"
	"math/rand/v2"
	"slices"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
)

// Producer picks content from Tables. Its output depends only on the item,
// the index, the tables and the seed.
type Producer struct {
	tables         *Tables
	classifier     content.Classifier
	articleOffsets map[string]int
}

// New builds a producer. seed fixes the rotation of category articles.
func New(t *Tables, classifier content.Classifier, seed int64) *Producer {
	return &Producer{
		tables:         t,
		classifier:     classifier,
		articleOffsets: articleOffsets(t, seed),
	}
}

func articleOffsets(t *Tables, seed int64) map[string]int {
	categories := make([]string, 0, len(t.Articles))
	for category := range t.Articles {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	offsets := make(map[string]int, len(categories))
	for _, category := range categories {
		if n := len(t.Articles[category]); n > 0 {
			offsets[category] = rng.IntN(n)
		}
	}
	return offsets
}

// Name implements content.Named.
func (p *Producer) Name() string { return "tables" }

// Deterministic implements content.Deterministic.
func (p *Producer) Deterministic() bool { return true }

// Describe implements content.Producer.
func (p *Producer) Describe(ctx context.Context, item catalog.Record, index int) (content.Content, error) {
	if err := ctx.Err(); err != nil {
		return content.Content{}, err
	}
	if index < 0 {
		index = -index
	}

	category := p.classifier.Classify(item.Reason)
	entries, ok := p.tables.Match(content.SearchQuery(item.URL))
	if !ok {
		entries = p.tables.Fallback(category)
	}
	desc := entries[index%len(entries)]

	return content.Content{
		Title:    desc.Title,
		Summary:  desc.Summary,
		Article:  p.article(category, index),
		Category: category,
	}, nil
}

func (p *Producer) article(category string, index int) *feedstore.Article {
	articles := p.tables.Articles[category]
	if len(articles) == 0 {
		return nil
	}
	chosen := articles[(p.articleOffsets[category]+index)%len(articles)]
	return &feedstore.Article{
		Headline: chosen.Headline,
		Content:  chosen.Content,
		Tips:     slices.Clone(chosen.Tips),
	}
}
