package feedsync

import (
	"fmt"
	"slices"
	"strings"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/textutil"
)

var categories = []string{feedstore.CategoryNature, feedstore.CategoryFood, feedstore.CategoryTravel}

// BuildRecord merges a catalog record with produced content. Title and
// summary are normalized and clamped; either being empty afterwards is
// malformed output.
func BuildRecord(item catalog.Record, c content.Content, defaults Defaults) (feedstore.Record, error) {
	title := textutil.Clamp(c.Title, MaxTitleRunes)
	if title == "" {
		return feedstore.Record{}, fmt.Errorf("%w: empty title", content.ErrMalformedOutput)
	}
	summary := textutil.Clamp(c.Summary, MaxSummaryRunes)
	if summary == "" {
		return feedstore.Record{}, fmt.Errorf("%w: empty summary", content.ErrMalformedOutput)
	}

	record := feedstore.Record{
		ID:      item.ID,
		URL:     item.URL,
		Author:  firstNonEmpty(item.Author, defaults.Author, defaultAuthor),
		Title:   title,
		Summary: summary,
		Date:    firstNonEmpty(item.Date, defaults.Date),
	}
	switch {
	case item.Score != nil:
		score := *item.Score
		record.Score = &score
	case defaults.Score != nil:
		score := *defaults.Score
		record.Score = &score
	}
	if slices.Contains(categories, c.Category) {
		record.Category = c.Category
	}
	if c.Article != nil && !c.Article.Empty() {
		article := *c.Article
		article.Tips = slices.Clone(article.Tips)
		record.Article = &article
	}
	return record, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
