package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zenfeeds/internal/feedstore"
)

var listColumns = []tableColumn{
	{Title: "ID"},
	{Title: "Category"},
	{Title: "Title", MaxWidth: 40},
	{Title: "Author", MaxWidth: 24},
	{Title: "Score", Numeric: true},
	{Title: "Date"},
	{Title: "Article"},
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the entries in the feed store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			feed, err := feedstore.Load(cfg.Paths.FeedStore)
			if err != nil {
				return err
			}

			category = strings.ToLower(strings.TrimSpace(category))
			filtered := make(feedstore.Feed, len(feed))
			for id, record := range feed {
				if category != "" && record.Category != category {
					continue
				}
				filtered[id] = record
			}

			if asJSON {
				return writeJSON(cmd, filtered)
			}

			out := cmd.OutOrStdout()
			if len(filtered) == 0 {
				fmt.Fprintln(out, "Feed store is empty")
				return nil
			}
			rows := make([][]string, 0, len(filtered))
			for _, id := range filtered.IDs() {
				record := filtered[id]
				rows = append(rows, []string{
					id,
					record.Category,
					record.Title,
					record.Author,
					formatScore(record.Score),
					record.Date,
					yesNo(record.Article != nil && !record.Article.Empty()),
				})
			}
			fmt.Fprintln(out, renderTable(listColumns, rows))
			fmt.Fprintf(out, "%d entries\n", len(filtered))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&category, "category", "", "Only show entries in this category (nature, food, travel)")
	return cmd
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
