package catalog

import "github.com/samber/lo"

// Record is one curated wallpaper entry.
type Record struct {
	ID     string   `json:"id"`
	URL    string   `json:"url"`
	Author string   `json:"author,omitempty"`
	Reason string   `json:"reason,omitempty"`
	Score  *float64 `json:"score,omitempty"`
	Date   string   `json:"date,omitempty"`
}

// IDs returns record identifiers in catalog order.
func IDs(records []Record) []string {
	return lo.Map(records, func(r Record, _ int) string { return r.ID })
}

// Latest returns the first n records, which the curation process keeps
// newest-first. n <= 0 returns every record.
func Latest(records []Record, n int) []Record {
	if n <= 0 || n >= len(records) {
		return records
	}
	return records[:n]
}
