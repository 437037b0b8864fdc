package feedstore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category values attached to records.
const (
	CategoryNature = "nature"
	CategoryFood   = "food"
	CategoryTravel = "travel"
)

// Record is one entry of the feed map.
type Record struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Author   string   `json:"author"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Score    *float64 `json:"score,omitempty"`
	Date     string   `json:"date,omitempty"`
	Category string   `json:"category,omitempty"`
	Article  *Article `json:"article,omitempty"`

	raw json.RawMessage
}

type recordFields Record

// MarshalJSON re-emits the stored JSON for records loaded from disk.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return marshalNoEscape(recordFields(r))
}

// UnmarshalJSON decodes the record and keeps a copy of the input.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields recordFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = Record(fields)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Persisted reports whether the record was loaded from an existing store.
func (r Record) Persisted() bool {
	return len(r.raw) > 0
}

// Article is the long-form body of a record. It is either a structured essay
// with a headline, content and tips, or a plain essay string. Both shapes are
// read and written back in the shape they arrived in.
type Article struct {
	Headline string   `json:"headline,omitempty"`
	Content  string   `json:"content,omitempty"`
	Tips     []string `json:"tips,omitempty"`
	// Text holds a plain string essay.
	Text string `json:"-"`
}

type articleFields Article

// Structured reports whether the article uses the headline/content/tips shape.
func (a Article) Structured() bool {
	return a.Headline != "" || a.Content != "" || len(a.Tips) > 0
}

// Empty reports whether the article carries no text at all.
func (a Article) Empty() bool {
	return !a.Structured() && a.Text == ""
}

func (a Article) MarshalJSON() ([]byte, error) {
	if !a.Structured() {
		return marshalNoEscape(a.Text)
	}
	return marshalNoEscape(articleFields(a))
}

func (a *Article) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*a = Article{}
		return nil
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*a = Article{Text: text}
		return nil
	case trimmed[0] == '{':
		var fields articleFields
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		*a = Article(fields)
		return nil
	default:
		return fmt.Errorf("article: expected string or object")
	}
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
