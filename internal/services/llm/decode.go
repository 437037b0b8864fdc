package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeStrictJSON strips an optional markdown fence and decodes exactly one
// JSON object into target. Unknown fields and trailing data are rejected.
func DecodeStrictJSON(content string, target any) error {
	body := StripCodeFence(content)
	if body == "" {
		return errors.New("empty payload")
	}
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w (payload snippet: %s)", err, snippet(body))
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("trailing data after JSON object (payload snippet: %s)", snippet(body))
	}
	return nil
}

// StripCodeFence removes a surrounding ```json or ``` fence if present.
func StripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// snippet flattens whitespace and caps content for error messages.
func snippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	if clean == "" {
		return "<empty>"
	}
	const limit = 160
	if runes := []rune(clean); len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
