package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "short unchanged", input: "Quiet morning", max: 60, want: "Quiet morning"},
		{name: "exact length", input: "abcde", max: 5, want: "abcde"},
		{name: "ascii truncated", input: "abcdefgh", max: 5, want: "abcde"},
		{name: "multibyte truncated", input: "日本の朝の風景", max: 3, want: "日本の"},
		{name: "whitespace collapsed", input: "  calm \n\t lake  ", max: 60, want: "calm lake"},
		{name: "trailing space trimmed", input: "one two three", max: 4, want: "one"},
		{name: "zero limit", input: "anything", max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.input, tt.max); got != tt.want {
				t.Fatalf("Clamp(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestClampNormalizesBeforeCounting(t *testing.T) {
	decomposed := "Cafe\u0301"
	got := Clamp(decomposed, 4)
	if got != "Caf\u00e9" {
		t.Fatalf("Clamp(decomposed) = %q, want composed Café", got)
	}
	if utf8.RuneCountInString(got) != 4 {
		t.Fatalf("expected 4 runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestClampNeverExceedsLimit(t *testing.T) {
	long := strings.Repeat("静かな湖 ", 100)
	for _, limit := range []int{1, 60, 150} {
		got := Clamp(long, limit)
		if !utf8.ValidString(got) {
			t.Fatalf("limit %d produced invalid UTF-8", limit)
		}
		if utf8.RuneCountInString(got) > limit {
			t.Fatalf("limit %d produced %d runes", limit, utf8.RuneCountInString(got))
		}
	}
}
