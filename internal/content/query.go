package content

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// SearchQuery extracts the search phrase embedded in an image URL's ixid
// parameter. The parameter is base64 text of pipe-separated fields in which
// the query sits three fields after "search". It returns "" when the URL
// carries no usable query.
func SearchQuery(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	// Query decoding turns '+' into a space; base64 wants it back.
	ixid := strings.ReplaceAll(parsed.Query().Get("ixid"), " ", "+")
	if ixid == "" {
		return ""
	}
	decoded, ok := decodeBase64(ixid)
	if !ok {
		return ""
	}
	parts := strings.Split(decoded, "|")
	for i, part := range parts {
		if part != "search" || i+3 >= len(parts) {
			continue
		}
		query, err := url.PathUnescape(parts[i+3])
		if err != nil {
			query = parts[i+3]
		}
		query = strings.ToLower(strings.TrimSpace(query))
		if query != "" && query != "en" {
			return query
		}
	}
	return ""
}

func decodeBase64(value string) (string, bool) {
	trimmed := strings.TrimRight(strings.TrimSpace(value), "=")
	for _, enc := range []*base64.Encoding{base64.RawStdEncoding, base64.RawURLEncoding} {
		if out, err := enc.DecodeString(trimmed); err == nil {
			return strings.ToValidUTF8(string(out), ""), true
		}
	}
	return "", false
}
