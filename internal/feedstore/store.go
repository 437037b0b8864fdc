package feedstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"zenfeeds/internal/fileutil"
	"zenfeeds/internal/services"
)

// Feed maps catalog ids to records.
type Feed map[string]Record

// IDs returns the feed keys in sorted order.
func (f Feed) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone returns a shallow copy of the map. Records are values and persisted
// records keep sharing their immutable raw JSON.
func (f Feed) Clone() Feed {
	out := make(Feed, len(f))
	for id, record := range f {
		out[id] = record
	}
	return out
}

// Load reads the feed store at path. A missing or empty file yields an empty
// feed. A file that cannot be parsed is reported as a validation error and
// must not be overwritten.
func Load(path string) (Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Feed{}, nil
		}
		return nil, fmt.Errorf("read feed store: %w", err)
	}
	return Decode(data)
}

// Decode parses a feed store document.
func Decode(data []byte) (Feed, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Feed{}, nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, services.Wrap(services.ErrValidation, "feedstore", "decode", "feed store is not a JSON object", err)
	}
	feed := make(Feed, len(entries))
	for id, value := range entries {
		var record Record
		if err := json.Unmarshal(value, &record); err != nil {
			return nil, services.Wrap(services.ErrValidation, "feedstore", "decode", fmt.Sprintf("entry %q", id), err)
		}
		feed[id] = record
	}
	return feed, nil
}

// Encode renders the feed with two-space indentation, sorted keys, unescaped
// HTML characters and a trailing newline.
func Encode(feed Feed) ([]byte, error) {
	if feed == nil {
		feed = Feed{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("encode feed store: %w", err)
	}
	return buf.Bytes(), nil
}

// Save atomically replaces the feed store at path.
func Save(path string, feed Feed) error {
	data, err := Encode(feed)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write feed store: %w", err)
	}
	return nil
}

// BackupPath returns the location of the copy made by Backup.
func BackupPath(path string) string {
	return path + ".bak"
}

// Backup copies the current store to BackupPath. It returns false without
// error when there is nothing to back up.
func Backup(path string) (bool, error) {
	if !fileutil.Exists(path) {
		return false, nil
	}
	if err := fileutil.CopyFile(path, BackupPath(path)); err != nil {
		return false, fmt.Errorf("backup feed store: %w", err)
	}
	return true, nil
}

// Matches reports whether the file at path already holds exactly data.
func Matches(path string, data []byte) bool {
	current, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(current, data)
}
