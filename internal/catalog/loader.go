package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Load reads and validates the catalog at path, preserving element order.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates a catalog document already held in memory.
func Parse(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedRecordError{Index: -1, Reason: "expected a JSON array of records", Err: err}
	}

	records := make([]Record, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for idx, element := range raw {
		record, err := decodeRecord(idx, element)
		if err != nil {
			return nil, err
		}
		if first, ok := seen[record.ID]; ok {
			return nil, &MalformedRecordError{
				Index:  idx,
				ID:     record.ID,
				Field:  "id",
				Reason: fmt.Sprintf("duplicate of record %d", first),
			}
		}
		seen[record.ID] = idx
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(idx int, element json.RawMessage) (Record, error) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, &MalformedRecordError{Index: idx, Reason: "expected a JSON object"}
	}

	var record Record
	if err := json.Unmarshal(trimmed, &record); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return Record{}, &MalformedRecordError{Index: idx, Field: field, Reason: "invalid field type", Err: err}
	}

	record.ID = strings.TrimSpace(record.ID)
	record.URL = strings.TrimSpace(record.URL)
	if record.ID == "" {
		return Record{}, &MalformedRecordError{Index: idx, Field: "id", Reason: "missing"}
	}
	if record.URL == "" {
		return Record{}, &MalformedRecordError{Index: idx, ID: record.ID, Field: "url", Reason: "missing"}
	}
	return record, nil
}
