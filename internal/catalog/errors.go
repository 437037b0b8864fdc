package catalog

import (
	"fmt"

	"zenfeeds/internal/services"
)

// NotFoundError reports that the catalog file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is matches services.ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == services.ErrNotFound
}

// MalformedRecordError reports a catalog element that cannot be used.
// Index is -1 when the file as a whole is not a JSON array.
type MalformedRecordError struct {
	Index  int
	ID     string
	Field  string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("malformed catalog: %s", e.Reason)
	case e.ID != "" && e.Field != "":
		return fmt.Sprintf("malformed catalog record %d (%s): %s: %s", e.Index, e.ID, e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("malformed catalog record %d: %s: %s", e.Index, e.Field, e.Reason)
	default:
		return fmt.Sprintf("malformed catalog record %d: %s", e.Index, e.Reason)
	}
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is matches services.ErrValidation.
func (e *MalformedRecordError) Is(target error) bool {
	return target == services.ErrValidation
}
