package envstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for the store. Callers match with errors.Is.
var (
	// ErrCorruptStore means the backing file exists but cannot be parsed.
	// The store never overwrites the file after this error.
	ErrCorruptStore = errors.New("store file is corrupt")

	// ErrNotFound means an operation referenced a nonexistent record id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateClusterName is returned by Add only when the store was
	// opened with WithUniqueClusterNames.
	ErrDuplicateClusterName = errors.New("duplicate cluster name")
)

// ValidationError reports a field that failed create/update validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
