package scenario

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is the sentinel wrapped by every MalformedRecordError.
// It only ever surfaces at the persistence boundary; the core engine is
// handed well-typed values and never sees malformed records.
var ErrMalformedRecord = errors.New("malformed persisted record")

// MalformedRecordError describes why a persisted record could not be
// normalized or converted.
type MalformedRecordError struct {
	Field string
	Cause error
}

func (e *MalformedRecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed record: %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("malformed record: %s", e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }
