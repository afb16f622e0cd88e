/*
errors.go - Error types for the amortization core

PURPOSE:
  Validation failures are surfaced as structured data carrying every
  violation found, so a caller can show all problems at once instead of
  fixing them one by one. Once inputs pass validation the engine cannot
  fail: it performs no I/O and all arithmetic paths are total over valid
  numeric ranges.

USAGE:
  rows, summary, err := mortgage.Engine{}.Run(loan, extras, charges)
  var verr *mortgage.ValidationError
  if errors.As(err, &verr) {
      for _, v := range verr.Violations { ... }
  }
*/
package mortgage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is the sentinel wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// Violation is one human-readable validation failure, tied to the field
// that caused it.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string { return fmt.Sprintf("%s: %s", v.Field, v.Message) }

// ValidationError carries every violation found in a validation pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// IsInvalidInput reports whether err is a validation failure, i.e. the
// caller can recover by correcting input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
