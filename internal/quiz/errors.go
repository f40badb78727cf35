package quiz

import (
	"errors"
	"fmt"
)

// ErrEmptyQuiz is returned when the caller requires at least one question
// and none survived validation.
var ErrEmptyQuiz = errors.New("quiz has no valid questions")

// excerptLimit bounds how much raw model output is kept on a FormatError.
const excerptLimit = 200

// FormatError indicates the model output contained no usable JSON.
type FormatError struct {
	Reason  string
	Excerpt string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("generation format error: %s", e.Reason)
}

func newFormatError(reason, raw string) *FormatError {
	if len(raw) > excerptLimit {
		raw = raw[:excerptLimit] + "..."
	}
	return &FormatError{Reason: reason, Excerpt: raw}
}

// ValidationError describes why a single record was dropped.
type ValidationError struct {
	Index  int // position in the extracted record list
	Reason string
	Record any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}
