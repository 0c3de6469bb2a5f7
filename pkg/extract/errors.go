package extract

import (
	"errors"
	"fmt"
)

// ErrMalformedRank is wrapped by every RecordError.
var ErrMalformedRank = errors.New("malformed rank")

// RecordError describes a competitor whose placement text could not be read.
type RecordError struct {
	Path string
	// Cell is the index of the rank cell in the document's cell sequence.
	Cell int
	Text string
}

func (e *RecordError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cell %d: %v %q", e.Cell, ErrMalformedRank, e.Text)
	}
	return fmt.Sprintf("%s: cell %d: %v %q", e.Path, e.Cell, ErrMalformedRank, e.Text)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRank
}
