package pipeline

import (
	"errors"

	"github.com/tsawler/dyspositif/nlp"
)

// Sentinel errors for conversion failures.
var (
	// ErrInvalidRequest is returned when the request lacks an input or an
	// output directory
	ErrInvalidRequest = errors.New("invalid request")

	// ErrExtraction wraps every failure to read text from the input
	ErrExtraction = errors.New("extraction failed")

	// ErrModelUnavailable is returned when mute letters are requested and
	// the language model cannot be loaded
	ErrModelUnavailable = nlp.ErrModelUnavailable

	// ErrRender wraps failures to build or write the output files
	ErrRender = errors.New("render failed")
)

// StageError reports the state in which a run failed
type StageError struct {
	State State
	Err   error
}

func (e *StageError) Error() string {
	return e.State.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
