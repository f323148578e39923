package main

import (
	"errors"
	"os"

	"github.com/tsawler/dyspositif/config"
	"github.com/tsawler/dyspositif/htmlbuild"
	"github.com/tsawler/dyspositif/pdfextract"
	"github.com/tsawler/dyspositif/pipeline"
)

// Exit codes for the dyspositif CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid arguments, flags or config
	ExitExtraction = 3 // Input missing, not a PDF, or without text
	ExitModel      = 4 // Language model unavailable
	ExitRender     = 5 // Output could not be written
)

// ErrUsage marks invalid command lines
var ErrUsage = errors.New("usage")

// ErrOutputExists is returned when the output directory already holds a
// converted page and --force is not set
var ErrOutputExists = errors.New("output already exists")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrOutputExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyPath) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, htmlbuild.ErrInvalidColor) ||
		errors.Is(err, pipeline.ErrInvalidRequest) ||
		errors.Is(err, pdfextract.ErrPageRange) {
		return ExitUsage
	}

	if errors.Is(err, pipeline.ErrModelUnavailable) {
		return ExitModel
	}

	if errors.Is(err, pipeline.ErrRender) {
		return ExitRender
	}

	if errors.Is(err, pipeline.ErrExtraction) ||
		errors.Is(err, pdfextract.ErrNotPDF) ||
		errors.Is(err, pdfextract.ErrEncrypted) ||
		errors.Is(err, pdfextract.ErrMalformed) ||
		errors.Is(err, pdfextract.ErrNoText) ||
		errors.Is(err, os.ErrNotExist) {
		return ExitExtraction
	}

	return ExitGeneral
}
