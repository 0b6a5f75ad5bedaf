package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileNotFound is returned when the input file does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrIO covers unreadable inputs and unwritable outputs
	ErrIO = errors.New("i/o error")
)

// UsageError is returned for a wrong number of command line arguments
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return e.Usage
}

// ParseError is returned when the input is not valid delimited text with a header
type ParseError struct {
	Path string
	Line int // 1-based, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnError is returned when a stage needs a column the table lacks
type MissingColumnError struct {
	Stage   string   // "derive", "aggregate", "report", ...
	Columns []string // every missing column, in lookup order
}

func (e *MissingColumnError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("missing column(s) %s", strings.Join(e.Columns, ", ")))
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("during %s", e.Stage))
	}
	return strings.Join(parts, " ")
}
