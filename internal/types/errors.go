package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================
// Every error that aborts a run is one of the kinds below, possibly wrapped
// with additional context. Use errors.As / errors.Is to classify.

// ErrEmptyInput is returned when the input contains no data rows.
var ErrEmptyInput = errors.New("input contains no time entries")

// InputFormatError reports a malformed input value: an unparseable date, a
// project identifier without reference separator, a bad duration or a
// missing column.
type InputFormatError struct {
	// Row is the 1-indexed source row, 0 when the error is not row specific.
	Row int

	// Field is the column or derived field that failed.
	Field string

	// Value is the offending raw value.
	Value string

	// Err is the underlying cause.
	Err error
}

func (e *InputFormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d, field %q: invalid value %q: %v", e.Row, e.Field, e.Value, e.Err)
	}
	if e.Value != "" {
		return fmt.Sprintf("field %q: invalid value %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}

// IOError reports a filesystem failure: the output directory cannot be
// created, a file cannot be written, or the backdrop asset is missing or
// corrupt.
type IOError struct {
	Op   string // operation, e.g. "mkdir", "write", "open backdrop"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RenderError reports that the rendering backend rejected a document plan.
type RenderError struct {
	Op  string // rendering step, e.g. "table", "barcode", "output"
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render %s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
