package domain

import (
	"errors"
	"fmt"
)

// Side identifies which ledger a table or column belongs to.
type Side string

const (
	SideBank     Side = "bank"
	SidePractice Side = "practice"
)

// ErrUnsupportedFormat is wrapped by file errors for extensions no reader or writer handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileReadError means an input file could not be opened or is not a valid table.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read table from %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// MissingColumnError means a configured reference or amount column is absent from a table.
type MissingColumnError struct {
	Side   Side
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s table", e.Column, e.Side)
}

// FileWriteError means the output file could not be written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write table to %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }
