package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for the font package.
var (
	// ErrEmptyData is returned when font data is empty.
	ErrEmptyData = errors.New("font: empty font data")

	// ErrIndexOutOfRange is returned when a face index exceeds the number
	// of faces in a collection.
	ErrIndexOutOfRange = errors.New("font: face index out of range")

	// ErrNotFound is returned when no font file matches a name.
	ErrNotFound = errors.New("font: font not found")
)

// LoadError describes a failed font load.
type LoadError struct {
	// Source is the file path, font name, or "<memory>".
	Source string
	Index  int
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("font: load %s (face %d): %v", e.Source, e.Index, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
