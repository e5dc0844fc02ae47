package mocktest

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidState is matched by every *StateError.
	ErrInvalidState = errors.New("operation not allowed in current mode")
	// ErrOutOfRange is matched by every *OutOfRangeError.
	ErrOutOfRange = errors.New("index out of range")

	ErrEmptyBank     = errors.New("question bank is empty")
	ErrInvalidRating = errors.New("rating must be -1, 0 or 1")
)

type StateError struct {
	Op   string
	Mode ViewMode
}

func (err *StateError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", err.Op, err.Mode)
}

func (err *StateError) Unwrap() error { return ErrInvalidState }

// Index kinds reported by OutOfRangeError.
const (
	KindQuestion = "question"
	KindOption   = "option"
)

type OutOfRangeError struct {
	Kind  string
	Index int
	Limit int // valid indices are [0, Limit)
}

func (err *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", err.Kind, err.Index, err.Limit)
}

func (err *OutOfRangeError) Unwrap() error { return ErrOutOfRange }
