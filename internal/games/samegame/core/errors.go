package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine construction and invariants.
var (
	// ErrShapeMismatch indicates the supplied cell matrix does not have the configured dimensions.
	ErrShapeMismatch = errors.New("core: board shape mismatch")
	// ErrUnknownColor indicates a cell tag that is not R, G or B.
	ErrUnknownColor = errors.New("core: unknown color")
	// ErrColorMismatch indicates a ball was added to a cluster of another color.
	ErrColorMismatch = errors.New("core: ball color does not match cluster color")
)

// ShapeError reports a row or column count that differs from the configured one.
type ShapeError struct {
	Axis string // "rows" or "columns"
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("Invalid count of the board %s = %d. Necessary: %d", e.Axis, e.Got, e.Want)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// UnknownColorError reports an unrecognized color tag.
type UnknownColorError struct {
	Tag string
}

func (e *UnknownColorError) Error() string {
	return fmt.Sprintf("Invalid color = %s. Necessary: R, G or B", e.Tag)
}

// Unwrap returns ErrUnknownColor.
func (e *UnknownColorError) Unwrap() error {
	return ErrUnknownColor
}

// ColorMismatchError reports a ball whose color differs from its cluster.
type ColorMismatchError struct {
	Got  Color
	Want Color
}

func (e *ColorMismatchError) Error() string {
	return fmt.Sprintf("Invalid color = %s. Necessary: %s", e.Got, e.Want)
}

// Unwrap returns ErrColorMismatch.
func (e *ColorMismatchError) Unwrap() error {
	return ErrColorMismatch
}
