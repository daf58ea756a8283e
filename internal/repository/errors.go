package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a multi-document write expected an
	// existing board and it was gone
	ErrBoardNotFound = errors.New("board not found")

	// ErrPinNotFound is returned when a multi-document write expected an
	// existing pin and it was gone
	ErrPinNotFound = errors.New("pin not found")
)
