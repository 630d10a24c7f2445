package model

import "errors"

var (
	// ErrInvalidName is returned when an identifier is empty or contains a
	// reserved character (space, '$' or '*').
	ErrInvalidName = errors.New("invalid name")

	// ErrTypeContract is returned when a required argument is absent or has
	// the wrong dynamic type.
	ErrTypeContract = errors.New("type contract violation")

	ErrInvalidVisibility = errors.New("invalid visibility")
	ErrInvalidKind       = errors.New("invalid struct kind")
)
