package mdblog

import "errors"

var (
	// ErrNotFound is returned when a requested post or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidName is returned for filenames or slugs that are not a single
	// plain path element.
	ErrInvalidName = errors.New("invalid filename")

	// ErrNameRequired is returned when a save request carries no post name.
	ErrNameRequired = errors.New("filename required")
)
