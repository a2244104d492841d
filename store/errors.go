package store

import "errors"

// Sentinel errors translated by the central HTTP error handler.
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("resource already exists")
	ErrForeignKey = errors.New("referenced resource does not exist")
	ErrValidation = errors.New("invalid input")
)
