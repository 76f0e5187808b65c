package repository

import "errors"

// ErrNotFound is returned by Find* methods when no row matches. Grounded on
// infrastructure/database/errors.go's ErrNotFound sentinel.
var ErrNotFound = errors.New("record not found")
