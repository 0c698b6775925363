package repository

import "errors"

// ErrNotFound is wrapped by Get* methods when no row matches.
var ErrNotFound = errors.New("not found")
