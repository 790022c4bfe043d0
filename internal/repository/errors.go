package repository

import "errors"

// ErrNotFound is returned by mutating operations that matched no row.
// Read operations return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")
