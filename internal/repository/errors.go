package repository

import "errors"

// ErrNotFound is returned by mutations that target a missing row. Finders
// return (nil, nil) instead so callers can branch without error checks.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
// Requires TranslateError on the gorm connection.
var ErrDuplicate = errors.New("record already exists")
