package ports

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrLocationUnavailable = errors.New("location unavailable")
)
