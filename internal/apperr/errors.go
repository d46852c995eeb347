package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrBadCachePayload = errors.New("malformed cache payload")
	ErrExport          = errors.New("export failed")
)
