package application

import "errors"

var (
	// ErrUnsupportedDBType ...
	ErrUnsupportedDBType = errors.New("unsupported db type")
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrInvalidConcurrency ...
	ErrInvalidConcurrency = errors.New("concurrency must not be negative")
	// ErrMissingIndexRanges ...
	ErrMissingIndexRanges = errors.New("at least one index range is required")
)
