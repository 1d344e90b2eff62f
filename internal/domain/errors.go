package domain

import "errors"

var (
	// ErrFetchFailed covers transport errors, timeouts and non-200 responses.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrParseMismatch marks a page whose expected markup is missing.
	ErrParseMismatch = errors.New("expected markup not found")
	// ErrPersistence wraps store query and write failures.
	ErrPersistence = errors.New("persistence failure")
	// ErrConfigMissing is returned when a required credential is absent at startup.
	ErrConfigMissing = errors.New("configuration missing")
)
