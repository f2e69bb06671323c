package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types used across stest packages
var (
	ErrPathInvalid       = errors.New("path contains invalid characters")
	ErrInvalidWorkers    = errors.New("worker count must be at least 1")
	ErrInvalidPattern    = errors.New("exclude pattern cannot be empty")
	ErrUnknownTest       = errors.New("unknown test")
	ErrNoCandidatePassed = errors.New("no candidate passed")
)

// ValidatePathCharacters validates that a path doesn't contain a NUL byte,
// which no filesystem lookup can accept.
func ValidatePathCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%q: %w", path, ErrPathInvalid)
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	context := fmt.Sprintf(message, args...)
	return fmt.Errorf("%s: %w", context, err)
}
