// Package herrors provides custom error types for the completion helper.
// These error types carry stable codes so callers can distinguish a missing
// optimizer binary from unparseable help text without string matching.
package herrors

import (
	"fmt"
)

// HelperError is the base interface for all helper errors
type HelperError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all helper errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// FetchError represents a failure to run the optimizer binary for help text.
// Binary is the command that was attempted.
type FetchError struct {
	baseError
	Binary string
}

// NewFetchError creates a new fetch error
func NewFetchError(binary string, message string, cause error) *FetchError {
	return &FetchError{
		baseError: baseError{
			code:    "FETCH_FAILED",
			message: message,
			cause:   cause,
		},
		Binary: binary,
	}
}

// ParseError represents help text that matched none of the expected
// option-line patterns.
type ParseError struct {
	baseError
}

// NewParseError creates a new parse error
func NewParseError(message string) *ParseError {
	return &ParseError{
		baseError: baseError{
			code:    "PARSE_ERROR",
			message: message,
			cause:   nil,
		},
	}
}

// CacheError represents errors in cache operations
type CacheError struct {
	baseError
	Path string
}

// NewCacheError creates a new cache error
func NewCacheError(path string, message string, cause error) *CacheError {
	return &CacheError{
		baseError: baseError{
			code:    "CACHE_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ConfigError represents errors in configuration files
type ConfigError struct {
	baseError
	Path string
}

// NewConfigError creates a new configuration error
func NewConfigError(path string, message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// NotFoundError represents a command that could not be resolved on PATH
type NotFoundError struct {
	baseError
	Command string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(command string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   nil,
		},
		Command: command,
	}
}
