package herrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := NewFetchError("tilefirst-opt", "failed to run help command", cause)

	assert.Equal(t, "FETCH_FAILED", err.Code())
	assert.Equal(t, "tilefirst-opt", err.Binary)
	assert.Contains(t, err.Error(), "failed to run help command")
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestParseError(t *testing.T) {
	err := NewParseError("no option lines found in help output")

	assert.Equal(t, "PARSE_ERROR", err.Code())
	assert.Equal(t, "no option lines found in help output", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestCacheError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewCacheError("/home/user/.cache/mlircomp/cache.json", "failed to write cache", cause)

	assert.Equal(t, "CACHE_ERROR", err.Code())
	assert.Equal(t, "/home/user/.cache/mlircomp/cache.json", err.Path)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestConfigError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigError("/path/to/config.yml", "failed to parse config", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/config.yml", err.Path)
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("tilefirst-opt", "command not found on PATH")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "tilefirst-opt", err.Command)
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorsAreHelperErrors(t *testing.T) {
	var errs = []HelperError{
		NewFetchError("opt", "m", nil),
		NewParseError("m"),
		NewCacheError("/p", "m", nil),
		NewConfigError("/p", "m", nil),
		NewNotFoundError("opt", "m"),
	}

	for _, err := range errs {
		assert.NotEmpty(t, err.Code())
		assert.NotEmpty(t, err.Error())
	}
}
