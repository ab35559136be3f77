package ats

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when there is no usable text to analyze
var ErrEmptyInput = errors.New("no extractable text found in resume")

// ErrUnknownDomain is returned when a caller asks for a profile that is not configured
var ErrUnknownDomain = errors.New("unknown domain")

// ConfigError describes a malformed keyword or section configuration.
// It is meant to stop startup, not to be shown per request.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid scoring configuration: " + strings.Join(e.Problems, "; ")
}

// IsConfigError reports whether err is (or wraps) a ConfigError
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
