package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// LoadError reports a fetch whose status fell outside the success range.
type LoadError struct {
	Source     string
	StatusCode int
	Message    string
}

func (e *LoadError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		return fmt.Sprintf("load %s: status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("load %s: status %d: %s", e.Source, e.StatusCode, msg)
}

// ParseError reports a body that was not a JSON object.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsLoadError attempts to unwrap an error into a LoadError.
func AsLoadError(err error) (*LoadError, bool) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr, true
	}
	return nil, false
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}
