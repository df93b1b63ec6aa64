// Package lts provides the error taxonomy for release feed checking.
package lts

import (
	"errors"
	"fmt"
)

// Error variables matched with errors.Is against the typed errors below
var (
	// ErrFetch is matched by every *FetchError
	ErrFetch = errors.New("fetch failed")
	// ErrParse is matched by every *ParseError
	ErrParse = errors.New("parse failed")
	// ErrNoQualifying is matched by every *LogicError
	ErrNoQualifying = errors.New("no qualifying release")
)

// FetchError reports a transport failure or a non-success HTTP status.
type FetchError struct {
	// URL is the endpoint that was requested
	URL string
	// StatusCode is the HTTP status, zero for transport failures
	StatusCode int
	// Err is the underlying transport error, if any
	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error { return e.Err }

// Is reports ErrFetch so callers can match the category
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError reports a document that is not valid JSON or lacks the expected shape.
type ParseError struct {
	// Source names the file or URL the document came from
	Source string
	// Err describes what was wrong
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse so callers can match the category
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// LogicError reports that filtering left nothing to choose from.
type LogicError struct {
	Msg string
}

func (e *LogicError) Error() string { return e.Msg }

// Is reports ErrNoQualifying so callers can match the category
func (e *LogicError) Is(target error) bool { return target == ErrNoQualifying }
