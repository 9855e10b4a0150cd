package resume

import (
	"errors"
	"fmt"
)

// ErrorKind classifies load failures so callers can branch on them without
// string matching.
type ErrorKind int

const (
	// ErrKindNotFound means the config file does not exist.
	ErrKindNotFound ErrorKind = iota
	// ErrKindRead means the file exists but could not be read.
	ErrKindRead
	// ErrKindParse means the file is not valid JSON.
	ErrKindParse
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindRead:
		return "read_error"
	case ErrKindParse:
		return "parse_error"
	default:
		return "unknown"
	}
}

// LoadError is returned by Load for any failure to produce a parsed config.
// Hints carries actionable remediation guidance for parse failures.
type LoadError struct {
	Kind  ErrorKind
	Path  string
	Hints []string
	Err   error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a config-not-found load failure.
func IsNotFound(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == ErrKindNotFound
}

// IsParseError reports whether err is a JSON parse failure.
func IsParseError(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == ErrKindParse
}
