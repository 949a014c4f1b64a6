package panelctl

import (
	"errors"
	"fmt"
)

// Common errors returned by lifecycle operations
var (
	// ErrNotRoot indicates the action requires root privileges
	ErrNotRoot = errors.New("panelctl: root privileges required")

	// ErrNotInstalled indicates the install directory does not exist
	ErrNotInstalled = errors.New("panelctl: not installed")

	// ErrAborted indicates the operator declined a confirmation prompt
	ErrAborted = errors.New("panelctl: aborted")

	// ErrNoPackageManager indicates no supported package manager was found
	ErrNoPackageManager = errors.New("panelctl: no supported package manager found, install python3 manually")
)

// OpError represents an error from a single lifecycle step
type OpError struct {
	// Op names the step that failed, e.g. "sync" or "unit write"
	Op string
	// Path is the file path involved in the step
	Path string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("panelctl %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates advisory failures that did not stop an action
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
