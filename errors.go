// Package vmperf structured error types
package vmperf

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Configuration errors, raised before any measurement starts
	ErrTypeConfig ErrorType = iota
	// Capability mismatches between the operation family and its kernels
	ErrTypeCapability
	// Failures of the system information provider or the kernel library
	ErrTypeExternal
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vmperf %s error in %s: %s (caused by: %v)",
			e.Type, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("vmperf %s error in %s: %s", e.Type, e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfig:
		return "Config"
	case ErrTypeCapability:
		return "Capability"
	case ErrTypeExternal:
		return "External"
	default:
		return "Unknown"
	}
}

// NewConfigError creates a configuration error
func NewConfigError(op string, message string) error {
	return &Error{Type: ErrTypeConfig, Op: op, Message: message}
}

// NewCapabilityError creates a capability mismatch error
func NewCapabilityError(op string, message string, err error) error {
	return &Error{Type: ErrTypeCapability, Op: op, Message: message, Err: err}
}

// NewExternalError creates an error for a failed external collaborator
func NewExternalError(op string, message string, err error) error {
	return &Error{Type: ErrTypeExternal, Op: op, Message: message, Err: err}
}

var (
	// ErrNoOperations indicates the filter left nothing to measure
	ErrNoOperations = NewConfigError("Driver", "no supported operations to measure")

	// ErrTooManyCores indicates a core override above the physical core count
	ErrTooManyCores = NewConfigError("PerfMonitor", "core override exceeds physical cores")
)

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return isType(err, ErrTypeConfig)
}

// IsCapabilityError checks if an error is a capability error
func IsCapabilityError(err error) bool {
	return isType(err, ErrTypeCapability)
}

// IsExternalError checks if an error is an external error
func IsExternalError(err error) bool {
	return isType(err, ErrTypeExternal)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}
