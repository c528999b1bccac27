package vmem

import (
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Rejected before a run starts
	ErrCodeConfiguration
	ErrCodeTraceUnavailable

	// Input errors
	ErrCodeTraceFormat

	// Contract violations inside the replacement engine
	ErrCodePolicyPrecondition
)

// String returns a short name for the code
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInternal:
		return "internal"
	case ErrCodeConfiguration:
		return "configuration"
	case ErrCodeTraceUnavailable:
		return "trace unavailable"
	case ErrCodeTraceFormat:
		return "trace format"
	case ErrCodePolicyPrecondition:
		return "policy precondition"
	default:
		return "unknown"
	}
}

// SimError represents a simulator error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Sentinels for errors.Is; only the code is compared.
var (
	ErrConfiguration      = &SimError{Code: ErrCodeConfiguration, Message: "configuration error"}
	ErrTraceUnavailable   = &SimError{Code: ErrCodeTraceUnavailable, Message: "trace unavailable"}
	ErrTraceFormat        = &SimError{Code: ErrCodeTraceFormat, Message: "malformed trace record"}
	ErrPolicyPrecondition = &SimError{Code: ErrCodePolicyPrecondition, Message: "policy precondition violated"}
)

// Helper functions for common errors

func ErrInvalidFrames(op string, frames int) *SimError {
	return NewSimError(
		ErrCodeConfiguration,
		op,
		fmt.Sprintf("frame count must be between 1 and %d, got %d", MaxFrames, frames),
		nil,
	)
}

func ErrUnknownPolicy(op string, name string) *SimError {
	return NewSimError(
		ErrCodeConfiguration,
		op,
		fmt.Sprintf("unknown replacement policy %q (must be rdm, lru, fifo, or clock)", name),
		nil,
	)
}

func ErrMalformedRecord(op string, line int, reason string) *SimError {
	return NewSimError(
		ErrCodeTraceFormat,
		op,
		fmt.Sprintf("line %d: %s", line, reason),
		nil,
	)
}

func ErrTraceOpen(op string, path string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceUnavailable,
		op,
		fmt.Sprintf("cannot open trace %s", path),
		err,
	)
}

func ErrPrecondition(op string, message string) *SimError {
	return NewSimError(
		ErrCodePolicyPrecondition,
		op,
		message,
		nil,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the error code from an error chain, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	for err != nil {
		if se, ok := err.(*SimError); ok {
			return se.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ErrCodeUnknown
		}
		err = u.Unwrap()
	}
	return ErrCodeUnknown
}
