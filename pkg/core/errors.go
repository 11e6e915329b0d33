package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory classifies a failure for propagation policy and reporting.
type ErrorCategory int

const (
	ErrCategoryNone      ErrorCategory = iota
	ErrCategoryLocator                 // Missing locator configuration; never retried
	ErrCategoryTimeout                 // Condition not reached before deadline
	ErrCategoryDriver                  // Automation server / transport failure
	ErrCategoryAssertion               // Observed state did not match expectation
	ErrCategoryCleanup                 // Raised inside cleanup/teardown; logged and suppressed
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryLocator:
		return "locator"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryDriver:
		return "driver"
	case ErrCategoryAssertion:
		return "assertion"
	case ErrCategoryCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// HarnessError is a structured error with category, machine-readable code
// and diagnostic details. Predeclared values below act as templates; the
// WithX helpers return copies so the templates stay immutable.
type HarnessError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Details  map[string]interface{}
	Cause    error
}

// Error implements the error interface.
func (e *HarnessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HarnessError) Unwrap() error {
	return e.Cause
}

// Is matches by code so copies made via WithX still compare equal to the
// predeclared templates under errors.Is.
func (e *HarnessError) Is(target error) bool {
	other, ok := target.(*HarnessError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *HarnessError) WithCause(cause error) *HarnessError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithMessage returns a copy of the error with a custom message.
func (e *HarnessError) WithMessage(msg string) *HarnessError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetails returns a copy of the error with additional details merged in.
func (e *HarnessError) WithDetails(details map[string]interface{}) *HarnessError {
	merged := make(map[string]interface{}, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	cp := *e
	cp.Details = merged
	return &cp
}

// Predefined errors.
var (
	// ErrUnknownLocator: a symbolic key has no entry for the target
	// platform. Always a harness configuration defect, never transient.
	ErrUnknownLocator = &HarnessError{
		Category: ErrCategoryLocator,
		Code:     "unknown_locator",
		Message:  "no locator configured for key",
	}

	// ErrElementNotFound: the query matched nothing right now. Pollable;
	// wait conditions treat it as "not yet", not as a failure.
	ErrElementNotFound = &HarnessError{
		Category: ErrCategoryAssertion,
		Code:     "element_not_found",
		Message:  "element not found",
	}

	// ErrWaitTimeout: a wait condition was never satisfied.
	ErrWaitTimeout = &HarnessError{
		Category: ErrCategoryTimeout,
		Code:     "wait_timeout",
		Message:  "wait condition timed out",
	}

	// ErrDriverCommand: the automation server rejected a command or the
	// transport failed.
	ErrDriverCommand = &HarnessError{
		Category: ErrCategoryDriver,
		Code:     "driver_command",
		Message:  "driver command failed",
	}

	// ErrTextMismatch: read text did not match the expected value.
	ErrTextMismatch = &HarnessError{
		Category: ErrCategoryAssertion,
		Code:     "text_mismatch",
		Message:  "text does not match expected value",
	}

	// ErrCleanup: wraps any error raised during cleanup or teardown.
	ErrCleanup = &HarnessError{
		Category: ErrCategoryCleanup,
		Code:     "cleanup",
		Message:  "cleanup failed",
	}
)

// NewTimeoutError builds an ErrWaitTimeout carrying the full condition
// context a failing test needs for diagnosis.
func NewTimeoutError(condition string, elapsed, deadline time.Duration, lastObserved string) *HarnessError {
	return ErrWaitTimeout.
		WithMessage(fmt.Sprintf("condition %q not met within %v", condition, deadline)).
		WithDetails(map[string]interface{}{
			"condition":    condition,
			"elapsed":      elapsed,
			"deadline":     deadline,
			"lastObserved": lastObserved,
		})
}

// NewUnknownLocatorError builds an ErrUnknownLocator for a symbolic key.
func NewUnknownLocatorError(screen, element string, platform Platform) *HarnessError {
	return ErrUnknownLocator.
		WithMessage(fmt.Sprintf("no locator for %s.%s on platform %s", screen, element, platform)).
		WithDetails(map[string]interface{}{
			"screen":   screen,
			"element":  element,
			"platform": string(platform),
		})
}

// CategoryOf extracts the error category, or ErrCategoryNone for plain errors.
func CategoryOf(err error) ErrorCategory {
	var he *HarnessError
	if errors.As(err, &he) {
		return he.Category
	}
	return ErrCategoryNone
}
