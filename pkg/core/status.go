package core

// TestStatus represents the execution status of a test case or suite.
type TestStatus int

const (
	StatusPending TestStatus = iota // Not yet started
	StatusRunning                   // Currently executing
	StatusPassed                    // Completed successfully
	StatusFailed                    // An action or assertion failed
	StatusErrored                   // Infrastructure failure (setup abort, driver loss)
	StatusSkipped                   // Not executed (setup aborted or platform-filtered)
)

// String returns the string representation of TestStatus.
func (s TestStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusErrored:
		return "errored"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// IsSuccess returns true if the status indicates success.
func (s TestStatus) IsSuccess() bool {
	return s == StatusPassed
}
