package core

import "time"

// TestResult captures the complete outcome of executing a single test case.
type TestResult struct {
	// Identity
	Name  string `json:"name"`
	Index int    `json:"index"` // 0-based position in the suite

	// Status
	Status   TestStatus    `json:"status"`
	Category ErrorCategory `json:"errorCategory,omitempty"`

	// Timing
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	// Error details (empty when passed)
	Error string `json:"error,omitempty"`

	// Log lines captured while the test (and its cleanup) ran
	Logs []string `json:"logs,omitempty"`
}

// SuiteResult captures the complete outcome of one suite run.
type SuiteResult struct {
	// Identity
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`

	// Status (aggregated from tests; errored when setup aborted)
	Status TestStatus `json:"status"`

	// Timing
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`

	// Results
	Tests []TestResult `json:"tests"`

	// SetupError is set when suite setup aborted the run. No tests
	// execute in that case; they are recorded as skipped.
	SetupError string `json:"setupError,omitempty"`

	// CleanupWarnings records suppressed cleanup/teardown failures so
	// operators can detect creeping fixture drift.
	CleanupWarnings []string `json:"cleanupWarnings,omitempty"`

	// Summary (computed)
	TotalTests   int `json:"totalTests"`
	PassedTests  int `json:"passedTests"`
	FailedTests  int `json:"failedTests"`
	SkippedTests int `json:"skippedTests"`
}

// ComputeSummary calculates test counts from the Tests slice.
func (r *SuiteResult) ComputeSummary() {
	r.TotalTests = len(r.Tests)
	r.PassedTests = 0
	r.FailedTests = 0
	r.SkippedTests = 0

	for _, t := range r.Tests {
		switch t.Status {
		case StatusPassed:
			r.PassedTests++
		case StatusFailed, StatusErrored:
			r.FailedTests++
		case StatusSkipped:
			r.SkippedTests++
		}
	}
}

// AggregateStatus determines the suite status from its tests.
// Setup abort dominates; otherwise any failed test fails the suite.
// Cleanup warnings never change the aggregate.
func (r *SuiteResult) AggregateStatus() TestStatus {
	if r.SetupError != "" {
		return StatusErrored
	}
	for _, t := range r.Tests {
		if t.Status == StatusFailed || t.Status == StatusErrored {
			return StatusFailed
		}
	}
	return StatusPassed
}

// Passed reports whether every executed test passed and setup did not abort.
func (r *SuiteResult) Passed() bool {
	s := r.AggregateStatus()
	return s == StatusPassed
}
