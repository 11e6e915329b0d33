// Package suite orchestrates test execution around a shared session:
// suite-level setup, per-test isolation, and suite-level teardown. The
// lifecycle is a fixed state machine
//
//	Idle -> SuiteSetup -> (TestRunning -> TestCleanup)* -> SuiteTeardown -> Done
//
// with one suppression policy per phase: setup failures abort the run,
// test failures fail only their test, cleanup and teardown failures are
// logged and suppressed.
package suite

import (
	"github.com/devicelab-dev/appium-harness/pkg/core"
)

// Phase is a state of the suite lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSuiteSetup
	PhaseTestRunning
	PhaseTestCleanup
	PhaseSuiteTeardown
	PhaseDone
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSuiteSetup:
		return "suite-setup"
	case PhaseTestRunning:
		return "test-running"
	case PhaseTestCleanup:
		return "test-cleanup"
	case PhaseSuiteTeardown:
		return "suite-teardown"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Hook is a lifecycle function run against the shared session.
type Hook func(sess core.Session) error

// TestCase is an ordered sequence of page-object actions and assertions,
// expressed as a single function against the shared session.
type TestCase struct {
	Name string
	// Platforms restricts the case to the listed platforms. Empty means
	// all platforms; non-matching cases are recorded as skipped.
	Platforms []core.Platform
	Run       func(sess core.Session) error
}

// runsOn reports whether the case applies to the platform.
func (tc TestCase) runsOn(p core.Platform) bool {
	if len(tc.Platforms) == 0 {
		return true
	}
	for _, allowed := range tc.Platforms {
		if allowed == p {
			return true
		}
	}
	return false
}

// Suite bundles lifecycle hooks with an ordered list of test cases.
type Suite struct {
	Name string

	// BeforeAll establishes the fixture invariant (app launched, past
	// onboarding, locators validated). Runs exactly once; any failure is
	// fatal to the whole run and no test executes.
	BeforeAll Hook

	// AfterEach returns the UI to the canonical root screen after every
	// test, pass or fail. Failures here are logged and suppressed.
	AfterEach Hook

	// AfterAll runs exactly once after the last cleanup. Failures are
	// logged and suppressed; the suite verdict is already determined.
	AfterAll Hook

	Tests []TestCase
}
