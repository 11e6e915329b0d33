package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/logger"
)

// Runner executes one suite against one session. It never invokes two
// session operations concurrently: the whole run is a single sequential
// stream, which is the only in-flight-command discipline the remote
// connection gets or needs.
type Runner struct {
	sess  core.Session
	phase Phase

	// Live progress callbacks, used by the CLI for console output.
	OnTestStart func(idx, total int, name string)
	OnTestEnd   func(name string, status core.TestStatus, duration time.Duration, errMsg string)
}

// NewRunner creates a Runner for the session.
func NewRunner(sess core.Session) *Runner {
	return &Runner{sess: sess, phase: PhaseIdle}
}

// Phase returns the runner's current lifecycle phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

func (r *Runner) transition(p Phase) {
	logger.Debug("lifecycle: %s -> %s", r.phase, p)
	r.phase = p
}

// Run executes the suite and returns its result. The context is checked
// between tests only; an in-flight device command is never aborted, and
// cancellation inside a test surfaces as that test's own deadline errors.
func (r *Runner) Run(ctx context.Context, s Suite) *core.SuiteResult {
	result := &core.SuiteResult{
		Name:      s.Name,
		Platform:  r.sess.Platform(),
		StartTime: time.Now(),
	}

	r.transition(PhaseSuiteSetup)
	if err := r.runSetup(s); err != nil {
		// Fatal: the fixture invariant cannot be assumed. No test runs,
		// and there is no established fixture for teardown to undo.
		logger.Error("suite setup failed: %v", err)
		result.SetupError = err.Error()
		for i, tc := range s.Tests {
			result.Tests = append(result.Tests, core.TestResult{
				Name:   tc.Name,
				Index:  i,
				Status: core.StatusSkipped,
				Error:  "suite setup aborted the run",
			})
		}
		r.finish(result)
		return result
	}

	for i, tc := range s.Tests {
		result.Tests = append(result.Tests, r.runTest(ctx, s, i, len(s.Tests), tc, result))
	}

	r.transition(PhaseSuiteTeardown)
	if s.AfterAll != nil {
		if err := s.AfterAll(r.sess); err != nil {
			warning := core.ErrCleanup.WithMessage("suite teardown failed").WithCause(err)
			logger.Warn("%v", warning)
			result.CleanupWarnings = append(result.CleanupWarnings, warning.Error())
		}
	}

	r.finish(result)
	return result
}

func (r *Runner) runSetup(s Suite) error {
	if s.BeforeAll == nil {
		return nil
	}
	logger.Info("suite %q: setup", s.Name)
	return s.BeforeAll(r.sess)
}

// runTest executes one case plus its cleanup. Cleanup runs regardless of
// the test's outcome and can neither fail this test nor block the next.
func (r *Runner) runTest(ctx context.Context, s Suite, idx, total int, tc TestCase, suiteResult *core.SuiteResult) core.TestResult {
	tr := core.TestResult{
		Name:      tc.Name,
		Index:     idx,
		StartTime: time.Now(),
	}

	if ctx.Err() != nil {
		tr.Status = core.StatusSkipped
		tr.Error = "run cancelled"
		return tr
	}
	if !tc.runsOn(r.sess.Platform()) {
		tr.Status = core.StatusSkipped
		tr.Error = fmt.Sprintf("not applicable on platform %s", r.sess.Platform())
		return tr
	}

	if r.OnTestStart != nil {
		r.OnTestStart(idx, total, tc.Name)
	}
	logger.StartCapture()

	r.transition(PhaseTestRunning)
	logger.Info("test %q: start", tc.Name)
	err := tc.Run(r.sess)

	r.transition(PhaseTestCleanup)
	if s.AfterEach != nil {
		if cleanupErr := s.AfterEach(r.sess); cleanupErr != nil {
			warning := core.ErrCleanup.
				WithMessage(fmt.Sprintf("cleanup after test %q failed", tc.Name)).
				WithCause(cleanupErr)
			logger.Warn("%v", warning)
			suiteResult.CleanupWarnings = append(suiteResult.CleanupWarnings, warning.Error())
		}
	}

	tr.Duration = time.Since(tr.StartTime)
	tr.Logs = logger.StopCapture()

	if err != nil {
		tr.Category = core.CategoryOf(err)
		tr.Error = err.Error()
		tr.Status = statusForError(tr.Category)
		logger.Error("test %q: %s (%s): %v", tc.Name, tr.Status, tr.Category, err)
	} else {
		tr.Status = core.StatusPassed
		logger.Info("test %q: passed in %v", tc.Name, tr.Duration.Round(time.Millisecond))
	}

	if r.OnTestEnd != nil {
		r.OnTestEnd(tc.Name, tr.Status, tr.Duration, tr.Error)
	}
	return tr
}

// statusForError maps the error taxonomy onto test status: expectation
// failures (assertions, timeouts) fail the test, infrastructure defects
// (locator configuration, driver loss) error it. Either way the suite
// continues.
func statusForError(cat core.ErrorCategory) core.TestStatus {
	switch cat {
	case core.ErrCategoryLocator, core.ErrCategoryDriver:
		return core.StatusErrored
	default:
		return core.StatusFailed
	}
}

func (r *Runner) finish(result *core.SuiteResult) {
	result.Duration = time.Since(result.StartTime)
	result.ComputeSummary()
	result.Status = result.AggregateStatus()
	r.transition(PhaseDone)
	logger.Info("suite %q: %s (%d passed, %d failed, %d skipped)",
		result.Name, result.Status, result.PassedTests, result.FailedTests, result.SkippedTests)
}
