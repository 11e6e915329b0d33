package suite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/driver/mock"
	"github.com/devicelab-dev/appium-harness/pkg/logger"
)

func passingTest(name string) TestCase {
	return TestCase{Name: name, Run: func(core.Session) error { return nil }}
}

func failingTest(name string, err error) TestCase {
	return TestCase{Name: name, Run: func(core.Session) error { return err }}
}

func TestRun_AllPassing(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	r := NewRunner(sess)

	result := r.Run(context.Background(), Suite{
		Name:  "smoke",
		Tests: []TestCase{passingTest("a"), passingTest("b")},
	})

	if result.Status != core.StatusPassed {
		t.Errorf("Status = %v, want passed", result.Status)
	}
	if result.PassedTests != 2 || result.FailedTests != 0 {
		t.Errorf("summary = %d passed / %d failed", result.PassedTests, result.FailedTests)
	}
	if !result.Passed() {
		t.Error("Passed() should be true")
	}
	if r.Phase() != PhaseDone {
		t.Errorf("final phase = %v, want done", r.Phase())
	}
}

func TestRun_SetupRunsExactlyOnce(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	setupRuns := 0

	NewRunner(sess).Run(context.Background(), Suite{
		BeforeAll: func(core.Session) error { setupRuns++; return nil },
		Tests:     []TestCase{passingTest("a"), passingTest("b"), passingTest("c")},
	})

	if setupRuns != 1 {
		t.Errorf("BeforeAll ran %d times, want exactly 1", setupRuns)
	}
}

func TestRun_SetupFailureAbortsSuite(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	testsRan := 0
	teardownRan := false

	result := NewRunner(sess).Run(context.Background(), Suite{
		BeforeAll: func(core.Session) error {
			return core.NewUnknownLocatorError("search", "input", core.PlatformIOS)
		},
		AfterAll: func(core.Session) error { teardownRan = true; return nil },
		Tests: []TestCase{
			{Name: "a", Run: func(core.Session) error { testsRan++; return nil }},
			{Name: "b", Run: func(core.Session) error { testsRan++; return nil }},
		},
	})

	if testsRan != 0 {
		t.Errorf("%d tests ran after setup failure, want 0", testsRan)
	}
	if teardownRan {
		t.Error("teardown must not run when setup never established the fixture")
	}
	if result.Status != core.StatusErrored {
		t.Errorf("Status = %v, want errored", result.Status)
	}
	if result.SetupError == "" {
		t.Error("SetupError should be recorded")
	}
	if len(result.Tests) != 2 || result.Tests[0].Status != core.StatusSkipped {
		t.Error("tests should be recorded as skipped")
	}
	if result.Passed() {
		t.Error("Passed() must be false after setup abort")
	}
}

func TestRun_TestFailureDoesNotAbortSuite(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	failure := core.NewTimeoutError("result displayed", 5, 5, "element not present")

	result := NewRunner(sess).Run(context.Background(), Suite{
		Tests: []TestCase{
			failingTest("broken", failure),
			passingTest("healthy"),
		},
	})

	if result.Tests[0].Status != core.StatusFailed {
		t.Errorf("Tests[0].Status = %v, want failed", result.Tests[0].Status)
	}
	if result.Tests[0].Category != core.ErrCategoryTimeout {
		t.Errorf("Tests[0].Category = %v, want timeout", result.Tests[0].Category)
	}
	if result.Tests[1].Status != core.StatusPassed {
		t.Errorf("Tests[1].Status = %v, next test must still run and pass", result.Tests[1].Status)
	}
	if result.Status != core.StatusFailed {
		t.Errorf("Status = %v, want failed", result.Status)
	}
}

func TestRun_CleanupRunsAfterEveryTest(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	cleanups := 0

	NewRunner(sess).Run(context.Background(), Suite{
		AfterEach: func(core.Session) error { cleanups++; return nil },
		Tests: []TestCase{
			passingTest("a"),
			failingTest("b", errors.New("boom")),
			passingTest("c"),
		},
	})

	if cleanups != 3 {
		t.Errorf("AfterEach ran %d times, want 3 (pass or fail)", cleanups)
	}
}

func TestRun_CleanupFailureDoesNotCascade(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	cleanupCall := 0

	result := NewRunner(sess).Run(context.Background(), Suite{
		AfterEach: func(core.Session) error {
			cleanupCall++
			if cleanupCall == 1 {
				return errors.New("back navigation wedged")
			}
			return nil
		},
		Tests: []TestCase{passingTest("first"), passingTest("second")},
	})

	if result.Tests[0].Status != core.StatusPassed {
		t.Errorf("Tests[0] = %v; its own cleanup failure must not fail it", result.Tests[0].Status)
	}
	if result.Tests[1].Status != core.StatusPassed {
		t.Errorf("Tests[1] = %v; previous cleanup failure must not affect it", result.Tests[1].Status)
	}
	if result.Status != core.StatusPassed {
		t.Errorf("Status = %v, cleanup failures are warnings", result.Status)
	}
	if len(result.CleanupWarnings) != 1 {
		t.Fatalf("CleanupWarnings = %v, want exactly 1", result.CleanupWarnings)
	}
	if !strings.Contains(result.CleanupWarnings[0], "first") {
		t.Errorf("warning should name the test: %q", result.CleanupWarnings[0])
	}
}

func TestRun_TeardownFailureIsSuppressed(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)

	result := NewRunner(sess).Run(context.Background(), Suite{
		AfterAll: func(core.Session) error { return errors.New("session hiccup") },
		Tests:    []TestCase{passingTest("a")},
	})

	if result.Status != core.StatusPassed {
		t.Errorf("Status = %v, teardown failure must not fail the suite", result.Status)
	}
	if len(result.CleanupWarnings) != 1 {
		t.Errorf("CleanupWarnings = %v, want the teardown warning", result.CleanupWarnings)
	}
}

func TestRun_PlatformFilter(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	iosRan := false

	result := NewRunner(sess).Run(context.Background(), Suite{
		Tests: []TestCase{
			{Name: "ios-only", Platforms: []core.Platform{core.PlatformIOS},
				Run: func(core.Session) error { iosRan = true; return nil }},
			passingTest("everywhere"),
		},
	})

	if iosRan {
		t.Error("ios-only case must not run on android")
	}
	if result.Tests[0].Status != core.StatusSkipped {
		t.Errorf("Tests[0].Status = %v, want skipped", result.Tests[0].Status)
	}
	if result.Status != core.StatusPassed {
		t.Errorf("Status = %v, skipped cases do not fail the suite", result.Status)
	}
}

func TestRun_ContextCancellationSkipsRemaining(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	ctx, cancel := context.WithCancel(context.Background())

	result := NewRunner(sess).Run(ctx, Suite{
		Tests: []TestCase{
			{Name: "a", Run: func(core.Session) error { cancel(); return nil }},
			passingTest("b"),
		},
	})

	if result.Tests[0].Status != core.StatusPassed {
		t.Errorf("Tests[0].Status = %v, in-flight test completes", result.Tests[0].Status)
	}
	if result.Tests[1].Status != core.StatusSkipped {
		t.Errorf("Tests[1].Status = %v, want skipped after cancel", result.Tests[1].Status)
	}
}

func TestRun_InfrastructureErrorsMarkTestErrored(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)

	result := NewRunner(sess).Run(context.Background(), Suite{
		Tests: []TestCase{
			failingTest("bad-locator", core.NewUnknownLocatorError("search", "input", core.PlatformAndroid)),
			failingTest("driver-down", core.ErrDriverCommand.WithMessage("connection refused")),
		},
	})

	for i, want := range []core.TestStatus{core.StatusErrored, core.StatusErrored} {
		if result.Tests[i].Status != want {
			t.Errorf("Tests[%d].Status = %v, want %v", i, result.Tests[i].Status, want)
		}
	}
}

func TestRun_CapturesPerTestLogs(t *testing.T) {
	logger.Close()
	sess := mock.New(core.PlatformAndroid)

	result := NewRunner(sess).Run(context.Background(), Suite{
		Tests: []TestCase{
			{Name: "chatty", Run: func(core.Session) error {
				logger.Info("looking for the search box")
				return nil
			}},
		},
	})

	joined := strings.Join(result.Tests[0].Logs, "\n")
	if !strings.Contains(joined, "looking for the search box") {
		t.Errorf("test logs missing action line: %v", result.Tests[0].Logs)
	}
}

func TestRun_Callbacks(t *testing.T) {
	sess := mock.New(core.PlatformAndroid)
	r := NewRunner(sess)

	var started, ended []string
	r.OnTestStart = func(idx, total int, name string) { started = append(started, name) }
	r.OnTestEnd = func(name string, status core.TestStatus, _ time.Duration, _ string) {
		ended = append(ended, name+":"+status.String())
	}

	r.Run(context.Background(), Suite{
		Tests: []TestCase{passingTest("a"), failingTest("b", errors.New("nope"))},
	})

	if len(started) != 2 || started[0] != "a" || started[1] != "b" {
		t.Errorf("started = %v", started)
	}
	if len(ended) != 2 || ended[0] != "a:passed" || ended[1] != "b:failed" {
		t.Errorf("ended = %v", ended)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseSuiteSetup, "suite-setup"},
		{PhaseTestRunning, "test-running"},
		{PhaseTestCleanup, "test-cleanup"},
		{PhaseSuiteTeardown, "suite-teardown"},
		{PhaseDone, "done"},
		{Phase(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
