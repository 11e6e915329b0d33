package wait

import (
	"errors"
	"testing"
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

func alwaysTrue() Condition {
	return Condition{
		Describe: "always true",
		Probe:    func() (bool, string, error) { return true, "satisfied", nil },
	}
}

func neverTrue() Condition {
	return Condition{
		Describe: "never true",
		Probe:    func() (bool, string, error) { return false, "still waiting", nil },
	}
}

func trueAfter(n int) Condition {
	calls := 0
	return Condition{
		Describe: "true after n probes",
		Probe: func() (bool, string, error) {
			calls++
			if calls >= n {
				return true, "satisfied", nil
			}
			return false, "not yet", nil
		},
	}
}

func TestUntil_ImmediateSuccess(t *testing.T) {
	start := time.Now()
	if err := Until(alwaysTrue(), time.Second, 100*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Until took %v, should return without waiting on first success", elapsed)
	}
}

func TestUntil_EarlyExit(t *testing.T) {
	// Condition becomes true on the third probe. With a 20ms interval the
	// wait must finish around 2 intervals, nowhere near the 5s timeout.
	interval := 20 * time.Millisecond
	start := time.Now()

	if err := Until(trueAfter(3), 5*time.Second, interval); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	elapsed := time.Since(start)
	if elapsed >= time.Second {
		t.Errorf("Until took %v, expected early exit well before the timeout", elapsed)
	}
}

func TestUntil_Exhaustion(t *testing.T) {
	timeout := 100 * time.Millisecond
	interval := 20 * time.Millisecond
	start := time.Now()

	err := Until(neverTrue(), timeout, interval)
	elapsed := time.Since(start)

	if !errors.Is(err, core.ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
	if elapsed < timeout {
		t.Errorf("returned after %v, before the %v deadline", elapsed, timeout)
	}
	// One interval of slack plus scheduling noise.
	if elapsed > timeout+interval+50*time.Millisecond {
		t.Errorf("returned after %v, too long past deadline %v", elapsed, timeout)
	}
}

func TestUntil_TimeoutCarriesContext(t *testing.T) {
	err := Until(neverTrue(), 30*time.Millisecond, 10*time.Millisecond)

	var he *core.HarnessError
	if !errors.As(err, &he) {
		t.Fatalf("expected HarnessError, got %T", err)
	}
	if he.Details["condition"] != "never true" {
		t.Errorf("condition detail = %v", he.Details["condition"])
	}
	if he.Details["deadline"] != 30*time.Millisecond {
		t.Errorf("deadline detail = %v, want 30ms", he.Details["deadline"])
	}
	if he.Details["lastObserved"] != "still waiting" {
		t.Errorf("lastObserved detail = %v", he.Details["lastObserved"])
	}
	elapsed, ok := he.Details["elapsed"].(time.Duration)
	if !ok || elapsed < 30*time.Millisecond {
		t.Errorf("elapsed detail = %v, want >= deadline", he.Details["elapsed"])
	}
}

func TestUntil_ProbeErrorAbortsImmediately(t *testing.T) {
	// Configuration and driver errors must not be polled through.
	probes := 0
	cond := Condition{
		Describe: "defective",
		Probe: func() (bool, string, error) {
			probes++
			return false, "", core.ErrUnknownLocator
		},
	}
	start := time.Now()

	err := Until(cond, time.Second, 50*time.Millisecond)

	if !errors.Is(err, core.ErrUnknownLocator) {
		t.Fatalf("expected ErrUnknownLocator, got %v", err)
	}
	if probes != 1 {
		t.Errorf("probe ran %d times, want 1 (never retried)", probes)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("abort should not wait out the interval")
	}
}

func TestUntil_ZeroTimeoutProbesOnce(t *testing.T) {
	probes := 0
	cond := Condition{
		Describe: "single shot",
		Probe: func() (bool, string, error) {
			probes++
			return false, "nope", nil
		},
	}

	err := Until(cond, 0, 50*time.Millisecond)
	if !errors.Is(err, core.ErrWaitTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if probes != 1 {
		t.Errorf("probe ran %d times, want 1", probes)
	}
}
