// Package wait polls a condition against the session until it holds or a
// deadline passes. It is the only synchronization mechanism in the harness:
// fixed-duration sleeps are never used to wait for UI state.
package wait

import (
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

// Caller defaults. Individual actions pick their own deadlines; a cold
// start warrants a longer one than an element that should already be up.
const (
	DefaultTimeout  = 15 * time.Second
	ShortTimeout    = 3 * time.Second
	DefaultInterval = 200 * time.Millisecond
)

// Condition is a pollable predicate. Probe reports whether the condition
// holds, a description of what was observed (kept for timeout diagnostics),
// and an error. Any non-nil error aborts the wait immediately: locator and
// driver failures are defects, not states to poll through.
type Condition struct {
	Describe string
	Probe    func() (ok bool, observed string, err error)
}

// Until re-evaluates the condition every interval until it first holds,
// returning as soon as it does. If the deadline passes first it returns a
// timeout error carrying elapsed time, the deadline, and the last observed
// state. Not reentrant: one outstanding wait per session, which the
// sequential orchestration guarantees by construction.
func Until(cond Condition, timeout, interval time.Duration) error {
	start := time.Now()
	deadline := start.Add(timeout)
	lastObserved := "not yet evaluated"

	for {
		ok, observed, err := cond.Probe()
		if observed != "" {
			lastObserved = observed
		}
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return core.NewTimeoutError(cond.Describe, time.Since(start), timeout, lastObserved)
		}
		time.Sleep(interval)
	}
}
