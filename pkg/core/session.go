package core

import "time"

// ElementHandle is an opaque reference to an element previously found on
// the device. Handles are only valid for the Session that produced them
// and may go stale when the UI changes.
type ElementHandle string

// Session defines the primitive device operations the harness builds on.
// Implementations: Appium (W3C WebDriver), mock.
//
// A Session is the sole owner of one live connection to the automation
// server. It is opened exactly once before any suite hook runs and closed
// exactly once after the suite completes, regardless of test outcomes.
// Each primitive is a single round trip; there is no batching, and at most
// one command is in flight at a time (enforced by the sequential caller,
// not by locking).
type Session interface {
	// FindElement locates at most one element matching the locator.
	// A missing element is reported as ErrElementNotFound, which callers
	// treat as a pollable condition, not a defect.
	FindElement(loc Locator) (ElementHandle, error)

	// Click taps the element.
	Click(h ElementHandle) error

	// SetText replaces the element's text content.
	SetText(h ElementHandle, text string) error

	// GetText reads the element's visible text.
	GetText(h ElementHandle) (string, error)

	// IsDisplayed reports whether the element is currently visible.
	IsDisplayed(h ElementHandle) (bool, error)

	// Back performs device-level back navigation.
	Back() error

	// Sleep pauses for the given duration. Harness logic synchronizes on
	// wait conditions instead; this exists for driver-level settling only.
	Sleep(d time.Duration)

	// Platform returns the platform the session is driving.
	Platform() Platform

	// Close terminates the session. Safe to call when no session is open.
	Close() error
}
