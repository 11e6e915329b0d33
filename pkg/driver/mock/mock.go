// Package mock provides a scriptable in-memory session for testing the
// harness without a device or automation server.
package mock

import (
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

// Element describes one scripted element. Elements are keyed by locator
// query value, so the same script serves any platform the registry maps
// onto it.
type Element struct {
	// Text returned by GetText.
	Text string
	// AppearAfter delays findability: the element is not found until this
	// much time has passed since session creation (or the last Reset).
	// Zero means findable immediately.
	AppearAfter time.Duration
	// Present-but-invisible elements are found yet report not displayed.
	Hidden bool
	// OnClick runs when the element is clicked, letting scripts reveal or
	// remove other elements the way a real app would.
	OnClick func(s *Session)
	// OnSetText runs when text is typed into the element.
	OnSetText func(s *Session, text string)
}

// Session is a mock implementation of core.Session.
type Session struct {
	platform core.Platform
	start    time.Time
	elements map[string]*Element

	// Navigation depth above the root screen. Back at depth zero is a
	// no-op success ("already home" is a success state).
	depth int

	// Injectable failures
	FindErr error // returned by FindElement for any locator when set
	BackErr error // returned by Back when set

	// OnBack runs after each successful Back, letting scripts reveal the
	// screen navigation lands on.
	OnBack func(s *Session)

	// Call accounting for assertions
	FindCalls  int
	ClickCalls int
	BackCalls  int
	CloseCalls int
	Slept      time.Duration

	closed bool
}

// New creates a mock session for the given platform.
func New(platform core.Platform) *Session {
	return &Session{
		platform: platform,
		start:    time.Now(),
		elements: make(map[string]*Element),
	}
}

// AddElement scripts an element under a locator query value.
func (s *Session) AddElement(value string, el Element) {
	e := el
	if el.AppearAfter > 0 {
		// AppearAfter counts from now, not from session creation, so
		// scripts can stage elements mid-test.
		e.AppearAfter = time.Since(s.start) + el.AppearAfter
	}
	s.elements[value] = &e
}

// RemoveElement deletes a scripted element.
func (s *Session) RemoveElement(value string) {
	delete(s.elements, value)
}

// PushScreen and Depth let scripts model navigation state for cleanup tests.
func (s *Session) PushScreen() { s.depth++ }

// Depth returns the current navigation depth above root.
func (s *Session) Depth() int { return s.depth }

// Reset restarts the appearance clock.
func (s *Session) Reset() { s.start = time.Now() }

// FindElement implements core.Session.
func (s *Session) FindElement(loc core.Locator) (core.ElementHandle, error) {
	s.FindCalls++
	if s.FindErr != nil {
		return "", s.FindErr
	}
	el, ok := s.elements[loc.Value]
	if !ok {
		return "", core.ErrElementNotFound.WithDetails(map[string]interface{}{"locator": loc.Key()})
	}
	if el.AppearAfter > 0 && time.Since(s.start) < el.AppearAfter {
		return "", core.ErrElementNotFound.WithDetails(map[string]interface{}{"locator": loc.Key()})
	}
	return core.ElementHandle(loc.Value), nil
}

// Click implements core.Session.
func (s *Session) Click(h core.ElementHandle) error {
	s.ClickCalls++
	el, ok := s.elements[string(h)]
	if !ok {
		return core.ErrDriverCommand.WithMessage("click on stale element handle")
	}
	if el.OnClick != nil {
		el.OnClick(s)
	}
	return nil
}

// SetText implements core.Session.
func (s *Session) SetText(h core.ElementHandle, text string) error {
	el, ok := s.elements[string(h)]
	if !ok {
		return core.ErrDriverCommand.WithMessage("setText on stale element handle")
	}
	el.Text = text
	if el.OnSetText != nil {
		el.OnSetText(s, text)
	}
	return nil
}

// GetText implements core.Session.
func (s *Session) GetText(h core.ElementHandle) (string, error) {
	el, ok := s.elements[string(h)]
	if !ok {
		return "", core.ErrDriverCommand.WithMessage("getText on stale element handle")
	}
	return el.Text, nil
}

// IsDisplayed implements core.Session.
func (s *Session) IsDisplayed(h core.ElementHandle) (bool, error) {
	el, ok := s.elements[string(h)]
	if !ok {
		return false, core.ErrDriverCommand.WithMessage("isDisplayed on stale element handle")
	}
	return !el.Hidden, nil
}

// Back implements core.Session. At the root screen it succeeds without
// changing state.
func (s *Session) Back() error {
	s.BackCalls++
	if s.BackErr != nil {
		return s.BackErr
	}
	if s.depth > 0 {
		s.depth--
	}
	if s.OnBack != nil {
		s.OnBack(s)
	}
	return nil
}

// Sleep implements core.Session. The mock records the request instead of
// actually pausing so orchestration tests stay fast.
func (s *Session) Sleep(d time.Duration) {
	s.Slept += d
}

// Platform implements core.Session.
func (s *Session) Platform() core.Platform {
	return s.platform
}

// Close implements core.Session.
func (s *Session) Close() error {
	s.CloseCalls++
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}
