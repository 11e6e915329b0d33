package screens

import (
	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/wait"
)

// Search is the page object for the search screen.
type Search struct {
	base
}

// NewSearch constructs the search page object. Session and registry are
// injected; the page object holds references only.
func NewSearch(sess core.Session, reg *locator.Registry) *Search {
	return &Search{base{sess: sess, reg: reg}}
}

// Open activates search by tapping the search container once it is
// displayed. Uses the cold-start deadline: this is usually the first
// interaction after app launch.
func (s *Search) Open() error {
	h, err := s.awaitDisplayed(screenSearch, elemContainer, ColdStartTimeout)
	if err != nil {
		return err
	}
	return s.sess.Click(h)
}

// EnterQuery types the query into the search input.
func (s *Search) EnterQuery(text string) error {
	h, err := s.awaitDisplayed(screenSearch, elemInput, wait.DefaultTimeout)
	if err != nil {
		return err
	}
	return s.sess.SetText(h, text)
}

// FirstResultText waits for the first result row and reads its text.
func (s *Search) FirstResultText() (string, error) {
	h, err := s.awaitDisplayed(screenSearch, elemResult, wait.DefaultTimeout)
	if err != nil {
		return "", err
	}
	return s.sess.GetText(h)
}

// SelectFirstResult taps the first result row without a pre-wait; action
// ordering is the caller's responsibility (a preceding FirstResultText or
// EnterQuery has already synchronized on the list).
func (s *Search) SelectFirstResult() error {
	loc, err := s.resolve(screenSearch, elemResult)
	if err != nil {
		return err
	}
	h, err := s.sess.FindElement(loc)
	if err != nil {
		return err
	}
	return s.sess.Click(h)
}

// IsOpen reports whether the search container is currently displayed,
// without waiting. Used as the positive "at home screen" check during
// cleanup.
func (s *Search) IsOpen() (bool, error) {
	loc, err := s.resolve(screenSearch, elemContainer)
	if err != nil {
		return false, err
	}
	cond := wait.ElementDisplayed(s.sess, loc)
	ok, _, err := cond.Probe()
	return ok, err
}
