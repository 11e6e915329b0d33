// Package screens holds the page objects: stateless facades exposing one
// named action per semantic interaction with an application screen. A page
// object composes registry lookups, wait conditions and session primitives;
// it owns neither the session nor the registry and many instances may alias
// the same session.
package screens

import (
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/wait"
)

// Symbolic locator keys used by the page objects.
const (
	screenOnboarding = "onboarding"
	screenSearch     = "search"
	screenArticle    = "article"

	elemSkip         = "skip"
	elemContainer    = "container"
	elemInput        = "input"
	elemResult       = "result"
	elemTitle        = "title"
	elemOverlayClose = "overlayClose"
)

// ColdStartTimeout is used for the first element after app launch, which
// can take far longer than an element on an already-rendered screen.
const ColdStartTimeout = 30 * time.Second

// RequiredKeys lists every symbolic key any page object resolves. Suite
// setup validates the locator table against this list before touching the
// device, so an unconfigured platform fails fast.
func RequiredKeys() []locator.Key {
	return []locator.Key{
		{Screen: screenOnboarding, Element: elemSkip},
		{Screen: screenSearch, Element: elemContainer},
		{Screen: screenSearch, Element: elemInput},
		{Screen: screenSearch, Element: elemResult},
		{Screen: screenArticle, Element: elemTitle},
		{Screen: screenArticle, Element: elemOverlayClose},
	}
}

// base carries the dependencies shared by all page objects.
type base struct {
	sess core.Session
	reg  *locator.Registry
}

func (b base) resolve(screen, element string) (core.Locator, error) {
	return b.reg.Resolve(screen, element, b.sess.Platform())
}

// awaitDisplayed blocks until the element is visible, then returns a live
// handle to it. Wait errors propagate untouched; suppression is the
// orchestrator's business, never a page object's.
func (b base) awaitDisplayed(screen, element string, timeout time.Duration) (core.ElementHandle, error) {
	loc, err := b.resolve(screen, element)
	if err != nil {
		return "", err
	}
	if err := wait.Until(wait.ElementDisplayed(b.sess, loc), timeout, wait.DefaultInterval); err != nil {
		return "", err
	}
	return b.sess.FindElement(loc)
}
