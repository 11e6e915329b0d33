package screens

import (
	"errors"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
)

// Onboarding is the page object for the first-launch onboarding flow.
type Onboarding struct {
	base
}

// NewOnboarding constructs the onboarding page object.
func NewOnboarding(sess core.Session, reg *locator.Registry) *Onboarding {
	return &Onboarding{base{sess: sess, reg: reg}}
}

// SkipIfShown taps the skip button when onboarding is displayed. With
// noReset sessions onboarding only appears on the very first launch, so
// its absence is expected and the cold-start timeout would be wasted;
// probe once and move on.
func (o *Onboarding) SkipIfShown() error {
	loc, err := o.resolve(screenOnboarding, elemSkip)
	if err != nil {
		return err
	}
	h, err := o.sess.FindElement(loc)
	if errors.Is(err, core.ErrElementNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return o.sess.Click(h)
}
