package wait

import (
	"errors"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

// ElementDisplayed holds when the locator matches an element that is
// currently visible. A missing element is a pollable state; everything
// else the session reports is a real failure and ends the wait.
func ElementDisplayed(sess core.Session, loc core.Locator) Condition {
	return Condition{
		Describe: loc.Key() + " displayed",
		Probe: func() (bool, string, error) {
			h, err := sess.FindElement(loc)
			if errors.Is(err, core.ErrElementNotFound) {
				return false, "element not present", nil
			}
			if err != nil {
				return false, "", err
			}
			shown, err := sess.IsDisplayed(h)
			if err != nil {
				return false, "", err
			}
			if !shown {
				return false, "element present but not displayed", nil
			}
			return true, "element displayed", nil
		},
	}
}

// ElementAbsent holds when the locator matches nothing. Used to confirm
// transient UI (overlays, progress spinners) has gone away.
func ElementAbsent(sess core.Session, loc core.Locator) Condition {
	return Condition{
		Describe: loc.Key() + " absent",
		Probe: func() (bool, string, error) {
			_, err := sess.FindElement(loc)
			if errors.Is(err, core.ErrElementNotFound) {
				return true, "element absent", nil
			}
			if err != nil {
				return false, "", err
			}
			return false, "element still present", nil
		},
	}
}
