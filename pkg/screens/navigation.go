package screens

import (
	"fmt"
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/wait"
)

// Navigator returns the UI to the canonical root screen between tests.
type Navigator struct {
	base
}

// NewNavigator constructs the navigator.
func NewNavigator(sess core.Session, reg *locator.Registry) *Navigator {
	return &Navigator{base{sess: sess, reg: reg}}
}

// atHome is the positive root-screen check: the search container is
// displayed. Back-navigation success is not inferred from the absence of
// errors; the screen identity is confirmed explicitly.
func (n *Navigator) atHome() (bool, error) {
	loc, err := n.resolve(screenSearch, elemContainer)
	if err != nil {
		return false, err
	}
	ok, _, err := wait.ElementDisplayed(n.sess, loc).Probe()
	return ok, err
}

// AwaitHome blocks until the root screen is displayed. Suite setup uses
// it to establish the ready-for-interaction fixture invariant.
func (n *Navigator) AwaitHome(timeout time.Duration) error {
	loc, err := n.resolve(screenSearch, elemContainer)
	if err != nil {
		return err
	}
	return wait.Until(wait.ElementDisplayed(n.sess, loc), timeout, wait.DefaultInterval)
}

// GoHome presses back until the root screen is reached, at most maxBack
// times. Being already at the root is a success state and presses nothing.
func (n *Navigator) GoHome(maxBack int) error {
	for i := 0; i <= maxBack; i++ {
		home, err := n.atHome()
		if err != nil {
			return err
		}
		if home {
			return nil
		}
		if i == maxBack {
			break
		}
		if err := n.sess.Back(); err != nil {
			return err
		}
	}
	return core.ErrCleanup.WithMessage(fmt.Sprintf("not at root screen after %d back presses", maxBack))
}
