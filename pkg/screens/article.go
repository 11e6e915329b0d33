package screens

import (
	"errors"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/wait"
)

// Article is the page object for an article screen.
type Article struct {
	base
}

// NewArticle constructs the article page object.
func NewArticle(sess core.Session, reg *locator.Registry) *Article {
	return &Article{base{sess: sess, reg: reg}}
}

// Title waits for the article title element and reads its text.
func (a *Article) Title() (string, error) {
	h, err := a.awaitDisplayed(screenArticle, elemTitle, wait.DefaultTimeout)
	if err != nil {
		return "", err
	}
	return a.sess.GetText(h)
}

// DismissOverlay closes a promotional overlay if one appears. Best-effort
// with a short deadline: an overlay that never shows up is the normal
// case, so its timeout is swallowed here. This is the single action whose
// absence is expected rather than exceptional; locator and driver errors
// still propagate.
func (a *Article) DismissOverlay() error {
	h, err := a.awaitDisplayed(screenArticle, elemOverlayClose, wait.ShortTimeout)
	if errors.Is(err, core.ErrWaitTimeout) {
		return nil
	}
	if err != nil {
		return err
	}
	return a.sess.Click(h)
}
