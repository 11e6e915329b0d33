// Package cases defines the built-in test suite for the Wikipedia sample
// app. Each case is a sequence of page-object actions and assertions; the
// hooks establish and restore the shared fixture.
package cases

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/screens"
	"github.com/devicelab-dev/appium-harness/pkg/suite"
)

// maxBackPresses bounds root-navigation cleanup. Taps in these flows go
// at most two screens deep; a couple of spare presses cover dialogs.
const maxBackPresses = 5

// Wikipedia builds the suite. The registry is injected so runs against
// different locator tables (or platforms) share no hidden state.
func Wikipedia(reg *locator.Registry) suite.Suite {
	return suite.Suite{
		Name: "wikipedia-search",

		// Setup validates the locator table before any device interaction,
		// then brings the app to the root screen. Any failure aborts the
		// run: no fixture, no tests.
		BeforeAll: func(sess core.Session) error {
			if err := reg.Validate(sess.Platform(), screens.RequiredKeys()); err != nil {
				return err
			}
			if err := screens.NewOnboarding(sess, reg).SkipIfShown(); err != nil {
				return err
			}
			return screens.NewNavigator(sess, reg).AwaitHome(screens.ColdStartTimeout)
		},

		// Cleanup returns to the root screen after every test so cases
		// never depend on their predecessor's final screen.
		AfterEach: func(sess core.Session) error {
			return screens.NewNavigator(sess, reg).GoHome(maxBackPresses)
		},

		AfterAll: func(sess core.Session) error {
			return screens.NewNavigator(sess, reg).GoHome(maxBackPresses)
		},

		Tests: []suite.TestCase{
			{
				Name: "search shows matching first result",
				Run: func(sess core.Session) error {
					search := screens.NewSearch(sess, reg)
					if err := search.Open(); err != nil {
						return err
					}
					if err := search.EnterQuery("Sun"); err != nil {
						return err
					}
					text, err := search.FirstResultText()
					if err != nil {
						return err
					}
					if text == "" {
						return core.ErrTextMismatch.WithMessage("first search result is empty")
					}
					if !strings.Contains(text, "Sun") {
						return mismatch("first result containing \"Sun\"", text)
					}
					return nil
				},
			},
			{
				Name: "opening first result shows the article",
				Run: func(sess core.Session) error {
					search := screens.NewSearch(sess, reg)
					if err := search.Open(); err != nil {
						return err
					}
					if err := search.EnterQuery("JavaScript"); err != nil {
						return err
					}
					// Synchronizes on the result list so the tap below
					// needs no pre-wait.
					if _, err := search.FirstResultText(); err != nil {
						return err
					}
					if err := search.SelectFirstResult(); err != nil {
						return err
					}

					article := screens.NewArticle(sess, reg)
					if err := article.DismissOverlay(); err != nil {
						return err
					}
					title, err := article.Title()
					if err != nil {
						return err
					}
					if title != "JavaScript" {
						return mismatch("article title \"JavaScript\"", title)
					}
					return nil
				},
			},
		},
	}
}

func mismatch(expected, actual string) error {
	return core.ErrTextMismatch.
		WithMessage(fmt.Sprintf("expected %s, got %q", expected, actual)).
		WithDetails(map[string]interface{}{"expected": expected, "actual": actual})
}
