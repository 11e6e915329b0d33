package appium

import (
	"errors"
	"fmt"
	"time"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/logger"
)

// Android KEYCODE_BACK
const androidKeycodeBack = 4

// Session implements core.Session over one Appium connection. It is
// created exactly once per suite run and closed exactly once afterwards;
// every Page Object aliases the same instance.
type Session struct {
	client   *Client
	platform core.Platform
}

// Options configures session creation.
type Options struct {
	// ServerURL of the Appium server, e.g. http://127.0.0.1:4723.
	ServerURL string
	// Platform the session drives.
	Platform core.Platform
	// Capabilities are merged over the platform defaults; keys given here
	// win. Used for device name, app path and vendor-specific settings.
	Capabilities map[string]interface{}
}

// Open establishes the single automation session for a run.
func Open(opts Options) (*Session, error) {
	caps := defaultCapabilities(opts.Platform)
	for k, v := range opts.Capabilities {
		caps[k] = v
	}

	client := NewClient(opts.ServerURL)
	if err := client.Connect(caps); err != nil {
		return nil, core.ErrDriverCommand.
			WithMessage(fmt.Sprintf("could not open session on %s", opts.ServerURL)).
			WithCause(err)
	}
	logger.Info("session opened: platform=%s server=%s", opts.Platform, opts.ServerURL)

	return &Session{client: client, platform: opts.Platform}, nil
}

func defaultCapabilities(platform core.Platform) map[string]interface{} {
	if platform == core.PlatformIOS {
		return map[string]interface{}{
			"platformName":             "iOS",
			"appium:automationName":    "XCUITest",
			"appium:noReset":           true,
			"appium:newCommandTimeout": 300,
		}
	}
	return map[string]interface{}{
		"platformName":             "Android",
		"appium:automationName":    "UiAutomator2",
		"appium:noReset":           true,
		"appium:newCommandTimeout": 300,
	}
}

// FindElement implements core.Session.
func (s *Session) FindElement(loc core.Locator) (core.ElementHandle, error) {
	id, err := s.client.FindElement(loc.Using, loc.Value)
	if err != nil {
		return "", mapWireError("findElement", loc.Key(), err)
	}
	return core.ElementHandle(id), nil
}

// Click implements core.Session.
func (s *Session) Click(h core.ElementHandle) error {
	if err := s.client.ClickElement(string(h)); err != nil {
		return mapWireError("click", "", err)
	}
	return nil
}

// SetText implements core.Session. Existing content is cleared first so
// the call replaces rather than appends.
func (s *Session) SetText(h core.ElementHandle, text string) error {
	if err := s.client.ClearElement(string(h)); err != nil {
		return mapWireError("setText", "", err)
	}
	if err := s.client.SetElementValue(string(h), text); err != nil {
		return mapWireError("setText", "", err)
	}
	return nil
}

// GetText implements core.Session.
func (s *Session) GetText(h core.ElementHandle) (string, error) {
	text, err := s.client.GetElementText(string(h))
	if err != nil {
		return "", mapWireError("getText", "", err)
	}
	return text, nil
}

// IsDisplayed implements core.Session.
func (s *Session) IsDisplayed(h core.ElementHandle) (bool, error) {
	displayed, err := s.client.IsElementDisplayed(string(h))
	if err != nil {
		return false, mapWireError("isDisplayed", "", err)
	}
	return displayed, nil
}

// Back implements core.Session. Android devices honor the hardware back
// keycode; elsewhere the WebDriver back endpoint is used.
func (s *Session) Back() error {
	var err error
	if s.platform == core.PlatformAndroid {
		err = s.client.PressKeyCode(androidKeycodeBack)
	} else {
		err = s.client.Back()
	}
	if err != nil {
		return mapWireError("back", "", err)
	}
	return nil
}

// Sleep implements core.Session.
func (s *Session) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Platform implements core.Session.
func (s *Session) Platform() core.Platform {
	return s.platform
}

// Close implements core.Session. Idempotent: the second call is a no-op.
func (s *Session) Close() error {
	if !s.client.HasSession() {
		return nil
	}
	if err := s.client.Disconnect(); err != nil {
		return mapWireError("close", "", err)
	}
	logger.Info("session closed")
	return nil
}

// mapWireError translates protocol errors into the harness taxonomy. A
// "no such element" answer is the expected miss state; everything else is
// a driver failure.
func mapWireError(op, key string, err error) error {
	var we *wireError
	if errors.As(err, &we) && (we.Type == errNoSuchElement || we.Type == errStaleElement) {
		if key != "" {
			return core.ErrElementNotFound.WithDetails(map[string]interface{}{"locator": key})
		}
		return core.ErrElementNotFound
	}
	msg := op + " failed"
	if key != "" {
		msg = fmt.Sprintf("%s failed for %s", op, key)
	}
	return core.ErrDriverCommand.WithMessage(msg).WithCause(err)
}
