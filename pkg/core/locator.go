package core

import "fmt"

// Platform identifies the target platform for locator resolution.
type Platform string

// Supported platforms.
const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// ParsePlatform converts a user-supplied platform name.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformAndroid, PlatformIOS:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("unknown platform %q (expected android or ios)", s)
	}
}

// Locator is an immutable pair of a symbolic (screen, element) key and the
// platform-specific query that finds the element on a device.
// Using is a W3C location strategy; Value is opaque to the harness and is
// interpreted only by the automation server.
type Locator struct {
	Screen  string
	Element string
	Using   string
	Value   string
}

// Key returns the symbolic "screen.element" name, used in logs and errors
// so failures name the harness-level identity rather than a raw query.
func (l Locator) Key() string {
	return l.Screen + "." + l.Element
}

// Describe returns a human-readable form for diagnostics.
func (l Locator) Describe() string {
	return fmt.Sprintf("%s (%s: %s)", l.Key(), l.Using, l.Value)
}

// W3C location strategies accepted by the automation server.
const (
	ByAccessibilityID = "accessibility id"
	ByXPath           = "xpath"
	ByID              = "id"
	ByUiAutomator     = "-android uiautomator"
	ByClassChain      = "-ios class chain"
)
