// Package locator maps symbolic (screen, element) keys to platform-specific
// queries. The mapping is static configuration: it is loaded before suite
// setup, lookups do no I/O, and a missing key is a harness defect rather
// than a runtime condition.
package locator

import (
	"fmt"
	"sort"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

// Key is a symbolic (screen, element) pair.
type Key struct {
	Screen  string
	Element string
}

// String returns the "screen.element" form used in logs and errors.
func (k Key) String() string {
	return k.Screen + "." + k.Element
}

// Registry holds the locator table for all platforms.
type Registry struct {
	entries map[Key]map[core.Platform]core.Locator
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[Key]map[core.Platform]core.Locator)}
}

// Register adds a locator for one platform. Registering the same key twice
// for a platform overwrites the earlier entry; the table is configuration,
// last writer wins.
func (r *Registry) Register(screen, element string, platform core.Platform, using, value string) {
	k := Key{Screen: screen, Element: element}
	if r.entries[k] == nil {
		r.entries[k] = make(map[core.Platform]core.Locator)
	}
	r.entries[k][platform] = core.Locator{
		Screen:  screen,
		Element: element,
		Using:   using,
		Value:   value,
	}
}

// Resolve returns the locator for a symbolic key on the given platform.
// A missing entry yields core.ErrUnknownLocator: always a configuration
// defect, never retried.
func (r *Registry) Resolve(screen, element string, platform core.Platform) (core.Locator, error) {
	byPlatform, ok := r.entries[Key{Screen: screen, Element: element}]
	if !ok {
		return core.Locator{}, core.NewUnknownLocatorError(screen, element, platform)
	}
	loc, ok := byPlatform[platform]
	if !ok {
		return core.Locator{}, core.NewUnknownLocatorError(screen, element, platform)
	}
	return loc, nil
}

// Validate checks that every key resolves on the given platform. It is the
// totality check run before any device interaction so an unconfigured
// platform fails fast during suite setup.
func (r *Registry) Validate(platform core.Platform, keys []Key) error {
	for _, k := range keys {
		if _, err := r.Resolve(k.Screen, k.Element, platform); err != nil {
			return fmt.Errorf("locator table incomplete: %w", err)
		}
	}
	return nil
}

// Keys returns all registered symbolic keys in stable order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Screen != keys[j].Screen {
			return keys[i].Screen < keys[j].Screen
		}
		return keys[i].Element < keys[j].Element
	})
	return keys
}

// Platforms returns the platforms a key is configured for, in stable order.
func (r *Registry) Platforms(k Key) []core.Platform {
	byPlatform := r.entries[k]
	platforms := make([]core.Platform, 0, len(byPlatform))
	for p := range byPlatform {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
