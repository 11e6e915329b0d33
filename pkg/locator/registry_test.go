package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

func TestRegistry_Resolve(t *testing.T) {
	reg := New()
	reg.Register("search", "input", core.PlatformAndroid, core.ByID, "org.wikipedia:id/search_src_text")

	loc, err := reg.Resolve("search", "input", core.PlatformAndroid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Using != core.ByID {
		t.Errorf("Using = %q, want %q", loc.Using, core.ByID)
	}
	if loc.Value != "org.wikipedia:id/search_src_text" {
		t.Errorf("Value = %q", loc.Value)
	}
	if loc.Screen != "search" || loc.Element != "input" {
		t.Errorf("symbolic key not carried: %s", loc.Key())
	}
}

func TestRegistry_ResolveUnknownKey(t *testing.T) {
	reg := New()

	_, err := reg.Resolve("search", "input", core.PlatformAndroid)
	if !errors.Is(err, core.ErrUnknownLocator) {
		t.Errorf("expected ErrUnknownLocator, got %v", err)
	}
}

func TestRegistry_ResolveUnknownPlatform(t *testing.T) {
	// Scenario C shape: configured for android only, resolved for ios.
	reg := New()
	reg.Register("search", "input", core.PlatformAndroid, core.ByID, "some-id")

	_, err := reg.Resolve("search", "input", core.PlatformIOS)
	if !errors.Is(err, core.ErrUnknownLocator) {
		t.Errorf("expected ErrUnknownLocator for unconfigured platform, got %v", err)
	}
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := New()
	reg.Register("search", "input", core.PlatformAndroid, core.ByID, "old")
	reg.Register("search", "input", core.PlatformAndroid, core.ByXPath, "new")

	loc, err := reg.Resolve("search", "input", core.PlatformAndroid)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Value != "new" || loc.Using != core.ByXPath {
		t.Errorf("expected last registration to win, got %s", loc.Describe())
	}
}

func TestRegistry_Validate(t *testing.T) {
	reg := New()
	reg.Register("search", "input", core.PlatformAndroid, core.ByID, "a")
	reg.Register("search", "result", core.PlatformAndroid, core.ByID, "b")

	keys := []Key{{"search", "input"}, {"search", "result"}}

	if err := reg.Validate(core.PlatformAndroid, keys); err != nil {
		t.Errorf("complete table should validate, got %v", err)
	}

	err := reg.Validate(core.PlatformIOS, keys)
	if !errors.Is(err, core.ErrUnknownLocator) {
		t.Errorf("expected ErrUnknownLocator validating unconfigured platform, got %v", err)
	}
}

func TestRegistry_Keys(t *testing.T) {
	reg := New()
	reg.Register("search", "result", core.PlatformAndroid, core.ByID, "b")
	reg.Register("article", "title", core.PlatformAndroid, core.ByID, "c")
	reg.Register("search", "input", core.PlatformAndroid, core.ByID, "a")

	keys := reg.Keys()
	want := []Key{{"article", "title"}, {"search", "input"}, {"search", "result"}}
	if len(keys) != len(want) {
		t.Fatalf("Keys() len = %d, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestParse_ValidTable(t *testing.T) {
	content := []byte(`
screens:
  search:
    input:
      android:
        using: id
        value: "org.wikipedia:id/search_src_text"
      ios:
        using: -ios class chain
        value: "**/XCUIElementTypeSearchField"
`)

	reg, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range []core.Platform{core.PlatformAndroid, core.PlatformIOS} {
		if _, err := reg.Resolve("search", "input", p); err != nil {
			t.Errorf("Resolve(search.input, %s) failed: %v", p, err)
		}
	}
}

func TestParse_RejectsUnknownPlatform(t *testing.T) {
	content := []byte(`
screens:
  search:
    input:
      blackberry:
        using: id
        value: x
`)
	if _, err := Parse(content); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestParse_RejectsIncompleteEntry(t *testing.T) {
	content := []byte(`
screens:
  search:
    input:
      android:
        using: id
`)
	if _, err := Parse(content); err == nil {
		t.Error("expected error for entry without value")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locators.yaml")

	content := `
screens:
  article:
    title:
      android:
        using: xpath
        value: "//*[@id='title']"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Resolve("article", "title", core.PlatformAndroid); err != nil {
		t.Errorf("Resolve failed: %v", err)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/locators.yaml"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestDefault_CoversBothPlatforms(t *testing.T) {
	reg := Default()

	for _, k := range reg.Keys() {
		for _, p := range []core.Platform{core.PlatformAndroid, core.PlatformIOS} {
			if _, err := reg.Resolve(k.Screen, k.Element, p); err != nil {
				t.Errorf("built-in table missing %s on %s", k, p)
			}
		}
	}
}
