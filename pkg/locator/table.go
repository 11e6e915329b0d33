package locator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/appium-harness/pkg/core"
)

// tableFile is the YAML shape of a locator table:
//
//	screens:
//	  search:
//	    input:
//	      android: {using: id, value: "org.wikipedia:id/search_src_text"}
//	      ios: {using: -ios class chain, value: "**/XCUIElementTypeSearchField"}
type tableFile struct {
	Screens map[string]map[string]map[string]queryEntry `yaml:"screens"`
}

type queryEntry struct {
	Using string `yaml:"using"`
	Value string `yaml:"value"`
}

// Load reads a locator table from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided locator table
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a Registry from YAML bytes.
func Parse(data []byte) (*Registry, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse locator table: %w", err)
	}

	reg := New()
	for screen, elements := range tf.Screens {
		for element, platforms := range elements {
			for platform, q := range platforms {
				p, err := core.ParsePlatform(platform)
				if err != nil {
					return nil, fmt.Errorf("locator %s.%s: %w", screen, element, err)
				}
				if q.Using == "" || q.Value == "" {
					return nil, fmt.Errorf("locator %s.%s (%s): using and value are required", screen, element, platform)
				}
				reg.Register(screen, element, p, q.Using, q.Value)
			}
		}
	}
	return reg, nil
}

// Default returns the built-in table for the Wikipedia sample app. A table
// file, when supplied, replaces it entirely.
func Default() *Registry {
	reg := New()

	// Onboarding
	reg.Register("onboarding", "skip", core.PlatformAndroid,
		core.ByID, "org.wikipedia:id/fragment_onboarding_skip_button")
	reg.Register("onboarding", "skip", core.PlatformIOS,
		core.ByAccessibilityID, "Skip")

	// Search
	reg.Register("search", "container", core.PlatformAndroid,
		core.ByXPath, "//*[contains(@text, 'Search Wikipedia')]")
	reg.Register("search", "container", core.PlatformIOS,
		core.ByAccessibilityID, "Search Wikipedia")
	reg.Register("search", "input", core.PlatformAndroid,
		core.ByID, "org.wikipedia:id/search_src_text")
	reg.Register("search", "input", core.PlatformIOS,
		core.ByClassChain, "**/XCUIElementTypeSearchField")
	reg.Register("search", "result", core.PlatformAndroid,
		core.ByID, "org.wikipedia:id/page_list_item_title")
	reg.Register("search", "result", core.PlatformIOS,
		core.ByClassChain, "**/XCUIElementTypeCollectionView/XCUIElementTypeCell")

	// Article
	reg.Register("article", "title", core.PlatformAndroid,
		core.ByXPath, "//*[@resource-id='pcs']//android.widget.TextView[1]")
	reg.Register("article", "title", core.PlatformIOS,
		core.ByClassChain, "**/XCUIElementTypeStaticText[`name != ''`][1]")
	reg.Register("article", "overlayClose", core.PlatformAndroid,
		core.ByID, "org.wikipedia:id/closeButton")
	reg.Register("article", "overlayClose", core.PlatformIOS,
		core.ByAccessibilityID, "places auth close")

	return reg
}
