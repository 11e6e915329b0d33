package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/screens"
)

var checkLocatorsCommand = &cli.Command{
	Name:  "check-locators",
	Usage: "Validate the locator table without a device",
	Description: `Checks that every symbolic key the page objects use resolves for
both platforms. Catches table gaps before a run instead of during
suite setup.`,
	Action: checkLocatorsAction,
}

func checkLocatorsAction(c *cli.Context) error {
	var reg *locator.Registry
	var err error
	if path := c.String("locators"); path != "" {
		reg, err = locator.Load(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("locators: %v", err), 1)
		}
	} else {
		reg = locator.Default()
	}

	missing := missingLocators(reg, screens.RequiredKeys())
	if len(missing) == 0 {
		fmt.Printf("ok: %d keys resolve on android and ios\n", len(screens.RequiredKeys()))
		return nil
	}

	for _, m := range missing {
		fmt.Println("missing:", m)
	}
	return cli.Exit(fmt.Sprintf("%d locator(s) missing", len(missing)), 1)
}

// missingLocators returns "key (platform)" strings for every required key
// that does not resolve.
func missingLocators(reg *locator.Registry, keys []locator.Key) []string {
	var missing []string
	for _, k := range keys {
		for _, p := range []core.Platform{core.PlatformAndroid, core.PlatformIOS} {
			if _, err := reg.Resolve(k.Screen, k.Element, p); err != nil {
				missing = append(missing, fmt.Sprintf("%s (%s)", k, p))
			}
		}
	}
	return missing
}
