package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/appium-harness/pkg/cases"
	"github.com/devicelab-dev/appium-harness/pkg/config"
	"github.com/devicelab-dev/appium-harness/pkg/core"
	"github.com/devicelab-dev/appium-harness/pkg/driver/appium"
	"github.com/devicelab-dev/appium-harness/pkg/locator"
	"github.com/devicelab-dev/appium-harness/pkg/logger"
	"github.com/devicelab-dev/appium-harness/pkg/suite"
)

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Run the test suite on a device",
	Description: `Opens one automation session, runs the suite against it and closes
the session afterwards. The exit status is zero iff every test passed;
a suite-setup abort is non-zero as well.

Examples:
  appium-harness run
  appium-harness run --platform ios
  appium-harness run --filter "search"`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: "Run only tests whose name contains this substring",
		},
	},
	Action: runAction,
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 1)
	}

	platform, err := core.ParsePlatform(cfg.Platform)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogFile); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else {
		logger.InitWriter(os.Stderr)
	}
	defer logger.Close()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("locators: %v", err), 1)
	}

	// The one session for the whole run: opened before any hook, closed
	// after the suite regardless of outcomes.
	sess, err := appium.Open(appium.Options{
		ServerURL:    cfg.ServerURL,
		Platform:     platform,
		Capabilities: cfg.Capabilities,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("session: %v", err), 1)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("closing session: %v", err)
		}
	}()

	s := filterSuite(cases.Wikipedia(reg), c.String("filter"))

	runner := suite.NewRunner(sess)
	runner.OnTestStart = func(idx, total int, name string) {
		fmt.Printf("[%d/%d] %s ... ", idx+1, total, name)
	}
	runner.OnTestEnd = func(name string, status core.TestStatus, d time.Duration, errMsg string) {
		if status == core.StatusPassed {
			fmt.Printf("%s (%v)\n", status, d.Round(time.Millisecond))
		} else {
			fmt.Printf("%s (%v)\n    %s\n", status, d.Round(time.Millisecond), errMsg)
		}
	}

	result := runner.Run(c.Context, s)
	printSummary(result)

	if !result.Passed() {
		return cli.Exit("", 1)
	}
	return nil
}

// loadConfig merges the config file (if any) with command-line overrides.
// Flags win over file values.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	applyFlagOverrides(cfg, c)
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config, c *cli.Context) {
	if c.IsSet("platform") || cfg.Platform == "" {
		cfg.Platform = c.String("platform")
	}
	if c.IsSet("server-url") || cfg.ServerURL == "" {
		cfg.ServerURL = c.String("server-url")
	}
	if c.IsSet("locators") {
		cfg.Locators = c.String("locators")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
}

func loadRegistry(cfg *config.Config) (*locator.Registry, error) {
	if cfg.Locators == "" {
		return locator.Default(), nil
	}
	return locator.Load(cfg.Locators)
}

// filterSuite keeps only tests whose name contains the substring. An
// empty filter keeps everything.
func filterSuite(s suite.Suite, filter string) suite.Suite {
	if filter == "" {
		return s
	}
	var kept []suite.TestCase
	for _, tc := range s.Tests {
		if strings.Contains(tc.Name, filter) {
			kept = append(kept, tc)
		}
	}
	s.Tests = kept
	return s
}

func printSummary(result *core.SuiteResult) {
	fmt.Println()
	if result.SetupError != "" {
		fmt.Printf("suite setup aborted: %s\n", result.SetupError)
	}
	for _, w := range result.CleanupWarnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("%s: %s. %d passed, %d failed, %d skipped in %v\n",
		result.Name, result.Status,
		result.PassedTests, result.FailedTests, result.SkippedTests,
		result.Duration.Round(time.Millisecond))
}
