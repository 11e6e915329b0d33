// Package cli provides the command-line interface for the harness.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "platform",
		Aliases: []string{"p"},
		Usage:   "Platform to run on (android, ios)",
		Value:   "android",
		EnvVars: []string{"HARNESS_PLATFORM"},
	},
	&cli.StringFlag{
		Name:    "server-url",
		Usage:   "Appium server URL",
		Value:   "http://127.0.0.1:4723",
		EnvVars: []string{"APPIUM_URL"},
	},
	&cli.StringFlag{
		Name:    "locators",
		Usage:   "Locator table YAML (default: built-in table)",
		EnvVars: []string{"HARNESS_LOCATORS"},
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Config file (default: ./harness.yaml when present)",
		EnvVars: []string{"HARNESS_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write harness logs to a file instead of stderr",
		EnvVars: []string{"HARNESS_LOG_FILE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "appium-harness",
		Usage:   "UI-automation test harness for the Wikipedia mobile app",
		Version: Version,
		Description: `Drives an Appium session to run the built-in UI test suite.

Examples:
  appium-harness run
  appium-harness run --platform ios --server-url http://127.0.0.1:4723
  appium-harness run --filter search
  appium-harness check-locators --locators locators.yaml`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			runCommand,
			checkLocatorsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
