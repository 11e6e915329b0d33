package main

import "github.com/devicelab-dev/appium-harness/pkg/cli"

func main() {
	cli.Execute()
}
