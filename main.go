package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	name        = "netloom"
	description = "Generate per-node network config files and VM wiring plans from a YAML lab topology"
)

var (
	Version = "0.3.0"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Version = Version
	app.Usage = description
	app.Commands = commands

	return app
}
