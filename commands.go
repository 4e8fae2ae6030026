package main

import "github.com/urfave/cli/v2"

var commands = []*cli.Command{
	commandBuild,
	commandShow,
	commandVisual,
	commandData,
	commandTemplates,
	commandVBoxPlan,
}

var topologyFlag = &cli.StringFlag{
	Name:    "topology",
	Aliases: []string{"t"},
	Usage:   "Specify the topology file.",
	Value:   "topology.yaml",
}

var templatesFlag = &cli.StringFlag{
	Name:  "templates",
	Usage: "Load additional template sets from a directory.",
}

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Write output to a file instead of stdout.",
}

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Aliases: []string{"v"},
	Usage:   "Verbose",
}

var commandBuild = &cli.Command{
	Name:   "build",
	Usage:  "Render config files for every node into the working directory",
	Action: CmdBuild,
	Flags: []cli.Flag{
		topologyFlag,
		templatesFlag,
		&cli.StringFlag{
			Name:    "workdir",
			Aliases: []string{"w"},
			Usage:   "Specify the working directory for generated files.",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "base-set",
			Usage: "Specify the base template set.",
			Value: "networkd",
		},
		verboseFlag,
	},
}

var commandShow = &cli.Command{
	Name:   "show",
	Usage:  "Print the resolved interface assignments per node",
	Action: CmdShow,
	Flags: []cli.Flag{
		topologyFlag,
		outputFlag,
	},
}

var commandVisual = &cli.Command{
	Name:   "visual",
	Usage:  "Export the resolved topology as a graphviz dot document",
	Action: CmdVisual,
	Flags: []cli.Flag{
		topologyFlag,
		outputFlag,
	},
}

var commandData = &cli.Command{
	Name:   "data",
	Usage:  "Dump the resolved topology as JSON",
	Action: CmdData,
	Flags: []cli.Flag{
		topologyFlag,
		outputFlag,
	},
}

var commandTemplates = &cli.Command{
	Name:   "templates",
	Usage:  "List available template sets",
	Action: CmdTemplates,
	Flags: []cli.Flag{
		templatesFlag,
	},
}

var commandVBoxPlan = &cli.Command{
	Name:   "vboxplan",
	Usage:  "Print the VBoxManage command sequence for the topology",
	Action: CmdVBoxPlan,
	Flags: []cli.Flag{
		topologyFlag,
		outputFlag,
		&cli.StringFlag{
			Name:  "base-vm",
			Usage: "Specify the base VM to clone nodes from.",
		},
		&cli.StringFlag{
			Name:  "snapshot",
			Usage: "Specify the base VM snapshot for linked clones.",
		},
		&cli.StringFlag{
			Name:  "basefolder",
			Usage: "Specify the VirtualBox machine folder.",
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "Plan to generate: create, start, stop or destroy.",
			Value: "create",
		},
	},
}
