package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/netloom/netloom/pkg/model"
	"github.com/netloom/netloom/pkg/output"
	"github.com/netloom/netloom/pkg/render"
	"github.com/netloom/netloom/pkg/types"
	"github.com/netloom/netloom/pkg/vbox"
	"github.com/netloom/netloom/pkg/visual"
)

func loadModel(c *cli.Context) (*model.NetworkModel, error) {
	topo, err := types.LoadTopology(c.String("topology"))
	if err != nil {
		return nil, err
	}
	return model.Resolve(topo)
}

func newRenderer(c *cli.Context) (*render.Renderer, error) {
	r, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}
	if dir := c.String("templates"); dir != "" {
		if err := r.LoadDir(dir); err != nil {
			return nil, fmt.Errorf("load templates from %s: %w", dir, err)
		}
	}
	return r, nil
}

func outputString(name string, buffer []byte) error {
	if name == "" {
		fmt.Fprintln(os.Stdout, string(buffer))
	} else if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("file %v already exists", name)
	} else {
		err = os.WriteFile(name, buffer, 0644)
		if err != nil {
			return err
		}
	}
	return nil
}

func CmdBuild(c *cli.Context) error {
	nm, err := loadModel(c)
	if err != nil {
		return err
	}
	r, err := newRenderer(c)
	if err != nil {
		return err
	}
	verbose := c.Bool("verbose")

	artifacts, renderErr := r.RenderTopology(nm, c.String("base-set"))
	if err := output.WriteArtifacts(c.String("workdir"), artifacts); err != nil {
		return err
	}
	if verbose {
		for _, node := range nm.Nodes {
			fmt.Printf("%s: %d files\n", node.Name, len(artifacts[node.Name]))
		}
	}
	return renderErr
}

func CmdShow(c *cli.Context) error {
	nm, err := loadModel(c)
	if err != nil {
		return err
	}

	lines := []string{}
	for _, node := range nm.Nodes {
		lines = append(lines, fmt.Sprintf("%s (%s)", node.Name, node.Role))
		for _, iface := range node.Interfaces {
			addr := iface.IP
			if addr == "" {
				addr = "-"
			}
			lines = append(lines, fmt.Sprintf(
				"  %s nic%d %s %s <-> %s.%s on %s",
				iface.Name, iface.NICIndex, iface.MAC, addr,
				iface.PeerNode, iface.PeerInterface, iface.NetworkName,
			))
		}
	}
	return outputString(c.String("output"), []byte(strings.Join(lines, "\n")))
}

func CmdVisual(c *cli.Context) error {
	nm, err := loadModel(c)
	if err != nil {
		return err
	}

	buf, err := visual.GraphToDot(nm)
	if err != nil {
		return err
	}
	return outputString(c.String("output"), []byte(buf))
}

func CmdData(c *cli.Context) error {
	nm, err := loadModel(c)
	if err != nil {
		return err
	}

	buf, err := visual.GetDataJSON(nm)
	if err != nil {
		return err
	}
	return outputString(c.String("output"), buf)
}

func CmdTemplates(c *cli.Context) error {
	r, err := newRenderer(c)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(r.SetNames(), "\n"))
	return nil
}

func CmdVBoxPlan(c *cli.Context) error {
	nm, err := loadModel(c)
	if err != nil {
		return err
	}

	var plan *vbox.Plan
	switch action := c.String("action"); action {
	case "create":
		plan, err = vbox.CreatePlan(nm, vbox.Options{
			BaseVMName:   c.String("base-vm"),
			SnapshotName: c.String("snapshot"),
			BaseFolder:   c.String("basefolder"),
		})
		if err != nil {
			return err
		}
	case "start":
		plan = vbox.StartPlan(nm)
	case "stop":
		plan = vbox.StopPlan(nm)
	case "destroy":
		plan = vbox.DestroyPlan(nm)
	default:
		return fmt.Errorf("unknown action %v", action)
	}

	return outputString(c.String("output"), []byte(plan.String()))
}
