package vbox

import (
	"fmt"
	"strings"

	"github.com/netloom/netloom/pkg/model"
)

const (
	DefaultBaseVMName   = "netloom-base"
	DefaultSnapshotName = "golden"

	// NIC slots VBoxManage accepts per chipset.
	nicSlotsPIIX3 = 8
	nicSlotsICH9  = 36

	// Slots beyond this are left untouched when resetting; detaching all 36
	// ICH9 slots one by one makes the plan unreadable for no benefit.
	resetNICSlots = 8
)

// Plan is an ordered list of VBoxManage invocations. Building a plan never
// touches the hypervisor; callers decide whether to print or execute it.
type Plan struct {
	Commands [][]string
}

func (p *Plan) add(args ...string) {
	p.Commands = append(p.Commands, append([]string{"VBoxManage"}, args...))
}

// String formats the plan as one shell-style line per command.
func (p *Plan) String() string {
	lines := make([]string, 0, len(p.Commands))
	for _, cmd := range p.Commands {
		lines = append(lines, strings.Join(cmd, " "))
	}
	return strings.Join(lines, "\n")
}

// Options control plan generation for one topology.
type Options struct {
	BaseVMName   string
	SnapshotName string
	BaseFolder   string
}

func (o *Options) fillDefaults() {
	if o.BaseVMName == "" {
		o.BaseVMName = DefaultBaseVMName
	}
	if o.SnapshotName == "" {
		o.SnapshotName = DefaultSnapshotName
	}
}

// vboxMAC strips the colon separators; VBoxManage wants the raw 12 hex
// digits.
func vboxMAC(mac string) string {
	return strings.ReplaceAll(mac, ":", "")
}

// CreatePlan builds the command sequence that clones and wires one VM per
// node: a linked clone from the golden snapshot, chipset and paravirt
// settings from the topology defaults, then every NIC attached to its
// internal network with the deterministic MAC from the resolved model.
func CreatePlan(nm *model.NetworkModel, opts Options) (*Plan, error) {
	opts.fillDefaults()
	plan := &Plan{}

	maxSlots := nicSlotsPIIX3
	if nm.VBox.Chipset == "ich9" {
		maxSlots = nicSlotsICH9
	}

	for _, node := range nm.Nodes {
		cloneArgs := []string{
			"clonevm", opts.BaseVMName,
			"--snapshot", opts.SnapshotName,
			"--name", node.Name,
			"--options", "link",
			"--register",
		}
		if opts.BaseFolder != "" {
			cloneArgs = append(cloneArgs, "--basefolder", opts.BaseFolder)
		}
		plan.add(cloneArgs...)

		plan.add("modifyvm", node.Name,
			"--paravirtprovider", nm.VBox.ParavirtProvider,
			"--chipset", nm.VBox.Chipset,
			"--ioapic", onOff(nm.VBox.IOAPIC),
			"--hpet", onOff(nm.VBox.HPET),
		)

		for slot := 1; slot <= resetNICSlots; slot++ {
			plan.add("modifyvm", node.Name, fmt.Sprintf("--nic%d", slot), "none")
		}

		for _, iface := range node.Interfaces {
			if iface.NICIndex > maxSlots {
				return nil, fmt.Errorf("node %s: interface %s needs NIC slot %d, chipset %s supports %d",
					node.Name, iface.Name, iface.NICIndex, nm.VBox.Chipset, maxSlots)
			}
			plan.add("modifyvm", node.Name,
				fmt.Sprintf("--nic%d", iface.NICIndex), "intnet",
				fmt.Sprintf("--intnet%d", iface.NICIndex), iface.NetworkName,
				fmt.Sprintf("--macaddress%d", iface.NICIndex), vboxMAC(iface.MAC),
				fmt.Sprintf("--cableconnected%d", iface.NICIndex), "on",
			)
		}
	}

	return plan, nil
}

// StartPlan boots every node headless.
func StartPlan(nm *model.NetworkModel) *Plan {
	plan := &Plan{}
	for _, node := range nm.Nodes {
		plan.add("startvm", node.Name, "--type", "headless")
	}
	return plan
}

// StopPlan sends the ACPI power button to every node.
func StopPlan(nm *model.NetworkModel) *Plan {
	plan := &Plan{}
	for _, node := range nm.Nodes {
		plan.add("controlvm", node.Name, "acpipowerbutton")
	}
	return plan
}

// DestroyPlan unregisters and deletes every node VM.
func DestroyPlan(nm *model.NetworkModel) *Plan {
	plan := &Plan{}
	for _, node := range nm.Nodes {
		plan.add("unregistervm", node.Name, "--delete")
	}
	return plan
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
