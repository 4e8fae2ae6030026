package render

import (
	"github.com/netloom/netloom/pkg/model"
	"github.com/netloom/netloom/pkg/types"
)

const SetNetworkd string = "networkd"
const SetBird string = "bird"
const SetFRR string = "frr"
const SetNftables string = "nftables"
const SetWireguard string = "wireguard"

// SelectSets decides which template sets apply to a node. The activation
// order is fixed (base, routing, firewall, wireguard) and doubles as the
// precedence order when two sets target the same output path: the later set
// overwrites.
func SelectSets(node *model.Node, baseSet string) []string {
	if baseSet == "" {
		baseSet = SetNetworkd
	}
	sets := []string{baseSet}
	if node.Routing != nil && node.Routing.Configured {
		switch node.Routing.Engine {
		case types.EngineBird:
			sets = append(sets, SetBird)
		case types.EngineFRR:
			sets = append(sets, SetFRR)
		}
	}
	if node.Services != nil {
		if node.Services.Firewall != nil {
			sets = append(sets, SetNftables)
		}
		if node.Services.Wireguard != nil {
			sets = append(sets, SetWireguard)
		}
	}
	return sets
}
