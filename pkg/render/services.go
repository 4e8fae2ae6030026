package render

import (
	"strconv"
	"strings"

	"github.com/netloom/netloom/pkg/model"
	"github.com/netloom/netloom/pkg/types"
)

// ServicesList builds the per-node unit manifest consumed by the in-guest
// agent: "+ name" enables a unit, "- name" disables one.
func ServicesList(node *model.Node) []string {
	services := []string{}
	for _, iface := range node.Interfaces {
		if iface.Configured {
			services = append(services, "+ systemd-networkd")
			break
		}
	}
	if node.Routing != nil && node.Routing.Configured {
		switch node.Routing.Engine {
		case types.EngineBird:
			services = append(services, "+ bird")
		case types.EngineFRR:
			services = append(services, "+ frr")
		}
	}
	if node.Services != nil {
		if node.Services.Firewall != nil {
			services = append(services, "- iptables")
			services = append(services, "+ nftables")
		}
		if node.Services.Wireguard != nil {
			services = append(services, "+ wg-quick@wg0")
		}
	}
	return services
}

// nftRule formats one firewall rule as an nftables statement.
func nftRule(rule model.FirewallRule) string {
	parts := []string{}
	if rule.Src != "" {
		parts = append(parts, "ip saddr "+rule.Src)
	}
	if rule.Dst != "" {
		parts = append(parts, "ip daddr "+rule.Dst)
	}
	if rule.Proto != "" {
		if rule.Dport != 0 {
			parts = append(parts, rule.Proto+" dport "+strconv.Itoa(rule.Dport))
		} else {
			parts = append(parts, "meta l4proto "+rule.Proto)
		}
	}
	parts = append(parts, rule.Action)
	return strings.Join(parts, " ")
}
