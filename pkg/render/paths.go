package render

import (
	"fmt"
	"strings"
)

const networkDir string = "etc/systemd/network"

// Numeric filename prefixes encode the apply order of the consuming network
// service: ascending lexical order must match dependency order (a bridge
// before its ports, a parent interface before its VLANs, tunnels last).
const prefixBridgeNetdev string = "05"
const prefixBridgeNetwork string = "06"
const prefixBridgePort string = "07"
const prefixVLANParent string = "09"
const prefixInterface string = "10"
const prefixVLAN string = "11"
const prefixRoutes string = "20"
const prefixTunnel string = "25"

// OutputPath maps a template identifier (the template file name without its
// extension) and the logical entity it was rendered for to the relative
// output path inside the node's artifact tree. It is a pure lookup,
// independent of node data.
func OutputPath(templateID string, entity string) (string, bool) {
	switch templateID {
	case "hostname":
		return "etc/hostname", true
	case "sysctl.conf":
		return "etc/sysctl.d/99-netloom.conf", true
	case "interface.network":
		return fmt.Sprintf("%s/%s-%s.network", networkDir, prefixInterface, entity), true
	case "interface.link":
		return fmt.Sprintf("%s/%s-%s.link", networkDir, prefixInterface, entity), true
	case "routes.network":
		return fmt.Sprintf("%s/%s-routes.network", networkDir, prefixRoutes), true
	case "bridge.netdev":
		return fmt.Sprintf("%s/%s-%s.netdev", networkDir, prefixBridgeNetdev, entity), true
	case "bridge.network":
		return fmt.Sprintf("%s/%s-%s.network", networkDir, prefixBridgeNetwork, entity), true
	case "bridge-port.network":
		return fmt.Sprintf("%s/%s-%s-bridge.network", networkDir, prefixBridgePort, entity), true
	case "vlan-parent.network":
		return fmt.Sprintf("%s/%s-%s-vlan.network", networkDir, prefixVLANParent, entity), true
	case "vlan.netdev":
		return fmt.Sprintf("%s/%s-%s.netdev", networkDir, prefixVLAN, entity), true
	case "vlan.network":
		return fmt.Sprintf("%s/%s-%s.network", networkDir, prefixVLAN, entity), true
	case "tunnel.netdev":
		return fmt.Sprintf("%s/%s-%s.netdev", networkDir, prefixTunnel, entity), true
	case "tunnel.network":
		return fmt.Sprintf("%s/%s-%s.network", networkDir, prefixTunnel, entity), true
	case "bird.conf":
		return "etc/bird/bird.conf", true
	case "static.conf", "ospf.conf", "rip.conf":
		return "etc/bird/conf.d/" + templateID, true
	case "frr.conf":
		return "etc/frr/frr.conf", true
	case "daemons":
		return "etc/frr/daemons", true
	case "nftables.conf":
		return "etc/nftables.conf", true
	case "wg0.conf":
		return "etc/wireguard/wg0.conf", true
	case "services.list":
		return "services.list", true
	}
	// generic fallbacks by suffix
	if strings.HasSuffix(templateID, ".network") || strings.HasSuffix(templateID, ".netdev") || strings.HasSuffix(templateID, ".link") {
		return networkDir + "/" + templateID, true
	}
	if strings.HasSuffix(templateID, ".conf") {
		return "etc/" + templateID, true
	}
	return "", false
}
