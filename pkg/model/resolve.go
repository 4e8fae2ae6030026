package model

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/netloom/netloom/pkg/types"
)

// MaxNICIndex is the highest adapter slot the hypervisor exposes per VM.
const MaxNICIndex int = 36

var staticRoutePattern = regexp.MustCompile(`^(\S+)\s+via\s+(\S+)$`)

// Resolve turns a validated external topology into the internal model.
// It is a pure function: no I/O, deterministic, side-effect-free. Failures
// are fail-fast since each step depends on the previous step's output.
func Resolve(topo *types.Topology) (*NetworkModel, error) {
	nm := &NetworkModel{
		ID:          topo.Meta.ID,
		Name:        topo.Meta.Name,
		Description: topo.Meta.Description,
		VBox:        resolveVBoxSettings(topo.Defaults),
	}

	// node registry
	nm.Nodes = make([]*Node, 0, len(topo.Nodes))
	nm.nodeMap = map[string]*Node{}
	for _, ext := range topo.Nodes {
		node := &Node{
			Name:         ext.Name,
			Role:         ext.Role,
			Commands:     append([]string{}, ext.Commands...),
			interfaceMap: map[string]*Interface{},
		}
		nm.Nodes = append(nm.Nodes, node)
		nm.nodeMap[node.Name] = node
	}

	// link walk in declaration order; the Nth link touching a node binds to
	// the node's Nth interface entry and becomes ethN
	ifaceCounter := map[string]int{}
	nm.Links = make([]*Link, 0, len(topo.Links))
	for i, link := range topo.Links {
		endpoints := make([]*Interface, 2)
		for j, epName := range link.Endpoints {
			node, ok := nm.NodeByName(epName)
			if !ok {
				return nil, &types.UnresolvedPeerError{LinkIndex: i, NodeName: epName}
			}
			ext, _ := topo.NodeByName(epName)
			iface, err := bindInterface(nm.ID, node, ext, ifaceCounter)
			if err != nil {
				return nil, err
			}
			endpoints[j] = iface
		}

		netName := internalNetworkName(nm.ID, link.Endpoints[0], link.Endpoints[1])
		endpoints[0].PeerNode = link.Endpoints[1]
		endpoints[0].PeerInterface = endpoints[1].Name
		endpoints[0].NetworkName = netName
		endpoints[1].PeerNode = link.Endpoints[0]
		endpoints[1].PeerInterface = endpoints[0].Name
		endpoints[1].NetworkName = netName

		nm.Links = append(nm.Links, &Link{
			NodeA:       link.Endpoints[0],
			NodeB:       link.Endpoints[1],
			InterfaceA:  endpoints[0].Name,
			InterfaceB:  endpoints[1].Name,
			NetworkName: netName,
		})
	}

	// per-node resolution; data-independent across nodes from here on
	for _, ext := range topo.Nodes {
		node, _ := nm.NodeByName(ext.Name)

		node.Sysctl = mergeSysctl(topo.Defaults, ext)

		if err := resolveVLANs(node, ext); err != nil {
			return nil, err
		}
		resolveTunnels(node, ext)
		resolveBridge(node, ext)
		if err := resolveRouting(node, ext); err != nil {
			return nil, err
		}
		node.Services = convertServices(ext.Services)
	}

	return nm, nil
}

func bindInterface(topoID string, node *Node, ext *types.Node, counter map[string]int) (*Interface, error) {
	counter[node.Name]++
	n := counter[node.Name]
	name := InterfaceNamePrefix + strconv.Itoa(n)

	// the per-node counter is strictly monotonic, so a collision here means
	// the counter and interfaceMap went out of sync
	if _, exists := node.interfaceMap[name]; exists {
		return nil, &types.DuplicateInterfaceAssignmentError{NodeName: node.Name, Interface: name}
	}

	// ethN occupies hypervisor adapter slot N+1
	nicIndex := n + 1
	if nicIndex > MaxNICIndex {
		return nil, fmt.Errorf("node %q has too many interfaces (max %d)", node.Name, MaxNICIndex-1)
	}

	iface := &Interface{
		Name:       name,
		Configured: true,
		MAC:        GenerateMAC(fmt.Sprintf("%s-%s-%s", topoID, node.Name, name)),
		NICIndex:   nicIndex,
	}

	// the interfaces array is consumed positionally in link-arrival order
	if n-1 < len(ext.Interfaces) {
		cfg := ext.Interfaces[n-1]
		iface.IP = cfg.IP
		iface.Gateway = cfg.Gateway
		iface.Configured = cfg.IsConfigured()
	}

	node.Interfaces = append(node.Interfaces, iface)
	node.interfaceMap[name] = iface
	return iface, nil
}

// internalNetworkName derives the hypervisor network name for a link.
// Endpoint names are sorted so that both sides agree.
func internalNetworkName(topoID string, a string, b string) string {
	names := []string{a, b}
	sort.Strings(names)
	return topoID + "_" + names[0] + "_" + names[1]
}

// mergeSysctl overlays node entries on topology defaults key-by-key;
// node keys win on collision.
func mergeSysctl(defaults *types.Defaults, ext *types.Node) Sysctl {
	s := Sysctl{Custom: map[string]string{}}
	if defaults != nil {
		s.IPForwarding = defaults.IPForwarding
		for k, v := range defaults.Sysctl {
			s.Custom[k] = fmt.Sprint(v)
		}
	}
	for k, v := range ext.Sysctl {
		s.Custom[k] = fmt.Sprint(v)
	}
	// routers forward regardless of the topology default
	if ext.Role == types.RoleRouter {
		s.IPForwarding = true
	}
	return s
}

func resolveVLANs(node *Node, ext *types.Node) error {
	for _, vlan := range ext.VLANs {
		if _, ok := node.InterfaceByName(vlan.Parent); !ok {
			return &types.VlanParentNotFoundError{NodeName: node.Name, VLANID: vlan.ID, Parent: vlan.Parent}
		}
		node.VLANs = append(node.VLANs, &VLAN{
			ID:      vlan.ID,
			Parent:  vlan.Parent,
			Name:    fmt.Sprintf("%s.%d", vlan.Parent, vlan.ID),
			IP:      vlan.IP,
			Gateway: vlan.Gateway,
		})
	}
	return nil
}

// resolveTunnels applies defaults only; tunnel endpoints are raw addresses,
// not topology references.
func resolveTunnels(node *Node, ext *types.Node) {
	for _, tun := range ext.Tunnels {
		node.Tunnels = append(node.Tunnels, &Tunnel{
			Name:   tun.Name,
			Type:   tun.Type,
			Local:  tun.Local,
			Remote: tun.Remote,
			IP:     tun.IP,
		})
	}
}

func resolveBridge(node *Node, ext *types.Node) {
	if ext.Bridge == nil {
		return
	}
	ports := make([]string, 0, len(node.Interfaces))
	for _, iface := range node.Interfaces {
		ports = append(ports, iface.Name)
	}
	node.Bridge = &Bridge{
		Name:       ext.Bridge.Name,
		STP:        ext.Bridge.STP,
		Ports:      ports,
		Configured: ext.Bridge.IsConfigured(),
	}
}

func resolveRouting(node *Node, ext *types.Node) error {
	if ext.Routing == nil {
		return nil
	}
	routing := &Routing{
		Engine:     ext.Routing.Engine,
		RouterID:   ext.Routing.RouterID,
		Configured: ext.Routing.IsConfigured(),
	}
	for _, route := range ext.Routing.Static {
		if parsed, ok := parseStaticRoute(route); ok {
			routing.Static = append(routing.Static, parsed)
		}
	}
	if ext.Routing.OSPF != nil {
		routing.OSPF.Enabled = ext.Routing.OSPF.Enabled
		for i, area := range ext.Routing.OSPF.Areas {
			resolved := OSPFArea{ID: area.ID}
			for _, name := range area.Interfaces {
				if !node.HasNetdev(name) {
					ctx := fmt.Sprintf("ospf.areas[%d].interfaces", i)
					return &types.UnknownInterfaceReferenceError{NodeName: node.Name, Context: ctx, Interface: name}
				}
				resolved.Interfaces = append(resolved.Interfaces, name)
			}
			routing.OSPF.Areas = append(routing.OSPF.Areas, resolved)
		}
	}
	if ext.Routing.RIP != nil {
		rip := &RIP{Enabled: ext.Routing.RIP.Enabled, Version: ext.Routing.RIP.Version}
		for _, name := range ext.Routing.RIP.Interfaces {
			if !node.HasNetdev(name) {
				return &types.UnknownInterfaceReferenceError{NodeName: node.Name, Context: "rip.interfaces", Interface: name}
			}
			rip.Interfaces = append(rip.Interfaces, name)
		}
		routing.RIP = rip
	}
	node.Routing = routing
	return nil
}

func parseStaticRoute(route string) (StaticRoute, bool) {
	m := staticRoutePattern.FindStringSubmatch(route)
	if m == nil {
		return StaticRoute{}, false
	}
	return StaticRoute{Destination: m[1], Gateway: m[2]}, true
}

// convertServices passes service settings through structurally; key material
// generation is a collaborator's concern, not resolution's.
func convertServices(svc *types.ServicesConfig) *Services {
	if svc == nil {
		return nil
	}
	out := &Services{HTTPServerPort: svc.HTTPServer}
	if wg := svc.Wireguard; wg != nil && wg.PrivateKey != "" && wg.ListenPort != 0 && wg.Address != "" {
		internal := &Wireguard{
			PrivateKey: wg.PrivateKey,
			ListenPort: wg.ListenPort,
			Address:    wg.Address,
		}
		for _, peer := range wg.Peers {
			if peer.PublicKey == "" || peer.AllowedIPs == "" {
				continue
			}
			internal.Peers = append(internal.Peers, WireguardPeer{
				PublicKey:  peer.PublicKey,
				AllowedIPs: peer.AllowedIPs,
				Endpoint:   peer.Endpoint,
			})
		}
		out.Wireguard = internal
	}
	if fw := svc.Firewall; fw != nil && len(fw.Rules) > 0 {
		internal := &Firewall{Impl: fw.Impl}
		for _, rule := range fw.Rules {
			internal.Rules = append(internal.Rules, FirewallRule{
				Action: rule.Action,
				Src:    rule.Src,
				Dst:    rule.Dst,
				Proto:  rule.Proto,
				Dport:  rule.Dport,
			})
		}
		out.Firewall = internal
	}
	return out
}

func resolveVBoxSettings(defaults *types.Defaults) VBoxSettings {
	settings := VBoxSettings{
		ParavirtProvider: DefaultParavirtProvider,
		Chipset:          DefaultChipset,
		IOAPIC:           true,
		HPET:             true,
	}
	if defaults == nil || defaults.VBox == nil {
		return settings
	}
	vbox := defaults.VBox
	if vbox.ParavirtProvider != "" {
		settings.ParavirtProvider = vbox.ParavirtProvider
	}
	if vbox.Chipset != "" {
		settings.Chipset = vbox.Chipset
	}
	if vbox.IOAPIC != nil {
		settings.IOAPIC = *vbox.IOAPIC
	}
	if vbox.HPET != nil {
		settings.HPET = *vbox.HPET
	}
	return settings
}
