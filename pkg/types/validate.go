package types

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

func validRoles() mapset.Set[string] {
	return mapset.NewSet(RoleRouter, RoleSwitch, RoleHost)
}

func validEngines() mapset.Set[string] {
	return mapset.NewSet(EngineBird, EngineFRR, EngineNone)
}

func validTunnelTypes() mapset.Set[string] {
	return mapset.NewSet(TunnelIPIP, TunnelGRE, TunnelSIT)
}

// ValidateTopology checks all structural constraints of a parsed document and
// reports every violation together. It returns nil or a *ValidationError.
func ValidateTopology(topo *Topology) error {
	verr := &ValidationError{}

	if topo.Meta.ID == "" {
		verr.add("meta.id", "required field is empty")
	}
	if topo.Meta.Name == "" {
		verr.add("meta.name", "required field is empty")
	}

	declared := mapset.NewSet[string]()
	for i, node := range topo.Nodes {
		path := fmt.Sprintf("nodes[%d]", i)
		if node.Name == "" {
			verr.add(path+".name", "required field is empty")
			continue
		}
		if declared.Contains(node.Name) {
			verr.add(path+".name", "duplicated node name %q", node.Name)
		}
		declared.Add(node.Name)
	}

	roles := validRoles()
	engines := validEngines()
	tunnelTypes := validTunnelTypes()
	for i, node := range topo.Nodes {
		path := fmt.Sprintf("nodes[%d]", i)
		if !roles.Contains(node.Role) {
			verr.add(path+".role", "invalid role %q", node.Role)
		}
		for j, vlan := range node.VLANs {
			if vlan.ID < VLANIDMin || vlan.ID > VLANIDMax {
				verr.add(fmt.Sprintf("%s.vlans[%d].id", path, j), "vlan id %d out of range [%d,%d]", vlan.ID, VLANIDMin, VLANIDMax)
			}
			if vlan.Parent == "" {
				verr.add(fmt.Sprintf("%s.vlans[%d].parent", path, j), "required field is empty")
			}
		}
		for j, tun := range node.Tunnels {
			if !tunnelTypes.Contains(tun.Type) {
				verr.add(fmt.Sprintf("%s.tunnels[%d].type", path, j), "invalid tunnel type %q", tun.Type)
			}
			if tun.Local == "" {
				verr.add(fmt.Sprintf("%s.tunnels[%d].local", path, j), "required field is empty")
			}
			if tun.Remote == "" {
				verr.add(fmt.Sprintf("%s.tunnels[%d].remote", path, j), "required field is empty")
			}
		}
		if node.Routing != nil && node.Routing.Engine != "" && !engines.Contains(node.Routing.Engine) {
			verr.add(path+".routing.engine", "invalid routing engine %q", node.Routing.Engine)
		}
		if node.Services != nil && node.Services.Firewall != nil {
			if node.Services.Firewall.Impl != FirewallNftables {
				verr.add(path+".services.firewall.impl", "invalid firewall implementation %q", node.Services.Firewall.Impl)
			}
		}
	}

	for i, link := range topo.Links {
		path := fmt.Sprintf("links[%d].endpoints", i)
		if len(link.Endpoints) != 2 {
			verr.add(path, "expected exactly 2 endpoints, got %d", len(link.Endpoints))
			continue
		}
		if link.Endpoints[0] == link.Endpoints[1] {
			verr.add(path, "endpoints must be distinct, both are %q", link.Endpoints[0])
		}
		for _, ep := range link.Endpoints {
			if !declared.Contains(ep) {
				verr.add(path, "endpoint %q does not match any declared node", ep)
			}
		}
	}

	if len(verr.Violations) > 0 {
		return verr
	}
	return nil
}
