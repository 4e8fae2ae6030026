package types

import (
	"errors"
	"strings"
	"testing"
)

const minimalTopology = `
meta:
  id: lab
  name: test lab
links:
  - endpoints: [R1, R2]
nodes:
  - name: R1
    role: router
    interfaces:
      - ip: 10.0.1.1/24
  - name: R2
    role: router
    interfaces:
      - ip: 10.0.1.2/24
`

func TestParseTopology(t *testing.T) {
	topo, err := ParseTopology([]byte(minimalTopology))
	if err != nil {
		t.Fatal(err)
	}
	if topo.Meta.ID != "lab" {
		t.Errorf("meta.id mismatch %v", topo.Meta.ID)
	}
	if len(topo.Nodes) != 2 || len(topo.Links) != 1 {
		t.Errorf("unexpected document shape: %d nodes, %d links", len(topo.Nodes), len(topo.Links))
	}

	node, ok := topo.NodeByName("R2")
	if !ok {
		t.Fatal("R2 not found by name")
	}
	if node.Role != RoleRouter {
		t.Errorf("role mismatch %v", node.Role)
	}

	links := topo.NodeLinks("R1")
	if len(links) != 1 {
		t.Errorf("R1 should touch 1 link, got %d", len(links))
	}
	peer, ok := links[0].Peer("R1")
	if !ok || peer != "R2" {
		t.Errorf("peer mismatch %v", peer)
	}
}

func TestParseTopologySchemaError(t *testing.T) {
	_, err := ParseTopology([]byte("meta: [broken"))
	if err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	serr := &SchemaError{}
	if !errors.As(err, &serr) {
		t.Errorf("expected SchemaError, got %T", err)
	}
}

func TestParseTopologyDefaults(t *testing.T) {
	doc := `
meta:
  id: lab
  name: test lab
nodes:
  - name: H1
    tunnels:
      - local: 192.0.2.1
        remote: 192.0.2.2
    bridge: {}
    routing:
      engine: bird
      ospf:
        enabled: true
        areas:
          - interfaces: []
      rip:
        enabled: true
    services:
      firewall:
        rules:
          - action: accept
`
	topo, err := ParseTopology([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	node := topo.Nodes[0]
	if node.Role != RoleHost {
		t.Errorf("role should default to host, got %v", node.Role)
	}
	tun := node.Tunnels[0]
	if tun.Name != DefaultTunnelName || tun.Type != TunnelIPIP {
		t.Errorf("tunnel defaults not applied: %v %v", tun.Name, tun.Type)
	}
	if node.Bridge.Name != DefaultBridgeName {
		t.Errorf("bridge name should default to %v, got %v", DefaultBridgeName, node.Bridge.Name)
	}
	if node.Routing.OSPF.Areas[0].ID != DefaultOSPFAreaID {
		t.Errorf("ospf area id default not applied: %v", node.Routing.OSPF.Areas[0].ID)
	}
	if node.Routing.RIP.Version != DefaultRIPVersion {
		t.Errorf("rip version default not applied: %v", node.Routing.RIP.Version)
	}
	if node.Services.Firewall.Impl != FirewallNftables {
		t.Errorf("firewall impl default not applied: %v", node.Services.Firewall.Impl)
	}
}

func TestValidateTopologyCollectsAllViolations(t *testing.T) {
	doc := `
meta:
  id: ""
  name: ""
links:
  - endpoints: [R1]
  - endpoints: [R1, R1]
  - endpoints: [R1, R9]
nodes:
  - name: R1
    role: spaceship
    vlans:
      - id: 5000
        parent: ""
    tunnels:
      - type: vxlan
    routing:
      engine: ripd
  - name: R1
    role: host
`
	_, err := ParseTopology([]byte(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr := &ValidationError{}
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}

	expected := []string{
		"meta.id",
		"meta.name",
		"nodes[0].role",
		"nodes[0].vlans[0].id",
		"nodes[0].vlans[0].parent",
		"nodes[0].tunnels[0].type",
		"nodes[0].tunnels[0].local",
		"nodes[0].tunnels[0].remote",
		"nodes[0].routing.engine",
		"nodes[1].name",
		"links[0].endpoints",
		"links[1].endpoints",
		"links[2].endpoints",
	}
	for _, path := range expected {
		found := false
		for _, v := range verr.Violations {
			if v.Path == path {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing violation for %v in %v", path, verr)
		}
	}
}

func TestValidateTopologyIsConfiguredDefault(t *testing.T) {
	doc := `
meta:
  id: lab
  name: test lab
nodes:
  - name: H1
    interfaces:
      - ip: 10.0.0.1/24
      - ip: 10.0.0.2/24
        configured: false
`
	topo, err := ParseTopology([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	ifaces := topo.Nodes[0].Interfaces
	if !ifaces[0].IsConfigured() {
		t.Error("omitted configured field should default to true")
	}
	if ifaces[1].IsConfigured() {
		t.Error("configured: false should be honored")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{}
	verr.add("nodes[0].role", "invalid role %q", "spaceship")
	msg := verr.Error()
	if !strings.Contains(msg, "nodes[0].role") || !strings.Contains(msg, "spaceship") {
		t.Errorf("unexpected message %v", msg)
	}
}
