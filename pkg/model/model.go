package model

import (
	"fmt"
	"sort"
)

const InterfaceNamePrefix string = "eth"

const DefaultParavirtProvider string = "kvm"
const DefaultChipset string = "ich9"

// NetworkModel is the resolved internal topology. It is built fresh on every
// generation request and never mutated after Resolve returns.
type NetworkModel struct {
	ID          string
	Name        string
	Description string
	VBox        VBoxSettings
	Nodes       []*Node
	Links       []*Link

	nodeMap map[string]*Node
}

func (nm *NetworkModel) NodeByName(name string) (*Node, bool) {
	node, ok := nm.nodeMap[name]
	return node, ok
}

// Peer returns the opposite endpoint of the link attached to the given
// node/interface pair. Peer relations are kept as a name-keyed lookup over
// the link records rather than cyclic object references; the model owns the
// nodes, links only point into them.
func (nm *NetworkModel) Peer(node string, iface string) (*Endpoint, bool) {
	for _, link := range nm.Links {
		if link.NodeA == node && link.InterfaceA == iface {
			return &Endpoint{Node: link.NodeB, Interface: link.InterfaceB}, true
		}
		if link.NodeB == node && link.InterfaceB == iface {
			return &Endpoint{Node: link.NodeA, Interface: link.InterfaceA}, true
		}
	}
	return nil, false
}

func (nm *NetworkModel) NodeLinks(name string) []*Link {
	links := []*Link{}
	for _, link := range nm.Links {
		if link.NodeA == name || link.NodeB == name {
			links = append(links, link)
		}
	}
	return links
}

type Endpoint struct {
	Node      string
	Interface string
}

// Link records one resolved connection. Endpoints are stored by name; the
// interface instances belong to their nodes.
type Link struct {
	NodeA       string
	NodeB       string
	InterfaceA  string
	InterfaceB  string
	NetworkName string
}

func (l *Link) String() string {
	return fmt.Sprintf("%s.%s<->%s.%s", l.NodeA, l.InterfaceA, l.NodeB, l.InterfaceB)
}

type VBoxSettings struct {
	ParavirtProvider string
	Chipset          string
	IOAPIC           bool
	HPET             bool
}

type Node struct {
	Name       string
	Role       string
	Interfaces []*Interface
	VLANs      []*VLAN
	Tunnels    []*Tunnel
	Bridge     *Bridge
	Routing    *Routing
	Services   *Services
	Sysctl     Sysctl
	Commands   []string

	interfaceMap map[string]*Interface
}

func (n *Node) InterfaceByName(name string) (*Interface, bool) {
	iface, ok := n.interfaceMap[name]
	return iface, ok
}

// HasNetdev reports whether name matches a resolved interface or VLAN
// interface on this node.
func (n *Node) HasNetdev(name string) bool {
	if _, ok := n.interfaceMap[name]; ok {
		return true
	}
	for _, vlan := range n.VLANs {
		if vlan.Name == name {
			return true
		}
	}
	return false
}

// VLANParents returns the interface names that have VLANs attached, in
// interface order.
func (n *Node) VLANParents() []string {
	seen := map[string]struct{}{}
	for _, vlan := range n.VLANs {
		seen[vlan.Parent] = struct{}{}
	}
	parents := []string{}
	for _, iface := range n.Interfaces {
		if _, ok := seen[iface.Name]; ok {
			parents = append(parents, iface.Name)
		}
	}
	return parents
}

type Interface struct {
	Name       string
	IP         string
	Gateway    string
	Configured bool
	MAC        string
	NICIndex   int
	// NetworkName is the hypervisor-internal network this interface attaches
	// to, shared with the peer side of the link.
	NetworkName   string
	PeerNode      string
	PeerInterface string
}

type VLAN struct {
	ID      int
	Parent  string
	Name    string
	IP      string
	Gateway string
}

type Tunnel struct {
	Name   string
	Type   string
	Local  string
	Remote string
	IP     string
}

type Bridge struct {
	Name       string
	STP        bool
	Ports      []string
	Configured bool
}

type Routing struct {
	Engine     string
	RouterID   string
	Static     []StaticRoute
	OSPF       OSPF
	RIP        *RIP
	Configured bool
}

type StaticRoute struct {
	Destination string
	Gateway     string
}

type OSPF struct {
	Enabled bool
	Areas   []OSPFArea
}

type OSPFArea struct {
	ID         string
	Interfaces []string
}

type RIP struct {
	Enabled    bool
	Version    int
	Interfaces []string
}

type Services struct {
	HTTPServerPort int
	Wireguard      *Wireguard
	Firewall       *Firewall
}

type Wireguard struct {
	PrivateKey string
	ListenPort int
	Address    string
	Peers      []WireguardPeer
}

type WireguardPeer struct {
	PublicKey  string
	AllowedIPs string
	Endpoint   string
}

type Firewall struct {
	Impl  string
	Rules []FirewallRule
}

type FirewallRule struct {
	Action string
	Src    string
	Dst    string
	Proto  string
	Dport  int
}

type Sysctl struct {
	IPForwarding bool
	Custom       map[string]string
}

type SysctlPair struct {
	Key   string
	Value string
}

// Pairs returns the custom sysctl entries in key order so that rendered
// output is byte-identical across runs.
func (s Sysctl) Pairs() []SysctlPair {
	keys := make([]string, 0, len(s.Custom))
	for k := range s.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]SysctlPair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, SysctlPair{Key: k, Value: s.Custom[k]})
	}
	return pairs
}
