package types

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const RoleRouter string = "router"
const RoleSwitch string = "switch"
const RoleHost string = "host"

const EngineBird string = "bird"
const EngineFRR string = "frr"
const EngineNone string = "none"

const TunnelIPIP string = "ipip"
const TunnelGRE string = "gre"
const TunnelSIT string = "sit"

const FirewallNftables string = "nftables"

const DefaultTunnelName string = "tun0"
const DefaultBridgeName string = "br0"
const DefaultOSPFAreaID string = "0.0.0.0"
const DefaultRIPVersion int = 2

const VLANIDMin int = 1
const VLANIDMax int = 4094

// Topology is the user-facing declarative topology document.
// Field names, defaults and enumerations are the wire contract.
type Topology struct {
	Meta     Meta      `yaml:"meta" mapstructure:"meta"`
	Defaults *Defaults `yaml:"defaults" mapstructure:"defaults"`
	Links    []*Link   `yaml:"links,flow" mapstructure:"links,flow"`
	Nodes    []*Node   `yaml:"nodes,flow" mapstructure:"nodes,flow"`

	nodeMap map[string]*Node
}

func (topo *Topology) NodeByName(name string) (*Node, bool) {
	node, ok := topo.nodeMap[name]
	return node, ok
}

// NodeLinks returns the links touching the named node, in declaration order.
func (topo *Topology) NodeLinks(name string) []*Link {
	links := []*Link{}
	for _, link := range topo.Links {
		for _, ep := range link.Endpoints {
			if ep == name {
				links = append(links, link)
				break
			}
		}
	}
	return links
}

type Meta struct {
	ID          string `yaml:"id" mapstructure:"id"`
	Name        string `yaml:"name" mapstructure:"name"`
	Description string `yaml:"description" mapstructure:"description"`
}

type Defaults struct {
	IPForwarding bool                   `yaml:"ip_forwarding" mapstructure:"ip_forwarding"`
	Sysctl       map[string]interface{} `yaml:"sysctl" mapstructure:"sysctl"`
	VBox         *VBoxSettings          `yaml:"vbox" mapstructure:"vbox"`
}

type VBoxSettings struct {
	ParavirtProvider string `yaml:"paravirt_provider" mapstructure:"paravirt_provider"`
	Chipset          string `yaml:"chipset" mapstructure:"chipset"`
	IOAPIC           *bool  `yaml:"ioapic" mapstructure:"ioapic"`
	HPET             *bool  `yaml:"hpet" mapstructure:"hpet"`
}

type Link struct {
	Endpoints []string `yaml:"endpoints,flow" mapstructure:"endpoints,flow"`
}

// Peer returns the opposite endpoint name for the given node name.
func (l *Link) Peer(name string) (string, bool) {
	if len(l.Endpoints) != 2 {
		return "", false
	}
	switch name {
	case l.Endpoints[0]:
		return l.Endpoints[1], true
	case l.Endpoints[1]:
		return l.Endpoints[0], true
	}
	return "", false
}

type Node struct {
	Name       string                 `yaml:"name" mapstructure:"name"`
	Role       string                 `yaml:"role" mapstructure:"role"`
	Sysctl     map[string]interface{} `yaml:"sysctl" mapstructure:"sysctl"`
	Interfaces []*InterfaceConfig     `yaml:"interfaces,flow" mapstructure:"interfaces,flow"`
	VLANs      []*VLANConfig          `yaml:"vlans,flow" mapstructure:"vlans,flow"`
	Tunnels    []*TunnelConfig        `yaml:"tunnels,flow" mapstructure:"tunnels,flow"`
	Bridge     *BridgeConfig          `yaml:"bridge" mapstructure:"bridge"`
	Routing    *RoutingConfig         `yaml:"routing" mapstructure:"routing"`
	Services   *ServicesConfig        `yaml:"services" mapstructure:"services"`
	Commands   []string               `yaml:"commands,flow" mapstructure:"commands,flow"`
}

type InterfaceConfig struct {
	IP         string `yaml:"ip" mapstructure:"ip"`
	Gateway    string `yaml:"gateway" mapstructure:"gateway"`
	Configured *bool  `yaml:"configured" mapstructure:"configured"`
}

// IsConfigured defaults to true when the field is omitted.
func (ic *InterfaceConfig) IsConfigured() bool {
	return ic.Configured == nil || *ic.Configured
}

type VLANConfig struct {
	ID      int    `yaml:"id" mapstructure:"id"`
	Parent  string `yaml:"parent" mapstructure:"parent"`
	IP      string `yaml:"ip" mapstructure:"ip"`
	Gateway string `yaml:"gateway" mapstructure:"gateway"`
}

type TunnelConfig struct {
	Name   string `yaml:"name" mapstructure:"name"`
	Type   string `yaml:"type" mapstructure:"type"`
	Local  string `yaml:"local" mapstructure:"local"`
	Remote string `yaml:"remote" mapstructure:"remote"`
	IP     string `yaml:"ip" mapstructure:"ip"`
}

type BridgeConfig struct {
	Name       string `yaml:"name" mapstructure:"name"`
	STP        bool   `yaml:"stp" mapstructure:"stp"`
	Configured *bool  `yaml:"configured" mapstructure:"configured"`
}

func (bc *BridgeConfig) IsConfigured() bool {
	return bc.Configured == nil || *bc.Configured
}

type RoutingConfig struct {
	Engine     string      `yaml:"engine" mapstructure:"engine"`
	RouterID   string      `yaml:"router_id" mapstructure:"router_id"`
	Static     []string    `yaml:"static,flow" mapstructure:"static,flow"`
	OSPF       *OSPFConfig `yaml:"ospf" mapstructure:"ospf"`
	RIP        *RIPConfig  `yaml:"rip" mapstructure:"rip"`
	Configured *bool       `yaml:"configured" mapstructure:"configured"`
}

func (rc *RoutingConfig) IsConfigured() bool {
	return rc.Configured == nil || *rc.Configured
}

type OSPFConfig struct {
	Enabled bool        `yaml:"enabled" mapstructure:"enabled"`
	Areas   []*OSPFArea `yaml:"areas,flow" mapstructure:"areas,flow"`
}

type OSPFArea struct {
	ID         string   `yaml:"id" mapstructure:"id"`
	Interfaces []string `yaml:"interfaces,flow" mapstructure:"interfaces,flow"`
}

type RIPConfig struct {
	Enabled    bool     `yaml:"enabled" mapstructure:"enabled"`
	Version    int      `yaml:"version" mapstructure:"version"`
	Interfaces []string `yaml:"interfaces,flow" mapstructure:"interfaces,flow"`
}

type ServicesConfig struct {
	HTTPServer int              `yaml:"http_server" mapstructure:"http_server"`
	Wireguard  *WireguardConfig `yaml:"wireguard" mapstructure:"wireguard"`
	Firewall   *FirewallConfig  `yaml:"firewall" mapstructure:"firewall"`
}

type WireguardConfig struct {
	PrivateKey string           `yaml:"private_key" mapstructure:"private_key"`
	ListenPort int              `yaml:"listen_port" mapstructure:"listen_port"`
	Address    string           `yaml:"address" mapstructure:"address"`
	Peers      []*WireguardPeer `yaml:"peers,flow" mapstructure:"peers,flow"`
}

type WireguardPeer struct {
	PublicKey  string `yaml:"public_key" mapstructure:"public_key"`
	AllowedIPs string `yaml:"allowed_ips" mapstructure:"allowed_ips"`
	Endpoint   string `yaml:"endpoint" mapstructure:"endpoint"`
}

type FirewallConfig struct {
	Impl  string          `yaml:"impl" mapstructure:"impl"`
	Rules []*FirewallRule `yaml:"rules,flow" mapstructure:"rules,flow"`
}

type FirewallRule struct {
	Action string `yaml:"action" mapstructure:"action"`
	Src    string `yaml:"src" mapstructure:"src"`
	Dst    string `yaml:"dst" mapstructure:"dst"`
	Proto  string `yaml:"proto" mapstructure:"proto"`
	Dport  int    `yaml:"dport" mapstructure:"dport"`
}

// ParseTopology unmarshals a topology document, applies scalar defaults and
// validates it. Structural YAML failures become a SchemaError; constraint
// violations are collected into a single ValidationError.
func ParseTopology(buf []byte) (*Topology, error) {
	topo := Topology{}
	if err := yaml.Unmarshal(buf, &topo); err != nil {
		return nil, &SchemaError{Err: err}
	}

	applyDocumentDefaults(&topo)

	topo.nodeMap = map[string]*Node{}
	for _, node := range topo.Nodes {
		topo.nodeMap[node.Name] = node
	}

	if err := ValidateTopology(&topo); err != nil {
		return nil, err
	}
	return &topo, nil
}

func LoadTopology(path string) (*Topology, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	topo, err := ParseTopology(buf)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return topo, nil
}

func applyDocumentDefaults(topo *Topology) {
	for _, node := range topo.Nodes {
		if node.Role == "" {
			node.Role = RoleHost
		}
		for _, tun := range node.Tunnels {
			if tun.Name == "" {
				tun.Name = DefaultTunnelName
			}
			if tun.Type == "" {
				tun.Type = TunnelIPIP
			}
		}
		if node.Bridge != nil && node.Bridge.Name == "" {
			node.Bridge.Name = DefaultBridgeName
		}
		if node.Routing != nil {
			if node.Routing.OSPF != nil {
				for _, area := range node.Routing.OSPF.Areas {
					if area.ID == "" {
						area.ID = DefaultOSPFAreaID
					}
				}
			}
			if node.Routing.RIP != nil && node.Routing.RIP.Version == 0 {
				node.Routing.RIP.Version = DefaultRIPVersion
			}
		}
		if node.Services != nil && node.Services.Firewall != nil {
			if node.Services.Firewall.Impl == "" {
				node.Services.Firewall.Impl = FirewallNftables
			}
		}
	}
}
