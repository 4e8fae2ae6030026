package visual

import (
	"strings"

	"github.com/awalterschulze/gographviz"

	"github.com/netloom/netloom/pkg/model"
)

const KEY_NODE_LABEL = "label"
const KEY_NODE_SHAPE = "shape"
const KEY_EDGE_LABEL = "label"
const KEY_EDGE_HEADLABEL = "headlabel"
const KEY_EDGE_TAILLABEL = "taillabel"

func nodeShape(role string) string {
	switch role {
	case "router":
		return "diamond"
	case "switch":
		return "box"
	default:
		return "ellipse"
	}
}

func abbreviateAddress(addr string) string {
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		addr = addr[:i]
	}
	parts := strings.Split(addr, ".")
	if len(parts) == 4 {
		return "." + parts[3]
	}
	return addr
}

func endpointLabel(nm *model.NetworkModel, nodeName, ifaceName string) string {
	label := ifaceName
	node, ok := nm.NodeByName(nodeName)
	if !ok {
		return label
	}
	iface, ok := node.InterfaceByName(ifaceName)
	if !ok {
		return label
	}
	if iface.IP != "" {
		label = label + "\\n" + abbreviateAddress(iface.IP)
	}
	return label
}

// GraphToDot renders the resolved topology as a graphviz dot document.
// Edge tail/head labels carry the assigned interface names and addresses.
func GraphToDot(nm *model.NetworkModel) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	for _, node := range nm.Nodes {
		attrs := map[string]string{
			KEY_NODE_LABEL: node.Name,
			KEY_NODE_SHAPE: nodeShape(node.Role),
		}
		if err := g.AddNode("G", node.Name, attrs); err != nil {
			return "", err
		}
	}

	for _, link := range nm.Links {
		attrs := map[string]string{
			"dir":              "none",
			KEY_EDGE_LABEL:     link.NetworkName,
			KEY_EDGE_TAILLABEL: endpointLabel(nm, link.NodeA, link.InterfaceA),
			KEY_EDGE_HEADLABEL: endpointLabel(nm, link.NodeB, link.InterfaceB),
		}
		if err := g.AddEdge(link.NodeA, link.NodeB, true, attrs); err != nil {
			return "", err
		}
	}

	for _, node := range g.Nodes.Nodes {
		node.Attrs[KEY_NODE_LABEL] = "\"" + node.Attrs[KEY_NODE_LABEL] + "\""
	}
	for _, edge := range g.Edges.Edges {
		if _, ok := edge.Attrs[KEY_EDGE_LABEL]; ok {
			edge.Attrs[KEY_EDGE_LABEL] = "\"" + edge.Attrs[KEY_EDGE_LABEL] + "\""
		}
		if _, ok := edge.Attrs[KEY_EDGE_TAILLABEL]; ok {
			edge.Attrs[KEY_EDGE_TAILLABEL] = "\"" + edge.Attrs[KEY_EDGE_TAILLABEL] + "\""
		}
		if _, ok := edge.Attrs[KEY_EDGE_HEADLABEL]; ok {
			edge.Attrs[KEY_EDGE_HEADLABEL] = "\"" + edge.Attrs[KEY_EDGE_HEADLABEL] + "\""
		}
	}

	return g.String(), nil
}
