package visual

import (
	"bytes"
	"encoding/json"

	"github.com/netloom/netloom/pkg/model"
)

type NetworkModelData struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Nodes []*NodeData `json:"nodes"`
	Links []*LinkData `json:"links"`
}

type NodeData struct {
	Name       string           `json:"name"`
	Role       string           `json:"role"`
	Interfaces []*InterfaceData `json:"interfaces"`
}

type InterfaceData struct {
	Name     string `json:"name"`
	IP       string `json:"ip,omitempty"`
	MAC      string `json:"mac"`
	NICIndex int    `json:"nic_index"`
	Network  string `json:"network"`
}

type LinkData struct {
	SrcNode      string `json:"src_node"`
	SrcInterface string `json:"src_interface"`
	DstNode      string `json:"dst_node"`
	DstInterface string `json:"dst_interface"`
	Network      string `json:"network"`
}

// GetDataJSON dumps the resolved model as indented JSON for inspection
// and for feeding external tooling.
func GetDataJSON(nm *model.NetworkModel) ([]byte, error) {
	nmd := &NetworkModelData{ID: nm.ID, Name: nm.Name}
	for _, node := range nm.Nodes {
		nd := &NodeData{
			Name: node.Name,
			Role: node.Role,
		}
		for _, iface := range node.Interfaces {
			id := &InterfaceData{
				Name:     iface.Name,
				IP:       iface.IP,
				MAC:      iface.MAC,
				NICIndex: iface.NICIndex,
				Network:  iface.NetworkName,
			}
			nd.Interfaces = append(nd.Interfaces, id)
		}
		nmd.Nodes = append(nmd.Nodes, nd)
	}
	for _, link := range nm.Links {
		ld := &LinkData{
			SrcNode:      link.NodeA,
			SrcInterface: link.InterfaceA,
			DstNode:      link.NodeB,
			DstInterface: link.InterfaceB,
			Network:      link.NetworkName,
		}
		nmd.Links = append(nmd.Links, ld)
	}
	js, err := json.Marshal(nmd)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, js, "", "  ")
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
