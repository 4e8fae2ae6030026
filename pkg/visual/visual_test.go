package visual

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/netloom/netloom/pkg/model"
	"github.com/netloom/netloom/pkg/types"
)

const visualTopology = `
meta:
  id: lab
  name: visual test
links:
  - endpoints: [R1, S1]
  - endpoints: [S1, H1]
nodes:
  - name: R1
    role: router
    interfaces:
      - ip: 10.0.1.1/24
  - name: S1
    role: switch
  - name: H1
    interfaces:
      - ip: 10.0.1.10/24
`

func resolveVisualModel(t *testing.T) *model.NetworkModel {
	t.Helper()
	topo, err := types.ParseTopology([]byte(visualTopology))
	if err != nil {
		t.Fatal(err)
	}
	nm, err := model.Resolve(topo)
	if err != nil {
		t.Fatal(err)
	}
	return nm
}

func TestGraphToDot(t *testing.T) {
	nm := resolveVisualModel(t)
	dot, err := GraphToDot(nm)
	if err != nil {
		t.Fatal(err)
	}

	for _, fragment := range []string{"R1", "S1", "H1", "R1->S1", "S1->H1", "lab_R1_S1"} {
		if !strings.Contains(dot, fragment) {
			t.Errorf("dot output missing %q:\n%s", fragment, dot)
		}
	}
	if !strings.Contains(dot, "diamond") || !strings.Contains(dot, "box") {
		t.Errorf("role shapes missing:\n%s", dot)
	}
}

func TestGetDataJSON(t *testing.T) {
	nm := resolveVisualModel(t)
	buf, err := GetDataJSON(nm)
	if err != nil {
		t.Fatal(err)
	}

	data := &NetworkModelData{}
	if err := json.Unmarshal(buf, data); err != nil {
		t.Fatal(err)
	}
	if data.ID != "lab" || data.Name != "visual test" {
		t.Errorf("meta mismatch %v %v", data.ID, data.Name)
	}
	if len(data.Nodes) != 3 || len(data.Links) != 2 {
		t.Fatalf("unexpected shape: %d nodes, %d links", len(data.Nodes), len(data.Links))
	}

	r1 := data.Nodes[0]
	if r1.Name != "R1" || r1.Role != "router" {
		t.Errorf("node data mismatch %+v", r1)
	}
	if len(r1.Interfaces) != 1 || r1.Interfaces[0].Name != "eth1" || r1.Interfaces[0].IP != "10.0.1.1/24" {
		t.Errorf("interface data mismatch %+v", r1.Interfaces)
	}
	if r1.Interfaces[0].NICIndex != 2 || r1.Interfaces[0].MAC == "" {
		t.Errorf("adapter data mismatch %+v", r1.Interfaces[0])
	}

	link := data.Links[0]
	if link.SrcNode != "R1" || link.DstNode != "S1" || link.Network != "lab_R1_S1" {
		t.Errorf("link data mismatch %+v", link)
	}
}
