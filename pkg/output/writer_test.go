package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/netloom/netloom/pkg/render"
)

func TestWriteArtifacts(t *testing.T) {
	workdir := t.TempDir()
	artifacts := map[string][]*render.Artifact{
		"R1": {
			{RelPath: "etc/hostname", Content: []byte("R1\n")},
			{RelPath: "etc/systemd/network/10-eth1.network", Content: []byte("[Match]\nName=eth1\n")},
		},
		"R2": {
			{RelPath: "etc/hostname", Content: []byte("R2\n")},
		},
	}

	if err := WriteArtifacts(workdir, artifacts); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		path string
		want string
	}{
		{filepath.Join(workdir, "configs", "R1", "etc", "hostname"), "R1\n"},
		{filepath.Join(workdir, "configs", "R1", "etc", "systemd", "network", "10-eth1.network"), "[Match]\nName=eth1\n"},
		{filepath.Join(workdir, "configs", "R2", "etc", "hostname"), "R2\n"},
	}
	for _, c := range cases {
		buf, err := os.ReadFile(c.path)
		if err != nil {
			t.Errorf("read %v: %v", c.path, err)
			continue
		}
		if string(buf) != c.want {
			t.Errorf("%v: expected %q, got %q", c.path, c.want, buf)
		}
	}

	if got := NodeDir(workdir, "R1"); got != filepath.Join(workdir, "configs", "R1") {
		t.Errorf("node dir mismatch %v", got)
	}
}

func TestWriteArtifactsOverwrites(t *testing.T) {
	workdir := t.TempDir()
	first := map[string][]*render.Artifact{
		"R1": {{RelPath: "etc/hostname", Content: []byte("old\n")}},
	}
	second := map[string][]*render.Artifact{
		"R1": {{RelPath: "etc/hostname", Content: []byte("new\n")}},
	}
	if err := WriteArtifacts(workdir, first); err != nil {
		t.Fatal(err)
	}
	if err := WriteArtifacts(workdir, second); err != nil {
		t.Fatal(err)
	}
	buf, err := os.ReadFile(filepath.Join(workdir, "configs", "R1", "etc", "hostname"))
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "new\n" {
		t.Errorf("rebuild should overwrite, got %q", buf)
	}
}
