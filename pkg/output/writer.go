package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/netloom/netloom/pkg/render"
)

const ConfigDirName = "configs"

// WriteArtifacts materializes rendered artifacts on disk. Each node gets its
// own subtree under <workdir>/configs/<node>/, mirroring the relative paths
// the renderer produced.
func WriteArtifacts(workdir string, artifacts map[string][]*render.Artifact) error {
	for nodeName, nodeArtifacts := range artifacts {
		base := filepath.Join(workdir, ConfigDirName, nodeName)
		for _, artifact := range nodeArtifacts {
			target := filepath.Join(base, filepath.FromSlash(artifact.RelPath))
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("prepare directory for %s: %w", target, err)
			}
			if err := os.WriteFile(target, artifact.Content, 0644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
		}
	}
	return nil
}

// NodeDir returns the per-node output directory under workdir.
func NodeDir(workdir string, nodeName string) string {
	return filepath.Join(workdir, ConfigDirName, nodeName)
}
