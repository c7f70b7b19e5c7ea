// Package scene walks glTF scene graphs and turns them into draw
// commands for the device layer.
package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// Load parses a glTF or GLB file from disk. A load failure is fatal
// to startup, the caller is expected to abort.
func Load(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene %q: %w", path, err)
	}

	logger.Info("scene loaded",
		zap.String("path", path),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("scenes", len(doc.Scenes)),
	)
	if len(doc.Scenes) == 0 {
		logger.Warn("scene file has no scenes, nothing will be drawn", zap.String("path", path))
	}

	return doc, nil
}

// ActiveRoots returns the root node indices of the document's default
// scene, or the first scene when no default is designated.
func ActiveRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	idx := 0
	if doc.Scene != nil {
		idx = int(*doc.Scene)
	}
	if idx < 0 || idx >= len(doc.Scenes) {
		return nil
	}
	roots := make([]int, 0, len(doc.Scenes[idx].Nodes))
	for _, n := range doc.Scenes[idx].Nodes {
		roots = append(roots, int(n))
	}
	return roots
}
