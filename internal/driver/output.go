package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteOutput stores res.Rendered under outDir, mirroring the input's
// display path. Paths that escape outDir are flattened to their base name.
func WriteOutput(outDir string, res *Result) (string, error) {
	if res == nil || res.Failed() {
		return "", nil
	}
	rel := filepath.FromSlash(res.Path)
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(rel)
	}
	dst := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	// #nosec G306 -- expanded sources are ordinary project files
	if err := os.WriteFile(dst, res.Rendered, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}
