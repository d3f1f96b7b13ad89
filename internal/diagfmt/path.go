package diagfmt

import (
	"path/filepath"

	"dry/internal/source"
)

// autoPathMax: длиннее этого в авто-режиме печатаем только basename
const autoPathMax = 48

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if filepath.IsAbs(f.Path) || f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		rel, err := source.RelativePath(f.Path, fs.BaseDir())
		if err != nil {
			return f.Path
		}
		return rel
	case PathModeBasename:
		return source.BaseName(f.Path)
	default:
		p := fs.DisplayPath(id)
		if len(p) > autoPathMax {
			return source.BaseName(p)
		}
		return p
	}
}
