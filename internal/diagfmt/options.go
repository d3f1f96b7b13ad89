package diagfmt

// PathMode controls how a diagnostic's file is named in output.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // relative inside the base dir, basename for long paths
	PathModeAbsolute                 // absolute path, virtual files as named
	PathModeRelative                 // relative to FileSet.BaseDir
	PathModeBasename                 // file name only
)

// PrettyOpts drives Pretty.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Context is the number of source lines shown around the primary line.
	Context int8
	// Width clips source lines; 0 keeps them whole.
	Width uint8

	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool // fix previews with the edit applied
}

// JSONOpts drives JSON.
type JSONOpts struct {
	PathMode         PathMode
	IncludePositions bool // line/col next to byte offsets
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
	Max              int // limits the output only, the bag is untouched
}
