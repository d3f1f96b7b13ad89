package driver

import (
	"dry/internal/config"
	"dry/internal/diag"
	"dry/internal/expand"
	"dry/internal/observ"
	"dry/internal/source"
)

// Entry selects how a whole input is handed to the engine.
type Entry uint8

const (
	// EntryHost scans the input for macro call sites and expands them to a fixpoint.
	EntryHost Entry = iota
	// EntryFor treats the input as the inside of one macro_for!(...) call.
	EntryFor
	// EntryWrap treats the input as the inside of one macro_wrap!(...) call.
	EntryWrap
)

func (e Entry) String() string {
	switch e {
	case EntryHost:
		return "expand"
	case EntryFor:
		return "for"
	case EntryWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// Options configure the driver. Zero values fall back to config.Default().
type Options struct {
	Marker         string
	Keyword        string
	ForMacro       string
	WrapMacro      string
	StrictSpacing  bool
	WarnTrailing   bool
	RecursionLimit int
	MaxDiagnostics int
	Format         Format
	Jobs           int

	// Fingerprint identifies the settings in cache keys; see config.Fingerprint.
	Fingerprint string
	Cache       *DiskCache
	Timer       *observ.Timer
	Progress    ProgressSink
}

// OptionsFromConfig maps a resolved config onto driver options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Marker:         cfg.Syntax.Marker,
		Keyword:        cfg.Syntax.Keyword,
		ForMacro:       cfg.Syntax.ForMacro,
		WrapMacro:      cfg.Syntax.WrapMacro,
		StrictSpacing:  cfg.Syntax.StrictSpacing,
		WarnTrailing:   cfg.Expand.WarnTrailing,
		RecursionLimit: cfg.Expand.RecursionLimit,
		Format:         Format(cfg.Output.Format),
		Fingerprint:    cfg.Fingerprint(),
	}
}

func (o Options) withDefaults() Options {
	def := config.Default()
	if o.Marker == "" {
		o.Marker = def.Syntax.Marker
	}
	if o.Keyword == "" {
		o.Keyword = def.Syntax.Keyword
	}
	if o.ForMacro == "" {
		o.ForMacro = def.Syntax.ForMacro
	}
	if o.WrapMacro == "" {
		o.WrapMacro = def.Syntax.WrapMacro
	}
	if o.RecursionLimit <= 0 {
		o.RecursionLimit = def.Expand.RecursionLimit
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = diag.DefaultMax
	}
	if o.Format == "" {
		o.Format = FormatSource
	}
	return o
}

// engine builds the options of one engine call anchored at site.
func (o Options) engine(site source.Span, r diag.Reporter) expand.Options {
	return expand.Options{
		Marker:         o.Marker,
		Keyword:        o.Keyword,
		ForMacro:       o.ForMacro,
		CheckAdjacency: o.StrictSpacing,
		Site:           site,
		Reporter:       r,
		WarnTrailing:   o.WarnTrailing,
	}
}
