package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dry/internal/config"
	"dry/internal/diagfmt"
	"dry/internal/driver"
	"dry/internal/observ"
)

// globals: значения persistent-флагов, общие для всех команд.
type globals struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagnostics    string
}

func readGlobals(cmd *cobra.Command) (globals, error) {
	pf := cmd.Root().PersistentFlags()
	var g globals
	colorFlag, err := pf.GetString("color")
	if err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		g.color = true
	case "off":
		g.color = false
	case "auto":
		g.color = isTerminal(os.Stderr)
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	if g.quiet, err = pf.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = pf.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.diagnostics, err = pf.GetString("diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	switch g.diagnostics {
	case "pretty", "short", "json":
	default:
		return g, fmt.Errorf("invalid --diagnostics value %q (expected pretty|short|json)", g.diagnostics)
	}
	return g, nil
}

// loadConfig resolves the config for input and applies flag overrides on top.
// input may be a file, a directory or "-".
func loadConfig(cmd *cobra.Command, input string) (*config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	explicit, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	startDir := "."
	if input != "" && input != "-" {
		if st, statErr := os.Stat(input); statErr == nil && st.IsDir() {
			startDir = input
		} else {
			startDir = filepath.Dir(input)
		}
	}
	cfg, err := config.Resolve(explicit, startDir)
	if err != nil {
		return nil, err
	}

	for flag, dst := range map[string]*string{
		"marker":     &cfg.Syntax.Marker,
		"for-macro":  &cfg.Syntax.ForMacro,
		"wrap-macro": &cfg.Syntax.WrapMacro,
	} {
		if pf.Changed(flag) {
			if *dst, err = pf.GetString(flag); err != nil {
				return nil, fmt.Errorf("failed to get %s flag: %w", flag, err)
			}
		}
	}
	if pf.Changed("strict-spacing") {
		if cfg.Syntax.StrictSpacing, err = pf.GetBool("strict-spacing"); err != nil {
			return nil, fmt.Errorf("failed to get strict-spacing flag: %w", err)
		}
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.Output.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		if cfg.Cache.Enabled, err = cmd.Flags().GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// driverOptions builds the driver options for cfg, opening the cache when enabled.
func driverOptions(cfg *config.Config, g globals) (driver.Options, error) {
	opts := driver.OptionsFromConfig(cfg)
	opts.MaxDiagnostics = g.maxDiagnostics
	if g.timings {
		opts.Timer = observ.NewTimer()
	}
	if cfg.Cache.Enabled {
		cache, err := driver.OpenDiskCache(cfg.CacheDir())
		if err != nil {
			return opts, err
		}
		opts.Cache = cache
	}
	return opts, nil
}

func prettyOpts(g globals) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     g.color,
		Context:   0,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		ShowFixes: true,
	}
}
