// Package config loads dry.toml (or dry.yaml) settings.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/vmihailenco/msgpack/v5"
)

// FileNames lists the config files Find looks for, in order of preference.
var FileNames = []string{"dry.toml", "dry.yaml", "dry.yml"}

type Config struct {
	Syntax SyntaxConfig `toml:"syntax" yaml:"syntax"`
	Expand ExpandConfig `toml:"expand" yaml:"expand"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type SyntaxConfig struct {
	Marker        string `toml:"marker" yaml:"marker"`
	Keyword       string `toml:"keyword" yaml:"keyword"`
	ForMacro      string `toml:"for_macro" yaml:"for_macro"`
	WrapMacro     string `toml:"wrap_macro" yaml:"wrap_macro"`
	StrictSpacing bool   `toml:"strict_spacing" yaml:"strict_spacing"`
}

type ExpandConfig struct {
	RecursionLimit int      `toml:"recursion_limit" yaml:"recursion_limit"`
	WarnTrailing   bool     `toml:"warn_trailing" yaml:"warn_trailing"`
	Extensions     []string `toml:"extensions" yaml:"extensions"`
}

type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

// Output formats accepted by [output].format.
var Formats = []string{"source", "compact", "tree", "tokens", "json"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Syntax: SyntaxConfig{
			Marker:    "$",
			Keyword:   "in",
			ForMacro:  "macro_for",
			WrapMacro: "macro_wrap",
		},
		Expand: ExpandConfig{
			RecursionLimit: 64,
			WarnTrailing:   true,
			Extensions:     []string{".rs", ".dry"},
		},
		Output: OutputConfig{Format: "source"},
	}
}

// Validate checks the settings that the engine relies on.
func (c *Config) Validate() error {
	var errs []error
	if !isMarker(c.Syntax.Marker) {
		errs = append(errs, fmt.Errorf("syntax.marker must be a single punctuation character, got %q", c.Syntax.Marker))
	}
	for _, f := range []struct{ key, val string }{
		{"syntax.keyword", c.Syntax.Keyword},
		{"syntax.for_macro", c.Syntax.ForMacro},
		{"syntax.wrap_macro", c.Syntax.WrapMacro},
	} {
		if !isIdent(f.val) {
			errs = append(errs, fmt.Errorf("%s must be an identifier, got %q", f.key, f.val))
		}
	}
	if c.Syntax.ForMacro == c.Syntax.WrapMacro {
		errs = append(errs, fmt.Errorf("syntax.for_macro and syntax.wrap_macro must differ"))
	}
	if c.Expand.RecursionLimit < 1 {
		errs = append(errs, fmt.Errorf("expand.recursion_limit must be >= 1, got %d", c.Expand.RecursionLimit))
	}
	for _, ext := range c.Expand.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("expand.extensions: %q must start with '.'", ext))
		}
	}
	if !validFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of %s, got %q", strings.Join(Formats, "|"), c.Output.Format))
	}
	return errors.Join(errs...)
}

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}

func isMarker(s string) bool {
	if len(s) != 1 {
		return false
	}
	return strings.ContainsRune("$@#~!%^&*?:|", rune(s[0]))
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// ApplyEnv overrides settings from DRY_* environment variables when set and non-empty.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DRY_MARKER"); v != "" {
		c.Syntax.Marker = v
	}
	if v := os.Getenv("DRY_FOR_MACRO"); v != "" {
		c.Syntax.ForMacro = v
	}
	if v := os.Getenv("DRY_WRAP_MACRO"); v != "" {
		c.Syntax.WrapMacro = v
	}
	if v := os.Getenv("DRY_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
}

// CacheDir returns the configured cache directory or $XDG_CACHE_HOME/dry.
func (c *Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", ".dry-cache")
	}
	return filepath.Join(base, "dry")
}

// fingerprinted: всё, что влияет на результат раскрытия
type fingerprinted struct {
	Marker, Keyword, ForMacro, WrapMacro string
	StrictSpacing, WarnTrailing          bool
	RecursionLimit                       int
	Format                               string
}

// Fingerprint hashes the settings that change expansion output.
func (c *Config) Fingerprint() string {
	data, err := msgpack.Marshal(fingerprinted{
		Marker:         c.Syntax.Marker,
		Keyword:        c.Syntax.Keyword,
		ForMacro:       c.Syntax.ForMacro,
		WrapMacro:      c.Syntax.WrapMacro,
		StrictSpacing:  c.Syntax.StrictSpacing,
		WarnTrailing:   c.Expand.WarnTrailing,
		RecursionLimit: c.Expand.RecursionLimit,
		Format:         c.Output.Format,
	})
	if err != nil {
		panic(fmt.Errorf("fingerprint: %w", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
