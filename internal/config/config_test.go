package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "$", cfg.Syntax.Marker)
	assert.Equal(t, "macro_for", cfg.Syntax.ForMacro)
	assert.Equal(t, 64, cfg.Expand.RecursionLimit)
	assert.Equal(t, "source", cfg.Output.Format)
}

func TestLoadTOMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dry.toml")
	writeFile(t, path, `
[syntax]
marker = "@"
strict_spacing = true

[expand]
recursion_limit = 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "@", cfg.Syntax.Marker)
	assert.True(t, cfg.Syntax.StrictSpacing)
	assert.Equal(t, 8, cfg.Expand.RecursionLimit)
	assert.Equal(t, "in", cfg.Syntax.Keyword, "unset keys keep defaults")
	assert.Equal(t, []string{".rs", ".dry"}, cfg.Expand.Extensions)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dry.yaml")
	writeFile(t, path, "syntax:\n  for_macro: dup\noutput:\n  format: compact\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dup", cfg.Syntax.ForMacro)
	assert.Equal(t, "compact", cfg.Output.Format)
	assert.Equal(t, "macro_wrap", cfg.Syntax.WrapMacro)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dry.yml")
	writeFile(t, path, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Syntax, cfg.Syntax)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, content, errPart string
	}{
		{"bad toml", "a.toml", "[syntax\n", "failed to parse TOML"},
		{"unknown key", "b.toml", "[syntax]\nmarkr = \"$\"\n", "unknown key syntax.markr"},
		{"bad marker", "c.toml", "[syntax]\nmarker = \"$$\"\n", "syntax.marker"},
		{"bad macro", "d.toml", "[syntax]\nfor_macro = \"1abc\"\n", "syntax.for_macro"},
		{"same macros", "e.toml", "[syntax]\nwrap_macro = \"macro_for\"\n", "must differ"},
		{"zero limit", "f.toml", "[expand]\nrecursion_limit = 0\n", "recursion_limit"},
		{"empty ext", "g.toml", "[expand]\nextensions = []\n", "must not be empty"},
		{"bad format", "h.toml", "[output]\nformat = \"html\"\n", "output.format"},
		{"bad yaml field", "i.yaml", "syntax:\n  nope: 1\n", "failed to parse YAML"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			writeFile(t, path, tc.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dry.yml"), "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "dry.yml"), path)

	writeFile(t, filepath.Join(root, "a", "dry.toml"), "")
	path, ok, err = Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "dry.toml"), path)
}

func TestResolveAppliesEnv(t *testing.T) {
	t.Setenv("DRY_MARKER", "#")
	t.Setenv("DRY_FOR_MACRO", "each")
	t.Setenv("DRY_WRAP_MACRO", "")
	t.Setenv("DRY_CACHE_DIR", "/tmp/dry-cache")

	cfg, err := Resolve("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "#", cfg.Syntax.Marker)
	assert.Equal(t, "each", cfg.Syntax.ForMacro)
	assert.Equal(t, "macro_wrap", cfg.Syntax.WrapMacro)
	assert.Equal(t, "/tmp/dry-cache", cfg.CacheDir())

	t.Setenv("DRY_MARKER", "ab")
	_, err = Resolve("", t.TempDir())
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Syntax.Marker = "@"
	cfg.Expand.Extensions = []string{".rs"}

	for _, name := range []string{"dry.toml", "dry.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.Save(path))
		loaded, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg.Syntax, loaded.Syntax, name)
		assert.Equal(t, cfg.Expand, loaded.Expand, name)
		assert.Equal(t, cfg.Fingerprint(), loaded.Fingerprint(), name)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := Default(), Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Cache.Dir = "/elsewhere"
	b.Expand.Extensions = []string{".x"}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "cache and file selection do not affect output")

	b.Syntax.Marker = "@"
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
