package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dry/internal/diag"
	"dry/internal/driver"
	"dry/internal/source"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestForCommand(t *testing.T) {
	out, err := execute(t, "$number in [1, 2, 3] { print($number); }",
		"for", "-", "--format", "compact", "--diagnostics", "short", "--color", "off")
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	if out != "print(1); print(2); print(3);" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestForCommandReportsErrors(t *testing.T) {
	out, err := execute(t, "x in [1,2] { }",
		"for", "-", "--format", "compact", "--diagnostics", "short", "--color", "off")
	if err != errHasErrors {
		t.Fatalf("expected errHasErrors, got %v", err)
	}
	if out != "" {
		t.Fatalf("failed invocation must not print output, got %q", out)
	}
}

func TestWrapCommand(t *testing.T) {
	out, err := execute(t, "enum E { macro_for!($V in [A, B] { $V, }) }",
		"wrap", "-", "--format", "compact", "--diagnostics", "short", "--color", "off")
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if out != "enum E { A, B, }" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExpandDirCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.rs"), []byte("macro_for!($x in [1, 2] { f($x); })\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "", "expand", dir, "--out", outDir, "--ui", "off", "--format", "source",
		"--diagnostics", "short", "--color", "off", "--quiet")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "a.rs"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "f(1); f(2);\n" {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "dry.toml") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := execute(t, "", "init", dir); err == nil {
		t.Fatalf("second init must refuse to overwrite")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	if shouldUseTUI(uiModeOff, false) || !shouldUseTUI(uiModeOn, true) {
		t.Fatalf("explicit modes must win")
	}
}

func TestOnlyErrors(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.SynTrailingTokens, source.Span{}, "w"))
	bag.Add(diag.NewError(diag.SynMissingMarker, source.Span{}, "e"))
	got := onlyErrors(bag)
	if got.Len() != 1 || got.Items()[0].Code != diag.SynMissingMarker {
		t.Fatalf("unexpected bag %+v", got.Items())
	}
}

func TestEmitHeader(t *testing.T) {
	var buf bytes.Buffer
	res := &driver.Result{Path: "a.rs", Bag: diag.NewBag(0), Rendered: []byte("x\n")}
	if err := emit(&buf, "", res, true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "==> a.rs <==\nx\n" {
		t.Fatalf("got %q", buf.String())
	}
}
