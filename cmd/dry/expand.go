package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dry/internal/driver"
	"dry/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file|dir|->",
	Short: "Expand every macro_for!/macro_wrap! call site in a file or directory",
	Long: `Expand scans the input the way a macro host would: each call site is handed
to the engine and the result is spliced back, pass after pass, until no call
sites remain or recursion_limit is reached. A directory is processed in
parallel; files are selected by extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var forCmd = &cobra.Command{
	Use:   "for [flags] <file|->",
	Short: "Expand the input as the body of one macro_for! call",
	Long:  `The whole input is read as "$x in [values] { body }" and expanded once.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntry(cmd, args[0], driver.EntryFor)
	},
}

var wrapCmd = &cobra.Command{
	Use:   "wrap [flags] <file|->",
	Short: "Expand the input as the body of one macro_wrap! call",
	Long:  `Every macro_for!(...) inside the input is replaced by its expansion, inline.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntry(cmd, args[0], driver.EntryWrap)
	},
}

func init() {
	for _, c := range []*cobra.Command{expandCmd, forCmd, wrapCmd} {
		c.Flags().String("format", "source", "output format (source|compact|tree|tokens|json)")
		c.Flags().StringP("out", "o", "", "write results into this directory instead of stdout")
	}
	expandCmd.Flags().StringSlice("ext", nil, "file extensions to expand in a directory (default from config)")
	expandCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	expandCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	expandCmd.Flags().Bool("cache", false, "reuse cached results (overrides [cache].enabled)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	input := args[0]
	if input != "-" {
		st, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", input, err)
		}
		if st.IsDir() {
			return runExpandDir(cmd, input)
		}
	}
	return runEntry(cmd, input, driver.EntryHost)
}

// runEntry expands one file (or stdin) through entry.
func runEntry(cmd *cobra.Command, input string, entry driver.Entry) (err error) {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	cfg, err := loadConfig(cmd, input)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cfg, g)
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	ctx := cmd.Context()
	var res *driver.Result
	if input == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res = driver.ExpandSource(ctx, "<stdin>", data, entry, opts)
	} else {
		res, err = driver.ExpandFile(ctx, input, entry, opts)
		if err != nil {
			return err
		}
	}

	reportTimings(os.Stderr, res.Bag, opts.Timer, g, entry.String(), res.Path, 1)
	hasErrors, err := reportDiagnostics(os.Stderr, res.Bag, res.Files, g)
	if err != nil {
		return err
	}
	if !hasErrors {
		if err := emit(cmd.OutOrStdout(), outDir, res, false); err != nil {
			return err
		}
	}
	if hasErrors {
		return errHasErrors
	}
	return nil
}

func runExpandDir(cmd *cobra.Command, dir string) (err error) {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cfg, g)
	if err != nil {
		return err
	}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	exts := cfg.Expand.Extensions
	if cmd.Flags().Changed("ext") {
		if exts, err = cmd.Flags().GetStringSlice("ext"); err != nil {
			return fmt.Errorf("failed to get ext flag: %w", err)
		}
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	files, err := driver.ListFiles(dir, exts)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		if !g.quiet {
			fmt.Fprintf(os.Stderr, "no files with extensions %v in %s\n", exts, dir)
		}
		return nil
	}

	var (
		fs      *source.FileSet
		results []*driver.Result
	)
	if shouldUseTUI(mode, outDir == "") && !g.quiet {
		display := make([]string, len(files))
		for i, f := range files {
			display[i] = displayPath(f, dir)
		}
		fs, results, err = runDirWithUI(cmd.Context(), "expanding "+dir, dir, display, exts, opts)
	} else {
		fs, results, err = driver.ExpandDir(cmd.Context(), dir, exts, driver.EntryHost, opts)
	}
	if err != nil {
		return err
	}

	bag := mergeBags(results, g.maxDiagnostics)
	reportTimings(os.Stderr, bag, opts.Timer, g, "dir", dir, len(results))
	hasErrors, err := reportDiagnostics(os.Stderr, bag, fs, g)
	if err != nil {
		return err
	}
	written := 0
	for _, res := range results {
		if res == nil || res.Failed() {
			continue
		}
		if err := emit(cmd.OutOrStdout(), outDir, res, true); err != nil {
			return err
		}
		written++
	}
	if !g.quiet {
		cached := 0
		for _, res := range results {
			if res != nil && res.Cached {
				cached++
			}
		}
		fmt.Fprintf(os.Stderr, "expanded %d of %d files (%d cached)\n", written, len(results), cached)
	}
	if hasErrors {
		return errHasErrors
	}
	return nil
}

// emit writes one rendered result to outDir, or to w with a header when
// several results share stdout.
func emit(w io.Writer, outDir string, res *driver.Result, header bool) error {
	if outDir != "" {
		_, err := driver.WriteOutput(outDir, res)
		return err
	}
	if header {
		if _, err := fmt.Fprintf(w, "==> %s <==\n", res.Path); err != nil {
			return err
		}
	}
	_, err := w.Write(res.Rendered)
	return err
}

func displayPath(path, base string) string {
	if rel, err := source.RelativePath(path, base); err == nil {
		return rel
	}
	return filepath.ToSlash(path)
}
