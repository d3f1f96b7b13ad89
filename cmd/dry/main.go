package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dry/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dry",
	Short: "Token-tree duplication engine",
	Long: `dry expands macro_for! and macro_wrap! invocations: a placeholder, a list
of values and a template body become one copy of the body per value.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errHasErrors означает, что диагностика с ошибками уже напечатана.
var errHasErrors = errors.New("errors reported")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(forCmd)
	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to dry.toml or dry.yaml (default: nearest above the input)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	pf.String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
	pf.Bool("strict-spacing", false, "reject whitespace between the marker and the identifier")
	pf.String("marker", "", "placeholder marker (default from config: $)")
	pf.String("for-macro", "", "name of the duplication macro (default from config: macro_for)")
	pf.String("wrap-macro", "", "name of the wrapping macro (default from config: macro_wrap)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("runtime-trace", "", "write a Go runtime execution trace to this file")

	rootCmd.PersistentPreRunE = startProfiling
	rootCmd.PersistentPostRunE = stopProfiling
}

func main() {
	err := rootCmd.Execute()
	// PostRun не вызывается при ошибке команды
	if stopErr := stopProfiling(rootCmd, nil); stopErr != nil && err == nil {
		err = stopErr
	}
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "dry: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
