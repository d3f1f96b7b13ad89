package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dry/internal/diagfmt"
	"dry/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|->",
	Short: "Print the flat token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd, args[0], false)
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file|->",
	Short: "Print the token tree of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd, args[0], true)
	},
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	treeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDump(cmd *cobra.Command, input string, withTree bool) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	var result *driver.TokenizeResult
	if input == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result = driver.TokenizeSource("<stdin>", data, g.maxDiagnostics, withTree)
	} else if result, err = driver.Tokenize(input, g.maxDiagnostics, withTree); err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	hasErrors, err := reportDiagnostics(os.Stderr, result.Bag, result.FileSet, g)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case withTree && format == "json":
		err = diagfmt.FormatTreeJSON(out, result.Trees)
	case withTree:
		err = diagfmt.FormatTreePretty(out, result.Trees, result.FileSet)
	case format == "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if hasErrors {
		return errHasErrors
	}
	return nil
}
