package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dry/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default dry.toml",
	Long: `Init writes dry.toml with the built-in settings into dir (default: the
current directory), creating the directory when needed. Use --yaml for dry.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("yaml", false, "write dry.yaml instead of dry.toml")
	initCmd.Flags().Bool("force", false, "overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	useYAML, err := cmd.Flags().GetBool("yaml")
	if err != nil {
		return fmt.Errorf("failed to get yaml flag: %w", err)
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	name := config.FileNames[0]
	if useYAML {
		name = config.FileNames[1]
	}
	path := filepath.Join(target, name)

	if !force {
		for _, existing := range config.FileNames {
			p := filepath.Join(target, existing)
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to stat %q: %w", p, err)
			}
		}
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
