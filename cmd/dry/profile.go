package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dry/internal/prof"
)

var profSession *prof.Session

// startProfiling runs before every command; stopProfiling after it.
func startProfiling(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()
	var p prof.Paths
	var err error
	if p.CPU, err = pf.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if p.Mem, err = pf.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if p.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if p == (prof.Paths{}) {
		return nil
	}
	profSession, err = prof.Start(p)
	return err
}

func stopProfiling(_ *cobra.Command, _ []string) error {
	err := profSession.Stop()
	profSession = nil
	return err
}
