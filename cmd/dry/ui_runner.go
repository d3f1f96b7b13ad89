package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dry/internal/driver"
	"dry/internal/source"
	"dry/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []*driver.Result
	err     error
}

// runDirWithUI runs ExpandDir while a progress model renders its events on stderr.
func runDirWithUI(ctx context.Context, title, dir string, files []string, exts []string, opts driver.Options) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ExpandDir(ctx, dir, exts, driver.EntryHost, o)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C): дочитываем события, чтобы ExpandDir не встал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
