package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lektor/internal/driver"
	"lektor/internal/source"
	"lektor/internal/ui"
)

type checkDirOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckDirWithUI runs driver.CheckDir while a Bubble Tea view renders
// its progress events.
func runCheckDirWithUI(ctx context.Context, title, dir string, files, exts []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, exts, optsCopy)
		outcomeCh <- checkDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// вид мог закрыться раньше драйвера
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
