package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 300 * time.Millisecond

// watchTarget checks target, then again after every change to it, until
// SIGINT/SIGTERM. Edits to the user dictionary reload the lexicon.
func watchTarget(cmd *cobra.Command, e *env, target string, opts checkOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	st, err := os.Stat(target)
	if err != nil {
		return err
	}
	var wantFile string
	if st.IsDir() {
		if err := addWatchDirs(watcher, target); err != nil {
			return err
		}
	} else {
		// каталог, а не файл: редакторы сохраняют через rename
		wantFile = filepath.Clean(target)
		if err := watcher.Add(filepath.Dir(wantFile)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", target, err)
		}
	}
	var dictPath string
	if e.store != nil {
		dictPath = filepath.Clean(e.store.Path())
		// словаря может ещё не быть
		_ = watcher.Add(filepath.Dir(dictPath))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	opts.uiMode = uiModeOff
	errOut := cmd.ErrOrStderr()
	recheck := func() {
		if _, err := checkOnce(cmd, e, target, opts); err != nil {
			fmt.Fprintf(errOut, "lektor: %v\n", err)
		}
		if !opts.quiet {
			fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)...\n", target)
		}
	}
	recheck()

	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(event.Name)
			switch {
			case name == dictPath:
				e.provider.Reset()
			case wantFile != "":
				if name != wantFile {
					continue
				}
			default:
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(name); err == nil && info.IsDir() {
						_ = addWatchDirs(watcher, name)
						continue
					}
				}
				if !slices.Contains(opts.exts, strings.ToLower(filepath.Ext(name))) {
					continue
				}
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			recheck()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			fmt.Fprintf(errOut, "watcher error: %v\n", err)

		case <-sigChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case <-cmd.Context().Done():
			return nil
		}
	}
}

// addWatchDirs watches root and every non-hidden directory below it.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
