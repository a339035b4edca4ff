package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/gh-tidy-annotate/pkg/config"
	"github.com/githubnext/gh-tidy-annotate/pkg/console"
)

const debounceDelay = 300 * time.Millisecond

// watchLog emits annotations once, then again every time the log file is
// written or recreated. It returns nil when ctx is cancelled.
func watchLog(ctx context.Context, opts AnnotateOptions, cfg *config.Config, sourceRoot string, stdout, stderr io.Writer) error {
	logPath, err := filepath.Abs(opts.LogPath)
	if err != nil {
		return fmt.Errorf("failed to resolve log path %s: %w", opts.LogPath, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so the log can be deleted and recreated by clang-tidy
	logDir := filepath.Dir(logPath)
	if err := watcher.Add(logDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", logDir, err)
	}

	// A missing log is not fatal while watching; it may be written later
	run := func() {
		if err := annotateOnce(opts, cfg, sourceRoot, stdout, stderr); err != nil {
			fmt.Fprintln(stderr, console.FormatErrorMessage(err.Error()))
		}
	}
	run()

	fmt.Fprintln(stderr, console.FormatInfoMessage(fmt.Sprintf("Watching %s for changes...", opts.LogPath)))
	if opts.Verbose {
		fmt.Fprintln(stderr, console.FormatVerboseMessage("Press Ctrl+C to stop watching."))
	}

	spinner := console.NewSpinner(stderr, "Waiting for clang-tidy...")
	spinner.Start()
	defer spinner.Stop()

	var rerun <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if filepath.Clean(event.Name) != logPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				rerun = time.After(debounceDelay)
			}

		case <-rerun:
			rerun = nil
			spinner.Stop()
			run()
			spinner.SetMessage("Waiting for clang-tidy... (last run " + time.Now().Format("15:04:05") + ")")
			spinner.Start()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Fprintln(stderr, console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}
		}
	}
}
