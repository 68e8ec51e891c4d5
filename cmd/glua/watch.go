package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ltungv/glua/internal/lua"
)

// settle is how long the file must stay unchanged before it is run again.
// Editors often write a file in several steps.
const settle = 100 * time.Millisecond

// watchFile runs the script, then runs it again in a fresh interpreter each
// time it is written, until interrupted. The directory is watched rather
// than the file, since editors may replace the file instead of writing it.
func (a *app) watchFile(ctx context.Context, fpath string, check bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	target, err := filepath.Abs(fpath)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", fpath, err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", fpath, err)
	}

	a.runOnce(target, check)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			a.logger.Debug("file event", "name", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.After(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			a.runOnce(target, check)
		}
	}
}

// runOnce runs the file, reporting errors without ending the watch.
func (a *app) runOnce(fpath string, check bool) {
	bytes, err := os.ReadFile(fpath)
	if err != nil {
		a.logger.Warn("could not read script", "path", fpath, "err", err)
		return
	}
	reporter := lua.NewSimpleReporter(a.stderr)
	a.run(string(bytes), a.newInterpreter(), reporter, check)
	fmt.Fprintf(a.stderr, "-- %s finished at %s, waiting for changes\n", filepath.Base(fpath), time.Now().Format(time.TimeOnly))
}
