// Package watch triggers a callback when the contents of a fixed set of
// source files change.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by writing a temp file and renaming it are still seen.
// Events are filtered by content hash; touching a file without changing its
// bytes does not fire.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/CodexForgeBR/daedalus/internal/logging"
)

// Watcher coalesces changes to Files and calls OnChange once per quiet period.
type Watcher struct {
	Files    []string
	Debounce time.Duration
	OnChange func(ctx context.Context, changed []string)
}

// Run blocks until ctx is canceled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	hashes := make(map[string]string, len(w.Files))
	dirs := make(map[string]bool)
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", f, err)
		}
		// Missing files hash to "" and fire once they appear.
		hashes[abs], _ = contentHash(abs)
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logging.Debug("watching " + dir)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if _, tracked := hashes[name]; !tracked || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending[name] = true
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Warn(fmt.Sprintf("watcher: %v", err))

		case <-timer.C:
			// Hash only once writes settle; a save often truncates first.
			var changed []string
			for name := range pending {
				sum, err := contentHash(name)
				if err != nil || sum == hashes[name] {
					continue
				}
				hashes[name] = sum
				changed = append(changed, name)
			}
			clear(pending)
			if len(changed) == 0 || w.OnChange == nil {
				continue
			}
			slices.Sort(changed)
			w.OnChange(ctx, changed)
		}
	}
}

// contentHash digests a source file so saves that leave its bytes unchanged
// can be ignored.
func contentHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
