// Package watcher reports changes made to a repository from outside the
// application, such as a commit from another terminal or a checkout.
//
// Only git's own state is watched (the git dir, refs, and remote refs), never
// the working tree, so large repositories do not exhaust inotify watches.
// Working tree edits are picked up by the periodic status poll.
package watcher

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Akashdeep-Patra/gitpane/internal/logger"
)

// Watcher coalesces filesystem events under a git dir into change signals.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
	once     sync.Once
	log      *slog.Logger
}

// New starts watching gitDir. Bursts of events closer together than
// debounce produce a single signal on Changes.
func New(gitDir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fw,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		log:      logger.Component("watcher"),
	}

	added := 0
	for _, dir := range watchDirs(gitDir) {
		if err := fw.Add(dir); err != nil {
			w.log.Debug("skip watch", "dir", dir, "error", err)
			continue
		}
		added++
	}
	w.log.Info("watching", "git_dir", gitDir, "dirs", added)

	go w.loop()
	return w, nil
}

// watchDirs lists the git dir and the ref directories below it that exist.
func watchDirs(gitDir string) []string {
	dirs := []string{gitDir}
	for _, sub := range []string{"refs", "refs/heads", "refs/tags", "refs/remotes"} {
		p := filepath.Join(gitDir, sub)
		if isDir(p) {
			dirs = append(dirs, p)
		}
	}

	// one level below refs/remotes, e.g. refs/remotes/origin
	remotes := filepath.Join(gitDir, "refs", "remotes")
	if entries, err := os.ReadDir(remotes); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, filepath.Join(remotes, e.Name()))
			}
		}
	}
	return dirs
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Changes delivers one value per settled burst of changes. It is closed
// after Close.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
		_ = w.fs.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.changes)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if shouldIgnore(ev.Name) {
				continue
			}
			d := w.delay()
			if timer == nil {
				timer = time.NewTimer(d)
			} else {
				timer.Reset(d)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Debug("change settled")
			select {
			case w.changes <- struct{}{}:
			default:
				// a signal is already waiting
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// delay is the debounce window plus up to half of it again at random, so
// several instances watching one repository do not refresh in lockstep.
func (w *Watcher) delay() time.Duration {
	if w.debounce <= 0 {
		return 0
	}
	return w.debounce + time.Duration(rand.Int64N(int64(w.debounce/2)+1))
}

// shouldIgnore filters out files git rewrites as part of its own work
// (locks, editor scratch files, the commit message buffer).
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".lock"):
		return true
	case strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swo"),
		strings.HasSuffix(base, "~"), strings.HasPrefix(base, ".#"):
		return true
	case base == "COMMIT_EDITMSG", base == "gc.log":
		return true
	case strings.HasPrefix(base, "fsmonitor"):
		return true
	}
	return false
}
