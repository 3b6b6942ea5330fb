package ruleset

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a rule file when it changes on disk. Editors often
// replace files atomically, so the file's directory is watched and
// events are filtered by name.
type Watcher struct {
	fw     *fsnotify.Watcher
	path   string
	reload func(*Config)
	onErr  func(error)
	done   chan struct{}
}

// Watch starts watching path. reload is called with each successfully
// parsed config; onErr receives parse and watch failures. onErr may be
// nil.
func Watch(path string, reload func(*Config), onErr func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating rule watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving rule path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching rule directory: %w", err)
	}

	if onErr == nil {
		onErr = func(error) {}
	}
	w := &Watcher{
		fw:     fw,
		path:   abs,
		reload: reload,
		onErr:  onErr,
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.onErr(err)
				continue
			}
			w.reload(cfg)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.onErr(err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
