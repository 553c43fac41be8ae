package prefabs

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// quietPeriod is how long the watched directories must stay unchanged before
// the collected edits are delivered. Editors often write a file several times
// per save.
const quietPeriod = 100 * time.Millisecond

// Change is one edited prefab file, relative to the watched directory.
type Change struct {
	Name   string
	Script bool
}

// ScriptsOnly reports whether every change in batch is a script.
func ScriptsOnly(batch []Change) bool {
	for _, c := range batch {
		if !c.Script {
			return false
		}
	}
	return len(batch) > 0
}

// Watcher reports edits to prefab data and scripts. Edits are collected until
// the directories go quiet and then delivered as one batch sorted by name, so
// a burst of saves costs a single reload. The game loop drains Events between
// frames.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan []Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches Dir and its scripts directory.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{Dir, filepath.Join(Dir, "scripts")} {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan []Change, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[string]Change)
	quiet := time.NewTimer(quietPeriod)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if change, ok := classify(event.Name); ok {
				pending[change.Name] = change
				quiet.Reset(quietPeriod)
			}

		case <-quiet.C:
			if len(pending) == 0 {
				continue
			}
			batch := slices.SortedFunc(maps.Values(pending), func(a, b Change) int {
				return strings.Compare(a.Name, b.Name)
			})
			clear(pending)
			select {
			case w.Events <- batch:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}

// classify maps a changed path to a Change, ignoring anything that is not a
// prefab or script.
func classify(path string) (Change, bool) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return Change{Name: name}, true
	case ".tengo":
		return Change{Name: "scripts/" + name, Script: true}, true
	}
	return Change{}, false
}
