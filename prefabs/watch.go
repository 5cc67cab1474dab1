package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed spec and script files under the watched
// directories. Events carries the prefab-relative name, e.g. "tank.yaml"
// or "scripts/bot.tengo".
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Drain returns the names reported since the last call without blocking.
func (w *Watcher) Drain() []string {
	var names []string
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return names
			}
			names = appendUnique(names, name)
		default:
			return names
		}
	}
}

// DrainErrors returns watcher errors reported since the last call without
// blocking.
func (w *Watcher) DrainErrors() []error {
	var errs []error
	for {
		select {
		case err, ok := <-w.Errors:
			if !ok {
				return errs
			}
			errs = append(errs, err)
		default:
			return errs
		}
	}
}

// run reports a file once it has been quiet for the debounce window, so an
// editor's truncate-then-write burst yields a single event for the final
// contents.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[string]time.Time)
	settle := time.NewTimer(debounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			if len(pending) == 0 {
				settle.Reset(debounce)
			}
			pending[event.Name] = time.Now()
		case <-settle.C:
			var next time.Duration
			for name, last := range pending {
				if wait := debounce - time.Since(last); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- cleanPrefabPath(name):
				case <-w.closeCh:
					return
				}
			}
			if next > 0 {
				settle.Reset(next)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Reader is behind; it already has errors to log.
			}
		case <-w.closeCh:
			return
		}
	}
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
