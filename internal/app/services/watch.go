package services

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chmouel/lazycommit/internal/models"
)

// DiffWatchDebounce is the debounce window for preview refreshes.
const DiffWatchDebounce = 600 * time.Millisecond

// DiffWatchService watches the work-tree copies of the files under
// review and signals when the highlighted diff preview should be
// re-read. It never touches the index or the candidate set.
type DiffWatchService struct {
	Started     bool
	Waiting     bool
	Events      chan struct{}
	Done        chan struct{}
	Paths       map[string]struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	root        string
	files       map[string]struct{}
	logf        func(string, ...any)
}

// NewDiffWatchService creates a watcher for review files under root.
func NewDiffWatchService(root string, logf func(string, ...any)) *DiffWatchService {
	return &DiffWatchService{
		root: root,
		logf: logf,
	}
}

// Start registers the candidate files' directories and starts the
// background goroutine. A disabled or already-started service returns
// false without error.
func (w *DiffWatchService) Start(enabled bool, files []models.ChangedFile) (bool, error) {
	if w.Started || !enabled || len(files) == 0 {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})
	w.Paths = make(map[string]struct{})
	w.files = make(map[string]struct{})
	for _, f := range files {
		abs := filepath.Join(w.root, f.Path)
		w.files[abs] = struct{}{}
		w.addWatchDir(filepath.Dir(abs))
	}

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *DiffWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *DiffWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *DiffWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *DiffWatchService) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < DiffWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *DiffWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// IsCandidate reports whether an event path belongs to a reviewed file.
func (w *DiffWatchService) IsCandidate(path string) bool {
	_, ok := w.files[path]
	return ok
}

func (w *DiffWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.IsCandidate(event.Name) {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("diff watcher error: %v", err)
		}
	}
}

func (w *DiffWatchService) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.Mu.Lock()
	defer w.Mu.Unlock()

	if _, ok := w.Paths[path]; ok {
		return
	}
	if err := w.Watcher.Add(path); err != nil {
		w.debugf("diff watcher add failed for %s: %v", path, err)
		return
	}
	w.Paths[path] = struct{}{}
}

func (w *DiffWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
