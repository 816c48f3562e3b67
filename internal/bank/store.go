package bank

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumint/internal/errors"
)

// Store holds the active question bank and optionally watches the bank file
// for changes. Reads go through an atomic pointer so request handlers never
// block on a reload.
type Store struct {
	mu sync.Mutex

	path    string
	current atomic.Pointer[Bank]
	logger  *errors.Logger

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	onReload func(success bool)

	running bool
}

// NewStore loads the bank at path. A load failure here is fatal; the
// service cannot start without a valid bank.
func NewStore(path string, logger *errors.Logger) (*Store, error) {
	b, err := Load(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:       path,
		logger:     logger,
		stopChan:   make(chan struct{}),
		reloadChan: make(chan struct{}, 1),
	}
	s.current.Store(b)
	return s, nil
}

// Bank returns the active bank. The returned value is immutable.
func (s *Store) Bank() *Bank {
	return s.current.Load()
}

// SetReloadHook registers a callback invoked after every reload attempt.
// Set it before calling Watch.
func (s *Store) SetReloadHook(fn func(success bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = fn
}

// Watch starts watching the bank file for changes. Events are debounced so
// editors that write in multiple steps trigger a single reload.
func (s *Store) Watch(debounceDelay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("question bank watcher is already running")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}
	s.debounceDelay = debounceDelay

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	s.fsWatcher = watcher

	// Watch the directory rather than the file so atomic writes (rename
	// over the original) are still observed.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && s.logger != nil {
			s.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	s.running = true
	go s.watchLoop()

	if s.logger != nil {
		s.logger.Info("Question bank watcher started",
			"file", s.path,
			"debounce_delay", s.debounceDelay)
	}
	return nil
}

// Stop stops the file watcher. The store remains readable.
func (s *Store) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	close(s.stopChan)
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	if err := s.fsWatcher.Close(); err != nil {
		if s.logger != nil {
			s.logger.LogError(err, "Failed to close file system watcher")
		}
		return err
	}

	s.running = false
	if s.logger != nil {
		s.logger.Info("Question bank watcher stopped")
	}
	return nil
}

func (s *Store) watchLoop() {
	for {
		select {
		case event, ok := <-s.fsWatcher.Events:
			if !ok {
				return
			}
			if s.shouldProcessEvent(event) {
				s.scheduleReload()
			}

		case err, ok := <-s.fsWatcher.Errors:
			if !ok {
				return
			}
			if s.logger != nil {
				s.logger.LogError(err, "Question bank watcher error")
			}

		case <-s.reloadChan:
			s.reload()

		case <-s.stopChan:
			return
		}
	}
}

func (s *Store) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(s.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (s *Store) scheduleReload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounceDelay, func() {
		select {
		case s.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// reload replaces the active bank. An invalid replacement keeps the current
// bank in place so a bad edit never takes the service down.
func (s *Store) reload() {
	b, err := Load(s.path)
	s.mu.Lock()
	hook := s.onReload
	s.mu.Unlock()
	if hook != nil {
		hook(err == nil)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.LogError(err, "Question bank reload failed, keeping previous bank",
				"file", s.path)
		}
		return
	}

	old := s.current.Swap(b)
	if s.logger != nil {
		s.logger.Info("Question bank reloaded",
			"file", s.path,
			"skills", b.Len(),
			"previous_skills", old.Len())
	}
}
