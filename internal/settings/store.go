package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/myoquiz/myoquiz/internal/quizgen"
)

// DefaultPath resolves the settings file path in priority order:
// 1. MYOQUIZ_SETTINGS environment variable
// 2. $XDG_CONFIG_HOME/myoquiz/settings.json
// 3. ~/.config/myoquiz/settings.json
func DefaultPath() (string, error) {
	if p := os.Getenv("MYOQUIZ_SETTINGS"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "myoquiz", "settings.json"), nil
}

// Store keeps the current settings, persists them to a JSON file and
// notifies subscribers when they change.
type Store struct {
	path string

	mu      sync.Mutex
	current Settings
	subs    map[int]func(Settings)
	nextSub int
}

// Open loads settings from path. A missing, unreadable or corrupt file
// yields the defaults; the error is returned alongside for reporting but
// the store is always usable. An empty path keeps settings in memory only.
func Open(path string) (*Store, error) {
	s := &Store{path: path, subs: make(map[int]func(Settings))}
	cur, err := Load(path)
	s.current = cur
	return s, err
}

// Load reads settings from path. It never returns unusable settings:
// on any problem it returns Default() and a non-nil error, except for a
// file that does not exist yet, which is not an error.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s.Normalize(), nil
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string { return s.path }

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.current)
}

// Save normalizes next, writes it and notifies subscribers. Subscribers
// are notified even if writing the file fails, since the in-memory value
// has changed; the write error is still returned.
func (s *Store) Save(next Settings) (Settings, error) {
	next = next.Normalize()

	s.mu.Lock()
	s.current = clone(next)
	subs := make([]func(Settings), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	err := s.write(next)
	for _, fn := range subs {
		fn(clone(next))
	}
	return next, err
}

// Reset restores and saves the defaults.
func (s *Store) Reset() (Settings, error) {
	return s.Save(Default())
}

// Subscribe registers fn to be called after every Save. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Settings)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) write(v Settings) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func clone(s Settings) Settings {
	s.EnabledTypes = append([]quizgen.QuestionType(nil), s.EnabledTypes...)
	return s
}
