// Package settings holds the user-facing application settings edited from the
// settings overlay.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	FeaturedProjectEndpoint = "featuredProjectEndpoint"
	DisableExternalLinks    = "disableExternalLinks"
	ErrorReporting          = "errorReporting"
	UnmountOnSuccess        = "unmountOnSuccess"
	ValidateWriteOnSuccess  = "validateWriteOnSuccess"
)

// Toggles lists the boolean settings shown in the settings overlay, in display order.
var Toggles = []string{
	ErrorReporting,
	UnmountOnSuccess,
	ValidateWriteOnSuccess,
	DisableExternalLinks,
}

// Store is a file-backed settings store. The zero value is not usable; call
// Open or New.
type Store struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

// New returns an in-memory store holding only defaults. Set never touches disk.
func New() *Store {
	v := viper.New()
	setDefaults(v)
	return &Store{v: v}
}

// Open reads the settings file at path. A missing file yields defaults; a
// malformed one is an error.
func Open(path string) (*Store, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) && !isNotFound(err) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}
	return &Store{v: v, path: path}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(FeaturedProjectEndpoint, "")
	v.SetDefault(DisableExternalLinks, false)
	v.SetDefault(ErrorReporting, true)
	v.SetDefault(UnmountOnSuccess, true)
	v.SetDefault(ValidateWriteOnSuccess, true)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// Get returns the value stored under key. It fails only when ctx is done.
func (s *Store) Get(ctx context.Context, key string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.GetSync(key), nil
}

// GetSync returns the value stored under key, or nil when unset.
func (s *Store) GetSync(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Get(key)
}

// GetBool returns the boolean stored under key.
func (s *Store) GetBool(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetBool(key)
}

// Set stores value under key and writes the settings file.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(key, value)
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Toggle flips a boolean setting and returns the new value.
func (s *Store) Toggle(key string) (bool, error) {
	next := !s.GetBool(key)
	return next, s.Set(key, next)
}

// Watch reloads the store whenever the settings file changes on disk and
// calls onChange afterwards. It returns when ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings dir: %w", err)
	}

	target := filepath.Clean(s.path)
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.reload(); err != nil {
				continue
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("settings watcher: %w", err)
		}
	}
}

func (s *Store) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	return nil
}
