// Package presets persists named sets of custom filter values.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"

	"github.com/five82/reelfx/internal/filter"
)

var (
	// ErrNotFound is returned when a preset name is not stored.
	ErrNotFound = errors.New("preset not found")

	// ErrEmptyName is returned when a preset name is blank.
	ErrEmptyName = errors.New("preset name is empty")
)

// Store reads and writes a JSON file of the form {name: {param: value}}.
type Store struct {
	path string
	lock *flock.Flock
}

// Open returns a store backed by path. The file is created on first save.
func Open(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// List returns every stored preset name, sorted.
func (s *Store) List() ([]string, error) {
	all, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	var names []string
	for name := range all {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Get returns the values stored under name. Parameters missing from the
// file take their defaults.
func (s *Store) Get(name string) (filter.CustomValues, error) {
	name, err := cleanName(name)
	if err != nil {
		return filter.CustomValues{}, err
	}
	all, err := s.readLocked()
	if err != nil {
		return filter.CustomValues{}, err
	}
	m, ok := all[name]
	if !ok {
		return filter.CustomValues{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return filter.FromMap(m), nil
}

// Save stores values under name, replacing any previous entry.
func (s *Store) Save(name string, values filter.CustomValues) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return s.update(func(all map[string]map[string]float64) error {
		all[name] = values.ToMap()
		return nil
	})
}

// Delete removes name from the store.
func (s *Store) Delete(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return s.update(func(all map[string]map[string]float64) error {
		if _, ok := all[name]; !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		delete(all, name)
		return nil
	})
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

func (s *Store) readLocked() (map[string]map[string]float64, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock presets: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return s.read()
}

func (s *Store) update(fn func(map[string]map[string]float64) error) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock presets: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	all, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(all); err != nil {
		return err
	}
	return s.write(all)
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create presets directory: %w", err)
	}
	return nil
}

func (s *Store) read() (map[string]map[string]float64, error) {
	all := make(map[string]map[string]float64)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", s.path, err)
	}
	return all, nil
}

func (s *Store) write(all map[string]map[string]float64) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp presets file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write presets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close presets: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace presets: %w", err)
	}
	return nil
}
