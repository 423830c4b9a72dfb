package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/panforge/panlayout/pkg/errors"
)

// FileStore is a file-based instrument store for the CLI.
// Instruments are stored as JSON files named by ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/panlayout/instruments/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get config dir")
		}
		baseDir = filepath.Join(dir, "panlayout", "instruments")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create instrument dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, inst *Instrument) error {
	if err := prepare(inst); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal instrument")
	}
	if err := os.WriteFile(s.path(inst.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write instrument file")
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Instrument, error) {
	// IDs are UUIDs; anything else could escape baseDir.
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read instrument file")
	}

	var inst Instrument
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse instrument")
	}
	return &inst, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read instrument dir")
	}

	var out []*Instrument
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var inst Instrument
		if err := json.Unmarshal(data, &inst); err != nil {
			continue
		}
		out = append(out, &inst)
	}
	sortInstruments(out)
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove instrument file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for instrument files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
