package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/amishk599/jobfeed/internal/model"
)

var (
	_ model.SeenStore = (*JSONFileStore)(nil)
	_ model.RunLocker = (*JSONFileStore)(nil)
)

// JSONFileStore keeps the seen set as a sorted JSON array of strings in a
// single file. Writes go through a temp file and rename, so a crash leaves
// either the previous contents or the new ones.
type JSONFileStore struct {
	path        string
	lockTimeout time.Duration
	logger      *slog.Logger
}

// NewJSONFileStore returns a store backed by path. lockTimeout bounds how
// long Lock waits for another run to release the state file.
func NewJSONFileStore(path string, lockTimeout time.Duration, logger *slog.Logger) *JSONFileStore {
	return &JSONFileStore{
		path:        path,
		lockTimeout: lockTimeout,
		logger:      logger,
	}
}

// Path returns the state file location.
func (s *JSONFileStore) Path() string { return s.path }

// Load reads the seen set. A missing file, unreadable file or anything other
// than a JSON array of strings yields an empty set.
func (s *JSONFileStore) Load() model.SeenSet {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no state file, starting empty", "path", s.path)
		return model.NewSeenSet()
	}
	if err != nil {
		s.logger.Warn("reading state file, starting empty", "path", s.path, "error", err)
		return model.NewSeenSet()
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		s.logger.Warn("state file is not a JSON array of strings, starting empty", "path", s.path, "error", err)
		return model.NewSeenSet()
	}
	return model.NewSeenSet(keys...)
}

// Save overwrites the state file with the sorted keys of seen.
func (s *JSONFileStore) Save(seen model.SeenSet) error {
	data, err := json.MarshalIndent(seen.Sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seen set: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp state file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing state file %s: %w", s.path, err)
	}

	s.logger.Debug("state file saved", "path", s.path, "keys", seen.Len())
	return nil
}

// Lock takes an exclusive advisory lock on "<path>.lock", waiting up to the
// configured timeout for a concurrent run to finish.
func (s *JSONFileStore) Lock(ctx context.Context) (func() error, error) {
	return lockFile(ctx, s.path+".lock", s.lockTimeout)
}
