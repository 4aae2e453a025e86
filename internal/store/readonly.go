package store

import (
	"log/slog"

	"github.com/amishk599/jobfeed/internal/model"
)

var _ model.SeenStore = (*ReadOnlyStore)(nil)

// ReadOnlyStore is used in dry-run mode: it reads the real seen set but
// never writes, so every dry run sees the same state.
type ReadOnlyStore struct {
	inner  model.SeenStore
	logger *slog.Logger
}

func NewReadOnlyStore(inner model.SeenStore, logger *slog.Logger) *ReadOnlyStore {
	return &ReadOnlyStore{inner: inner, logger: logger}
}

func (s *ReadOnlyStore) Load() model.SeenSet { return s.inner.Load() }

func (s *ReadOnlyStore) Save(seen model.SeenSet) error {
	s.logger.Info("dry-run: seen set not saved", "keys", seen.Len())
	return nil
}
