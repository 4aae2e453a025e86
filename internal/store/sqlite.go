package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/amishk599/jobfeed/internal/model"
)

var (
	_ model.SeenStore = (*SQLiteStore)(nil)
	_ model.RunLocker = (*SQLiteStore)(nil)
)

// SQLiteStore tracks delivered identity keys in a SQLite database. Save
// rewrites the table to match the given set, so runs sharing a database must
// hold Lock from Load to Save.
type SQLiteStore struct {
	db          *sqlx.DB
	path        string
	lockTimeout time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// seen_keys table exists. lockTimeout bounds how long Lock waits for another run.
func NewSQLiteStore(dbPath string, lockTimeout time.Duration, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS seen_keys (
		job_key    TEXT PRIMARY KEY,
		first_seen INTEGER NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating seen_keys table: %w", err)
	}

	return &SQLiteStore{
		db:          db,
		path:        dbPath,
		lockTimeout: lockTimeout,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Load returns every recorded key. Query failures are logged and yield an
// empty set.
func (s *SQLiteStore) Load() model.SeenSet {
	var keys []string
	if err := s.db.Select(&keys, "SELECT job_key FROM seen_keys"); err != nil {
		s.logger.Warn("loading seen keys, starting empty", "error", err)
		return model.NewSeenSet()
	}
	return model.NewSeenSet(keys...)
}

// Save makes the table hold exactly the keys in seen. Keys already present
// keep their first_seen timestamp. The update runs in one transaction.
func (s *SQLiteStore) Save(seen model.SeenSet) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	var existing []string
	if err := tx.Select(&existing, "SELECT job_key FROM seen_keys"); err != nil {
		return fmt.Errorf("listing existing keys: %w", err)
	}
	for _, k := range existing {
		if seen.Has(k) {
			continue
		}
		if _, err := tx.Exec("DELETE FROM seen_keys WHERE job_key = ?", k); err != nil {
			return fmt.Errorf("deleting key %s: %w", k, err)
		}
	}

	now := s.now().Unix()
	for _, k := range seen.Sorted() {
		if _, err := tx.Exec("INSERT OR IGNORE INTO seen_keys (job_key, first_seen) VALUES (?, ?)", k, now); err != nil {
			return fmt.Errorf("inserting key %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// Prune deletes keys first recorded more than olderThan ago and returns how
// many were removed. Pruned listings become deliverable again.
func (s *SQLiteStore) Prune(olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan).Unix()
	res, err := s.db.Exec("DELETE FROM seen_keys WHERE first_seen < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning seen keys older than %v: %w", olderThan, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning seen keys older than %v: %w", olderThan, err)
	}
	return n, nil
}

// Lock takes an exclusive advisory lock on "<dbPath>.lock", waiting up to the
// configured timeout for a concurrent run to finish.
func (s *SQLiteStore) Lock(ctx context.Context) (func() error, error) {
	return lockFile(ctx, s.path+".lock", s.lockTimeout)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
