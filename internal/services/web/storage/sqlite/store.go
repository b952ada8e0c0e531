package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
	sqlitemigrate "github.com/techhubafrica/meetup-feedback/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage/sqlite/migrations"
)

// Store is a SQLite-backed wizard session store.
type Store struct {
	sqlDB *sql.DB
	ttl   time.Duration
	now   func() time.Time
	newID func() string
	locks webstorage.KeyedMutex
}

// Open opens and migrates a session store at path. A non-positive ttl uses
// the default.
func Open(ctx context.Context, path string, ttl time.Duration) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if ttl <= 0 {
		ttl = webstorage.DefaultWizardTTL
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		sqlDB: sqlDB,
		ttl:   ttl,
		now:   time.Now,
		newID: uuid.NewString,
	}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create stores a new session and returns its id. Expired rows are pruned
// on the way.
func (s *Store) Create(ctx context.Context, snapshot wizard.Snapshot) (string, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode wizard snapshot: %w", err)
	}
	now := s.now()
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE expires_at <= ?`, toMillis(now)); err != nil {
		return "", fmt.Errorf("prune wizard sessions: %w", err)
	}
	id := s.newID()
	if _, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO wizard_sessions (id, snapshot_json, updated_at, expires_at) VALUES (?, ?, ?, ?)`,
		id, string(payload), toMillis(now), toMillis(now.Add(s.ttl)),
	); err != nil {
		return "", fmt.Errorf("insert wizard session: %w", err)
	}
	return id, nil
}

// Get loads a live session snapshot.
func (s *Store) Get(ctx context.Context, id string) (wizard.Snapshot, error) {
	return s.load(ctx, s.sqlDB, id)
}

// Update applies fn under the session lock inside one transaction and saves
// the resulting snapshot with a refreshed expiry.
func (s *Store) Update(ctx context.Context, id string, fn func(*wizard.Wizard) error) (wizard.Snapshot, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return wizard.Snapshot{}, fmt.Errorf("begin wizard update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := s.load(ctx, tx, id)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	w, err := wizard.Restore(current)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	fnErr := fn(w)
	next := w.Snapshot()

	payload, err := json.Marshal(next)
	if err != nil {
		return wizard.Snapshot{}, fmt.Errorf("encode wizard snapshot: %w", err)
	}
	now := s.now()
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE wizard_sessions SET snapshot_json = ?, updated_at = ?, expires_at = ? WHERE id = ?`,
		string(payload), toMillis(now), toMillis(now.Add(s.ttl)), id,
	); err != nil {
		return wizard.Snapshot{}, fmt.Errorf("update wizard session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return wizard.Snapshot{}, fmt.Errorf("commit wizard update: %w", err)
	}
	return next, fnErr
}

// Delete removes a session. Missing ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete wizard session: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) load(ctx context.Context, q queryer, id string) (wizard.Snapshot, error) {
	if strings.TrimSpace(id) == "" {
		return wizard.Snapshot{}, webstorage.ErrNotFound
	}
	var payload string
	var expiresAt int64
	err := q.QueryRowContext(
		ctx,
		`SELECT snapshot_json, expires_at FROM wizard_sessions WHERE id = ?`,
		id,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return wizard.Snapshot{}, webstorage.ErrNotFound
	}
	if err != nil {
		return wizard.Snapshot{}, fmt.Errorf("load wizard session: %w", err)
	}
	if !s.now().Before(fromMillis(expiresAt)) {
		return wizard.Snapshot{}, webstorage.ErrNotFound
	}
	var snapshot wizard.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return wizard.Snapshot{}, fmt.Errorf("decode wizard session: %w", err)
	}
	return snapshot, nil
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

var _ webstorage.WizardStore = (*Store)(nil)
