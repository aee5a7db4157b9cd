// Package sqlite provides a SQLite-backed roll history store
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/lixenwraith/dice-tray/storage"
	"github.com/lixenwraith/dice-tray/storage/sqlite/migrations"
	"github.com/lixenwraith/dice-tray/storage/sqlitemigrate"
)

// Store persists rolls in SQLite
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the history database at path and applies embedded migrations
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRoll inserts one roll
func (s *Store) RecordRoll(ctx context.Context, roll storage.Roll) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	if err := roll.Validate(); err != nil {
		return err
	}
	resolvedAt := roll.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = time.Now().UTC()
	}
	startedAt := roll.StartedAt
	if startedAt.IsZero() {
		startedAt = resolvedAt
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO rolls (
		   id, session, die, faces, face, source, reason, distance, started_at, resolved_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		roll.ID,
		int64(roll.Session),
		roll.Die,
		roll.Faces,
		roll.Face,
		roll.Source,
		roll.Reason,
		roll.Distance,
		toMillis(startedAt),
		toMillis(resolvedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("record roll: %w", err)
	}
	return nil
}

// ListRecentRolls returns up to limit rolls, newest first
func (s *Store) ListRecentRolls(ctx context.Context, limit int) ([]storage.Roll, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, session, die, faces, face, source, reason, distance, started_at, resolved_at
		   FROM rolls
		  ORDER BY resolved_at DESC, rowid DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()

	var out []storage.Roll
	for rows.Next() {
		var (
			r                     storage.Roll
			session               int64
			startedAt, resolvedAt int64
		)
		if err := rows.Scan(&r.ID, &session, &r.Die, &r.Faces, &r.Face, &r.Source, &r.Reason, &r.Distance, &startedAt, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		r.Session = uint64(session)
		r.StartedAt = fromMillis(startedAt)
		r.ResolvedAt = fromMillis(resolvedAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rolls: %w", err)
	}
	return out, nil
}

// FaceCounts returns how often each face came up for die, ordered by face
func (s *Store) FaceCounts(ctx context.Context, die string) ([]storage.FaceCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT face, COUNT(*) FROM rolls WHERE die = ? GROUP BY face ORDER BY face`,
		die,
	)
	if err != nil {
		return nil, fmt.Errorf("count faces: %w", err)
	}
	defer rows.Close()

	var out []storage.FaceCount
	for rows.Next() {
		var fc storage.FaceCount
		if err := rows.Scan(&fc.Face, &fc.Count); err != nil {
			return nil, fmt.Errorf("scan face count: %w", err)
		}
		out = append(out, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate face counts: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, "rolls.id")
}

var _ storage.RollStore = (*Store)(nil)
