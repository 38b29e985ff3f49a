// Package sqlite persists compiled world configurations in a SQLite
// database.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tatianab/kastle/internal/ctxlog"
	"github.com/tatianab/kastle/internal/models"
	"github.com/tatianab/kastle/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Load and Delete when no world has that name.
var ErrNotFound = errors.New("world not found")

// WorldSummary describes a stored world without decoding it.
type WorldSummary struct {
	Name           string
	Title          string
	InitialRoomID  string
	RoomCount      int
	ItemCount      int
	CharacterCount int
	SavedAt        time.Time
}

// Store is a SQLite-backed world store.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying database. It is nil-safe.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save stores cfg under name, replacing any world with the same name.
func (s *Store) Save(ctx context.Context, name string, cfg *models.GameConfiguration) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("world name is required")
	}

	var buf bytes.Buffer
	if err := models.EncodeYAML(&buf, cfg); err != nil {
		return fmt.Errorf("encode world %s: %w", name, err)
	}

	title := ""
	if cfg.Metadata != nil && cfg.Metadata.Name != nil {
		title = *cfg.Metadata.Name
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO worlds (name, initial_room_id, title, room_count, item_count, character_count, config_yaml, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    initial_room_id = excluded.initial_room_id,
    title = excluded.title,
    room_count = excluded.room_count,
    item_count = excluded.item_count,
    character_count = excluded.character_count,
    config_yaml = excluded.config_yaml,
    saved_at = excluded.saved_at
`,
		name, cfg.InitialRoomID, title,
		len(cfg.Rooms), len(cfg.Items), len(cfg.Characters),
		buf.Bytes(), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save world %s: %w", name, err)
	}

	ctxlog.FromContext(ctx).Debug("World saved to sqlite.", "name", name, "bytes", buf.Len())
	return nil
}

// Load returns the world stored under name.
func (s *Store) Load(ctx context.Context, name string) (*models.GameConfiguration, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, "SELECT config_yaml FROM worlds WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load world %s: %w", name, err)
	}
	return models.DecodeYAML(data)
}

// List returns a summary of every stored world, most recently saved first.
func (s *Store) List(ctx context.Context) ([]WorldSummary, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT name, title, initial_room_id, room_count, item_count, character_count, saved_at
FROM worlds
ORDER BY saved_at DESC, name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	defer rows.Close()

	var out []WorldSummary
	for rows.Next() {
		var w WorldSummary
		var savedAt int64
		if err := rows.Scan(&w.Name, &w.Title, &w.InitialRoomID, &w.RoomCount, &w.ItemCount, &w.CharacterCount, &savedAt); err != nil {
			return nil, fmt.Errorf("scan world: %w", err)
		}
		w.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read worlds: %w", err)
	}
	return out, nil
}

// Delete removes the world stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM worlds WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete world %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete world %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}
