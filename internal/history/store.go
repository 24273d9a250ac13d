// Package history persists visited pages and suggests them back to the
// address bar.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Visit is one page in history.
type Visit struct {
	URL       string
	Title     string
	Count     int
	LastVisit time.Time
}

// Store is the SQLite backed visit table.
type Store struct {
	db *sql.DB
}

// Open creates or upgrades the database at path.
func Open(path string) (*Store, error) {
	if err := migrateUp(path); err != nil {
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	return &Store{db: db}, nil
}

// migrateUp runs on its own connection because closing the migrator closes
// the database it was given.
func migrateUp(path string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Record upserts a visit, bumping its count.
func (s *Store) Record(ctx context.Context, v Visit) error {
	if v.LastVisit.IsZero() {
		v.LastVisit = now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO visits (url, title, visit_count, last_visit) VALUES (?, ?, 1, ?)
ON CONFLICT(url) DO UPDATE SET
    visit_count = visit_count + 1,
    last_visit = excluded.last_visit,
    title = CASE WHEN excluded.title = '' THEN visits.title ELSE excluded.title END`,
		v.URL, v.Title, v.LastVisit)
	return err
}

// Retitle updates the title of a known visit without counting a new one.
func (s *Store) Retitle(ctx context.Context, url, title string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE visits SET title = ? WHERE url = ?`, title, url)
	return err
}

// Recent returns up to n visits, most recent first.
func (s *Store) Recent(ctx context.Context, n int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT url, title, visit_count, last_visit FROM visits
ORDER BY last_visit DESC, url ASC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.URL, &v.Title, &v.Count, &v.LastVisit); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Clear deletes every visit.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM visits`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
