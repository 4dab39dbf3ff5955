// Package sqlite implements the contact store on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	_ "modernc.org/sqlite"
)

const (
	createContactsTableSQL = `CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`
	insertContactSQL = `INSERT INTO contacts (name, email, message) VALUES (?, ?, ?) RETURNING id, created_at`
	listContactsSQL  = `SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC, id DESC`
)

var _ store.ContactStore = (*ContactStore)(nil)

type ContactStore struct {
	db *sql.DB
}

// New wraps an open database handle. The contacts table must exist.
func New(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*ContactStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection: SQLite has a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, createContactsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create contacts table: %w", err)
	}

	logger.GetLogger().Infow("Opened SQLite contact store", "path", path)
	return New(db), nil
}

func (s *ContactStore) Create(ctx context.Context, in types.ContactInput) (*types.ContactSubmission, error) {
	sub := &types.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}

	var createdAt string
	err := s.db.QueryRowContext(ctx, insertContactSQL, in.Name, in.Email, in.Message).
		Scan(&sub.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}

	if sub.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *ContactStore) ListAll(ctx context.Context) ([]*types.ContactSubmission, error) {
	rows, err := s.db.QueryContext(ctx, listContactsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	subs := []*types.ContactSubmission{}
	for rows.Next() {
		var (
			sub       types.ContactSubmission
			createdAt string
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		if sub.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return subs, nil
}

func (s *ContactStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ContactStore) Close() error {
	return s.db.Close()
}

func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad created_at %q", store.ErrCorruptData, v)
	}
	return t.UTC(), nil
}
