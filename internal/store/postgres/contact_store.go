// Package postgres implements the contact store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/db"
	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertContactSQL = `INSERT INTO contacts (name, email, message) VALUES ($1, $2, $3) RETURNING id, created_at`
	listContactsSQL  = `SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC, id DESC`
)

// Pool is the subset of *pgxpool.Pool the store needs.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

var _ store.ContactStore = (*ContactStore)(nil)

type ContactStore struct {
	pool Pool
}

// NewContactStore wraps an existing pool. The contacts table must exist.
func NewContactStore(pool Pool) *ContactStore {
	return &ContactStore{pool: pool}
}

// Open runs the schema migration, connects a pool and verifies it.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*ContactStore, error) {
	if err := db.RunMigrations(cfg.URL()); err != nil {
		return nil, fmt.Errorf("failed to migrate contacts schema: %w", err)
	}

	poolConfig, err := config.PostgresPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.GetLogger().Infow("Connected to PostgreSQL contact store", "database", cfg.Name)
	return NewContactStore(pool), nil
}

func (s *ContactStore) Create(ctx context.Context, in types.ContactInput) (*types.ContactSubmission, error) {
	sub := &types.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	err := s.pool.QueryRow(ctx, insertContactSQL, in.Name, in.Email, in.Message).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}
	sub.CreatedAt = sub.CreatedAt.UTC()
	return sub, nil
}

func (s *ContactStore) ListAll(ctx context.Context) ([]*types.ContactSubmission, error) {
	rows, err := s.pool.Query(ctx, listContactsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	subs := []*types.ContactSubmission{}
	for rows.Next() {
		var sub types.ContactSubmission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		sub.CreatedAt = sub.CreatedAt.UTC()
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return subs, nil
}

func (s *ContactStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *ContactStore) Close() error {
	s.pool.Close()
	return nil
}
