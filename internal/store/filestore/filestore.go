// Package filestore keeps contact submissions in a single JSON document on
// local disk.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/types"
)

var _ store.ContactStore = (*Store)(nil)

// Store is a ContactStore backed by one pretty-printed JSON array.
// Writes go through a mutex and replace the file atomically, so readers
// never see a partial document.
type Store struct {
	path string
	now  func() time.Time

	mu     sync.Mutex
	lastID int64
	closed bool
}

// Open prepares the file at path, creating it as an empty array if missing.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create contacts directory: %w", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write([]*types.ContactSubmission{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat contacts file: %w", err)
	}

	subs, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.ID > s.lastID {
			s.lastID = sub.ID
		}
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Create(ctx context.Context, in types.ContactInput) (*types.ContactSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	subs, err := s.read()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	sub := &types.ContactSubmission{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: now,
	}

	if err := s.write(append(subs, sub)); err != nil {
		return nil, err
	}
	s.lastID = id
	return sub, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*types.ContactSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, store.ErrClosed
	}

	subs, err := s.read()
	if err != nil {
		return nil, err
	}
	store.SortByRecency(subs)
	return subs, nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return store.ErrClosed
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("contacts file unavailable: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// read loads the document. A missing or empty file is an empty list.
func (s *Store) read() ([]*types.ContactSubmission, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*types.ContactSubmission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}
	if len(data) == 0 {
		return []*types.ContactSubmission{}, nil
	}

	subs := []*types.ContactSubmission{}
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrCorruptData, err)
	}
	if subs == nil {
		subs = []*types.ContactSubmission{}
	}
	return subs, nil
}

// write replaces the document via a synced temp file in the same directory.
func (s *Store) write(subs []*types.ContactSubmission) error {
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode contacts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write contacts: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync contacts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace contacts file: %w", err)
	}
	return nil
}
