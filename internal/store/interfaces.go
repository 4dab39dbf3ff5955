package store

import (
	"context"

	"github.com/devfolio/portfolio-backend/types"
)

// ContactStore persists contact submissions. Implementations must be safe
// for concurrent use and must never expose a partially written record.
type ContactStore interface {
	// Create stores a validated submission and returns it with its
	// assigned id and creation time.
	Create(ctx context.Context, in types.ContactInput) (*types.ContactSubmission, error)
	// ListAll returns every submission, most recent first. A fresh store
	// yields an empty, non-nil slice.
	ListAll(ctx context.Context) ([]*types.ContactSubmission, error)
	Ping(ctx context.Context) error
	Close() error
}
