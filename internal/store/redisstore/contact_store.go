// Package redisstore implements the contact store on a Redis sorted set.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/redis/go-redis/v9"
)

var _ store.ContactStore = (*ContactStore)(nil)

// ContactStore keeps each submission as a JSON member of one sorted set,
// scored by its creation time in unix milliseconds. Ids come from INCR.
type ContactStore struct {
	client *redis.Client
	setKey string
	seqKey string
	now    func() time.Time
}

// New builds a store on client. Keys are namespaced under prefix.
func New(client *redis.Client, prefix string) *ContactStore {
	if prefix == "" {
		prefix = "portfolio"
	}
	return &ContactStore{
		client: client,
		setKey: prefix + ":contacts",
		seqKey: prefix + ":contacts:seq",
		now:    time.Now,
	}
}

// Open connects with opts and verifies the server answers.
func Open(ctx context.Context, opts *redis.Options, prefix string) (*ContactStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.GetLogger().Infow("Connected to Redis contact store", "address", opts.Addr, "prefix", prefix)
	return New(client, prefix), nil
}

func (s *ContactStore) Create(ctx context.Context, in types.ContactInput) (*types.ContactSubmission, error) {
	id, err := s.client.Incr(ctx, s.seqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate contact id: %w", err)
	}

	sub := &types.ContactSubmission{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	member, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact: %w", err)
	}

	err = s.client.ZAdd(ctx, s.setKey, redis.Z{
		Score:  float64(sub.CreatedAt.UnixMilli()),
		Member: string(member),
	}).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store contact: %w", err)
	}
	return sub, nil
}

func (s *ContactStore) ListAll(ctx context.Context) ([]*types.ContactSubmission, error) {
	members, err := s.client.ZRevRange(ctx, s.setKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	subs := make([]*types.ContactSubmission, 0, len(members))
	for _, m := range members {
		var sub types.ContactSubmission
		if err := json.Unmarshal([]byte(m), &sub); err != nil {
			logger.GetLogger().Warnw("Skipping undecodable contact entry", "key", s.setKey, "error", err)
			continue
		}
		subs = append(subs, &sub)
	}
	// scores only carry millisecond precision
	store.SortByRecency(subs)
	return subs, nil
}

func (s *ContactStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *ContactStore) Close() error {
	return s.client.Close()
}
