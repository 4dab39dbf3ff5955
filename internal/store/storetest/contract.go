// Package storetest holds the behavioural contract every ContactStore
// implementation is tested against.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store. Cleanup is the caller's job
// (t.Cleanup is fine).
type Factory func(t *testing.T) store.ContactStore

// Run exercises the full contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("empty store lists nothing", func(t *testing.T) {
		s := newStore(t)
		subs, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, subs)
		assert.Empty(t, subs)
	})

	t.Run("create returns the stored record", func(t *testing.T) {
		s := newStore(t)
		in := types.ContactInput{Name: "Ada Lovelace", Email: "ada@example.com", Message: "Hello, I would like to talk."}

		sub, err := s.Create(context.Background(), in)
		require.NoError(t, err)
		assert.NotZero(t, sub.ID)
		assert.Equal(t, in.Name, sub.Name)
		assert.Equal(t, in.Email, sub.Email)
		assert.Equal(t, in.Message, sub.Message)
		assert.False(t, sub.CreatedAt.IsZero())

		subs, err := s.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, sub.ID, subs[0].ID)
		assert.Equal(t, sub.Name, subs[0].Name)
		assert.True(t, sub.CreatedAt.Equal(subs[0].CreatedAt))
	})

	t.Run("list is most recent first", func(t *testing.T) {
		s := newStore(t)
		var created []*types.ContactSubmission
		for i := 0; i < 3; i++ {
			sub, err := s.Create(context.Background(), input(i))
			require.NoError(t, err)
			created = append(created, sub)
		}

		subs, err := s.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, subs, 3)
		assert.Equal(t, created[2].ID, subs[0].ID)
		assert.Equal(t, created[0].ID, subs[2].ID)
		for i := 1; i < len(subs); i++ {
			assert.False(t, subs[i].CreatedAt.After(subs[i-1].CreatedAt), "list must be ordered by created_at desc")
		}
	})

	t.Run("listing leaves the store unchanged", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 3; i++ {
			_, err := s.Create(context.Background(), input(i))
			require.NoError(t, err)
		}

		first, err := s.ListAll(context.Background())
		require.NoError(t, err)
		want := ids(first)

		// reordering a returned slice must not leak into the next read
		first[0], first[len(first)-1] = first[len(first)-1], first[0]

		second, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, ids(second))

		third, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, ids(third))
	})

	t.Run("concurrent creates keep every record", func(t *testing.T) {
		s := newStore(t)
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := s.Create(context.Background(), input(i)); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		subs, err := s.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, subs, n)

		seen := make(map[int64]bool, n)
		for _, sub := range subs {
			assert.False(t, seen[sub.ID], "duplicate id %d", sub.ID)
			seen[sub.ID] = true
		}
	})

	t.Run("ping succeeds on an open store", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}

func ids(subs []*types.ContactSubmission) []int64 {
	out := make([]int64, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sub.ID)
	}
	return out
}

func input(i int) types.ContactInput {
	return types.ContactInput{
		Name:    "Visitor",
		Email:   fmt.Sprintf("visitor%d@example.com", i),
		Message: fmt.Sprintf("Message number %d from the contact form", i),
	}
}
