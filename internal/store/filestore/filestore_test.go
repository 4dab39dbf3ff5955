package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/internal/store/storetest"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.ContactStore {
		s, err := Open(filepath.Join(t.TempDir(), "contacts.json"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestOpen_InitializesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contacts.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestOpen_KeepsExistingRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	existing := `[
  {
    "id": 1700000000000,
    "name": "Grace",
    "email": "grace@example.com",
    "message": "Written by an older deployment",
    "created_at": "2023-11-14T22:13:20.000Z"
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	subs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1700000000000), subs[0].ID)
	assert.Equal(t, "Grace", subs[0].Name)

	// A clock behind the stored ids must still yield a larger id.
	s.now = func() time.Time { return time.UnixMilli(1600000000000) }
	sub, err := s.Create(context.Background(), types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "A fresh message here"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000001), sub.ID)
}

func TestCreate_IDsStrictlyIncreaseWithinSameMillisecond(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "contacts.json"))
	require.NoError(t, err)

	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	in := types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Same millisecond test"}
	first, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	second, err := s.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)

	subs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, second.ID, subs[0].ID)
}

func TestCreate_WritesPrettyPrintedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	s, err := Open(path)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	_, err = s.Create(context.Background(), types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Pretty print me"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "id": 1704164645000,
    "name": "Ada",
    "email": "ada@example.com",
    "message": "Pretty print me",
    "created_at": "2024-01-02T03:04:05Z"
  }
]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestListAll_EmptyOrMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	subs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)

	require.NoError(t, os.Remove(path))
	subs, err = s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, store.ErrCorruptData)
}

func TestClose(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "contacts.json"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Create(context.Background(), types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "After close"})
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, s.Ping(context.Background()), store.ErrClosed)

	subs, err := s.ListAll(context.Background())
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.Nil(t, subs)
}
