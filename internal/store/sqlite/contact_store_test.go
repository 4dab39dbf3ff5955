package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/internal/store/storetest"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func openTestStore(t *testing.T) *ContactStore {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.ContactStore {
		return openTestStore(t)
	})
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")
	ctx := context.Background()

	first, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = first.Create(ctx, types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Persist across opens"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	subs, err := second.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1), subs[0].ID)
	assert.Equal(t, "Persist across opens", subs[0].Message)
}

func TestCreate_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	in := types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello there friend"}
	mock.ExpectQuery(regexp.QuoteMeta(insertContactSQL)).
		WithArgs(in.Name, in.Email, in.Message).
		WillReturnError(errors.New("database is locked"))

	sub, err := New(db).Create(context.Background(), in)
	assert.Nil(t, sub)
	assert.ErrorContains(t, err, "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_BadTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(insertContactSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, "yesterday"))

	_, err = New(db).Create(context.Background(), types.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello there friend"})
	assert.ErrorIs(t, err, store.ErrCorruptData)
}

func TestListAll_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(listContactsSQL)).WillReturnError(errors.New("no such table: contacts"))

	subs, err := New(db).ListAll(context.Background())
	assert.Nil(t, subs)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_ParsesRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "message", "created_at"}).
		AddRow(2, "Grace", "grace@example.com", "Second message here", "2024-06-02T08:00:00.250Z").
		AddRow(1, "Ada", "ada@example.com", "First message here", "2024-06-02T07:00:00.000Z")
	mock.ExpectQuery(regexp.QuoteMeta(listContactsSQL)).WillReturnRows(rows)

	subs, err := New(db).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, int64(2), subs[0].ID)
	assert.Equal(t, 250000000, subs[0].CreatedAt.Nanosecond())
	assert.Equal(t, 7, subs[1].CreatedAt.Hour())
}
