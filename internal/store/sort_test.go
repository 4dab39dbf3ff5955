package store

import (
	"testing"
	"time"

	"github.com/devfolio/portfolio-backend/types"
	"github.com/stretchr/testify/assert"
)

func TestSortByRecency(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	subs := []*types.ContactSubmission{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(2 * time.Minute)},
		{ID: 3, CreatedAt: base.Add(time.Minute)},
		{ID: 5, CreatedAt: base.Add(time.Minute)},
		{ID: 4, CreatedAt: base.Add(time.Minute)},
	}

	SortByRecency(subs)

	var ids []int64
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{2, 5, 4, 3, 1}, ids)
}

func TestSortByRecency_Empty(t *testing.T) {
	subs := []*types.ContactSubmission{}
	SortByRecency(subs)
	assert.Empty(t, subs)
}
