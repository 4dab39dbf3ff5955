package store

import (
	"sort"

	"github.com/devfolio/portfolio-backend/types"
)

// SortByRecency orders submissions by created_at descending, breaking ties
// by id descending. The sort is stable and happens in place.
func SortByRecency(subs []*types.ContactSubmission) {
	sort.SliceStable(subs, func(i, j int) bool {
		a, b := subs[i], subs[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
