package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/gin-gonic/gin"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

// failingStore rejects every operation.
type failingStore struct{}

func (failingStore) Create(context.Context, types.ContactInput) (*types.ContactSubmission, error) {
	return nil, errors.New("disk full")
}

func (failingStore) ListAll(context.Context) ([]*types.ContactSubmission, error) {
	return nil, errors.New("permission denied")
}

func (failingStore) Ping(context.Context) error { return errors.New("unreachable") }
func (failingStore) Close() error               { return nil }

// recordingNotifier remembers every submission it was asked to announce.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []*types.ContactSubmission
}

func (n *recordingNotifier) Notify(_ context.Context, sub *types.ContactSubmission) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, sub)
	return false
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
