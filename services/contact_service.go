package services

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-backend/errors"
	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/models/contact/validation"
	"github.com/devfolio/portfolio-backend/types"
	"go.uber.org/zap"
)

// SubmitResult is the outcome of an accepted submission. Persisted is false
// when the store failed and the record was synthesized instead.
type SubmitResult struct {
	Submission *types.ContactSubmission
	Persisted  bool
}

// ContactService runs the contact pipeline: validate, persist, notify.
type ContactService struct {
	store    store.ContactStore
	notifier Notifier
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewContactService(contactStore store.ContactStore, notifier Notifier) *ContactService {
	return &ContactService{
		store:    contactStore,
		notifier: notifier,
		log:      logger.GetLogger(),
		now:      time.Now,
	}
}

// Submit validates req and stores it. Only validation failures are returned
// as errors; a store failure still yields a result with Persisted false.
func (s *ContactService) Submit(ctx context.Context, req types.ContactCreate) (*SubmitResult, error) {
	if err := validation.CheckRequired(req); err != nil {
		return nil, err
	}

	in, fieldErrs := validation.ValidateContact(req)
	if len(fieldErrs) > 0 {
		return nil, errors.FieldValidation(fieldErrs)
	}

	result := &SubmitResult{Persisted: true}
	sub, err := s.store.Create(ctx, in)
	if err != nil {
		s.log.Errorw("Failed to save contact, continuing without persistence",
			"error", errors.NewPersistenceError("create", err),
			"email", logger.MaskEmail(in.Email))
		now := s.now().UTC()
		sub = &types.ContactSubmission{
			ID:        now.UnixMilli(),
			Name:      in.Name,
			Email:     in.Email,
			Message:   in.Message,
			CreatedAt: now,
		}
		result.Persisted = false
	} else {
		s.log.Infow("New contact form submission",
			"contact_id", sub.ID,
			"name", sub.Name,
			"email", logger.MaskEmail(sub.Email))
	}
	result.Submission = sub

	if s.notifier != nil {
		// the client may hang up; the notification should still go out
		_ = s.notifier.Notify(context.WithoutCancel(ctx), sub)
	}

	return result, nil
}

// List returns every stored submission, most recent first. Store failures
// are logged and reported as an empty list.
func (s *ContactService) List(ctx context.Context) []*types.ContactSubmission {
	subs, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Errorw("Failed to list contacts", "error", errors.NewPersistenceError("list", err))
		return []*types.ContactSubmission{}
	}
	if subs == nil {
		return []*types.ContactSubmission{}
	}
	return subs
}
