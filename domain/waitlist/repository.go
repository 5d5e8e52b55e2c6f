package waitlist

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/models"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

type WaitlistRepository interface {
	Configured() bool
	// CreateSignup appends a row to the waitlist. A store that enforces a
	// unique email reports repeats as a conflict.
	CreateSignup(ctx context.Context, signup *models.WaitlistSignup) error
}

type waitlistRepository struct {
	store store.Store
}

func NewWaitlistRepository(s store.Store) WaitlistRepository {
	return &waitlistRepository{store: s}
}

func (wr *waitlistRepository) Configured() bool {
	return wr.store != nil
}

func (wr *waitlistRepository) CreateSignup(ctx context.Context, signup *models.WaitlistSignup) error {
	if wr.store == nil {
		return store.NotConfiguredError()
	}

	if err := wr.store.Create(ctx, signup); err != nil {
		if store.IsDuplicate(err) {
			return apperrors.NewConflictError(MsgAlreadyListed, err)
		}
		return store.PersistenceError(MsgSubmitFailed, err)
	}

	return nil
}
