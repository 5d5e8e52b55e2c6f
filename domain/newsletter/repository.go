package newsletter

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=newsletter

type NewsletterRepository interface {
	Configured() bool
	CreateSignup(ctx context.Context, signup *models.NewsletterSignup) error
}

type newsletterRepository struct {
	store store.Store
}

func NewNewsletterRepository(s store.Store) NewsletterRepository {
	return &newsletterRepository{store: s}
}

func (r *newsletterRepository) Configured() bool {
	return r.store != nil
}

func (r *newsletterRepository) CreateSignup(ctx context.Context, signup *models.NewsletterSignup) error {
	if r.store == nil {
		return store.NotConfiguredError()
	}

	if err := r.store.Create(ctx, signup); err != nil {
		return store.PersistenceError(MsgSubmitFailed, err)
	}

	return nil
}
