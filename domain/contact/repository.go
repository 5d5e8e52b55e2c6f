package contact

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=contact

type ContactRepository interface {
	// Configured reports whether a store was provided at startup.
	Configured() bool
	// CreateMessage appends a row to contact_messages.
	CreateMessage(ctx context.Context, message *models.ContactMessage) error
}

type contactRepository struct {
	store store.Store
}

func NewContactRepository(s store.Store) ContactRepository {
	return &contactRepository{store: s}
}

func (r *contactRepository) Configured() bool {
	return r.store != nil
}

func (r *contactRepository) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	if r.store == nil {
		return store.NotConfiguredError()
	}

	if err := r.store.Create(ctx, message); err != nil {
		return store.PersistenceError(MsgSubmitFailed, err)
	}

	return nil
}
