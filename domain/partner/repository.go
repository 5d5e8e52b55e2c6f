package partner

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/models"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=partner

type PartnerRepository interface {
	Configured() bool
	CreateApplication(ctx context.Context, app *models.PartnerApplication) error
}

type partnerRepository struct {
	store store.Store
}

func NewPartnerRepository(s store.Store) PartnerRepository {
	return &partnerRepository{store: s}
}

func (r *partnerRepository) Configured() bool {
	return r.store != nil
}

func (r *partnerRepository) CreateApplication(ctx context.Context, app *models.PartnerApplication) error {
	if r.store == nil {
		return store.NotConfiguredError()
	}

	if err := r.store.Create(ctx, app); err != nil {
		return store.PersistenceError(MsgSubmitFailed, err)
	}

	return nil
}
