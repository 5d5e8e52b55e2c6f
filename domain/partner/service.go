package partner

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/log"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

type Notifier interface {
	Notify(ctx context.Context, job, name, email, message string)
}

type PartnerService interface {
	SubmitApplication(ctx context.Context, req *ApplyRequest) error
}

type partnerService struct {
	logger     *log.Logger
	repository PartnerRepository
	notifier   Notifier
}

func NewPartnerService(logger *log.Logger, repository PartnerRepository, notifier Notifier) PartnerService {
	return &partnerService{logger: logger, repository: repository, notifier: notifier}
}

func (s *partnerService) SubmitApplication(ctx context.Context, req *ApplyRequest) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	req.Normalize()
	if !req.HasRequiredFields() {
		logger.Info("Partner application rejected", "reason", "missing_fields")
		return apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	if !validation.IsEmail(req.Email) {
		logger.Info("Partner application rejected", "reason", "invalid_email")
		return apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	if !s.repository.Configured() {
		logger.Error("Partner application cannot be stored: store is not configured")
		return store.NotConfiguredError()
	}

	app := ToPartnerApplicationModel(req)
	if err := s.repository.CreateApplication(ctx, app); err != nil {
		logger.Error("Failed to store partner application", "error", err)
		return err
	}

	logger.Info("Partner application stored", "role", app.Role)

	if s.notifier != nil {
		s.notifier.Notify(ctx, NotificationJob, NotificationName(app), app.Email, NotificationMessage(app))
	}

	return nil
}
