package newsletter

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/log"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

type NewsletterService interface {
	// CheckConfigured fails when signups cannot be stored, before any body is read.
	CheckConfigured(ctx context.Context) error
	Subscribe(ctx context.Context, req *SubscribeRequest) error
}

type newsletterService struct {
	logger     *log.Logger
	repository NewsletterRepository
}

func NewNewsletterService(logger *log.Logger, repository NewsletterRepository) NewsletterService {
	return &newsletterService{
		logger:     logger,
		repository: repository,
	}
}

func (s *newsletterService) CheckConfigured(ctx context.Context) error {
	if !s.repository.Configured() {
		log.GetLoggerInstanceFromContext(ctx, s.logger).
			Error("Newsletter signup cannot be stored: store is not configured")
		return store.NotConfiguredError()
	}
	return nil
}

// Subscribe checks store configuration before the payload, so a misdeployed
// gateway reports the configuration problem even for empty bodies.
// Only an '@' is required of the email here and its case is kept.
func (s *newsletterService) Subscribe(ctx context.Context, req *SubscribeRequest) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if err := s.CheckConfigured(ctx); err != nil {
		return err
	}

	if req == nil {
		return apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	req.Email = validation.Trim(req.Email)
	if req.Email == "" || !validation.HasAtSign(req.Email) {
		logger.Info("Newsletter signup rejected", "reason", "invalid_email")
		return apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	signup := ToNewsletterSignupModel(req)
	if err := s.repository.CreateSignup(ctx, signup); err != nil {
		logger.Error("Failed to store newsletter signup", "error", err)
		return err
	}

	logger.Info("Newsletter signup stored", "source", signup.Source)
	return nil
}
