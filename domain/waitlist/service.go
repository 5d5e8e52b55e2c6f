package waitlist

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/log"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

// Notifier relays a finished signup to the operations inbox without blocking.
type Notifier interface {
	Notify(ctx context.Context, job, name, email, message string)
}

type WaitlistService interface {
	// JoinWaitlist stores the signup and then relays it. The relay outcome
	// never changes the response.
	JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) error
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	notifier   Notifier
}

// NewWaitlistService accepts a nil notifier; relays are then skipped.
func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, notifier Notifier) WaitlistService {
	return &waitlistService{logger: logger, repository: repository, notifier: notifier}
}

func (s *waitlistService) JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("JoinWaitlist received empty request")
		return apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	req.Email = validation.Trim(req.Email)
	if !validation.HasAtSign(req.Email) {
		logger.Info("Waitlist signup rejected", "reason", "invalid_email")
		return apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	if !s.repository.Configured() {
		logger.Error("Waitlist signup cannot be stored: store is not configured")
		return store.NotConfiguredError()
	}

	signup := ToWaitlistSignupModel(req)
	if err := s.repository.CreateSignup(ctx, signup); err != nil {
		logger.Error("Failed to store waitlist signup", "error", err)
		return err
	}

	logger.Info("Waitlist signup stored")

	if s.notifier != nil {
		s.notifier.Notify(ctx, NotificationJob, NotificationName(signup), signup.Email, NotificationMessage(signup))
	}

	return nil
}
