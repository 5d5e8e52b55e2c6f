package contact

import (
	"context"

	"github.com/nataa-app/landing-gateway/internal/log"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/mailer"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/nataa-app/landing-gateway/pkg/validation"
)

type ContactService interface {
	// SubmitContact validates a contact form, emails the operations inbox when
	// SMTP is configured, then stores the message.
	SubmitContact(ctx context.Context, req *SubmitContactRequest) error

	// Relay runs the same mail-then-store path for notifications raised by
	// other submissions. The email is not re-validated; the originating form
	// already applied its own rule.
	Relay(ctx context.Context, name, email, message string) error
}

type contactService struct {
	logger     *log.Logger
	repository ContactRepository
	mailer     mailer.Mailer
	inbox      string
}

// NewContactService accepts a nil mailer; the email step is then skipped.
func NewContactService(logger *log.Logger, repository ContactRepository, m mailer.Mailer, inbox string) ContactService {
	return &contactService{
		logger:     logger,
		repository: repository,
		mailer:     m,
		inbox:      inbox,
	}
}

func (s *contactService) SubmitContact(ctx context.Context, req *SubmitContactRequest) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	req.Normalize()
	if !req.HasRequiredFields() {
		logger.Info("Contact submission rejected", "reason", "missing_fields")
		return apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	if !validation.IsEmail(req.Email) {
		logger.Info("Contact submission rejected", "reason", "invalid_email")
		return apperrors.NewInvalidRequestError(MsgInvalidEmail, nil)
	}

	return s.deliver(ctx, logger, req)
}

func (s *contactService) Relay(ctx context.Context, name, email, message string) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	req := &SubmitContactRequest{Name: name, Email: email, Message: message}
	req.Normalize()
	if !req.HasRequiredFields() {
		return apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	return s.deliver(ctx, logger, req)
}

func (s *contactService) deliver(ctx context.Context, logger *log.Logger, req *SubmitContactRequest) error {
	if !s.repository.Configured() {
		logger.Error("Contact submission cannot be stored: store is not configured")
		return store.NotConfiguredError()
	}

	s.sendNotification(ctx, logger, req)

	if err := s.repository.CreateMessage(ctx, ToContactMessageModel(req)); err != nil {
		logger.Error("Failed to store contact message", "error", err)
		return err
	}

	logger.Info("Contact message stored")
	return nil
}

// sendNotification never fails the submission; the stored row is the record of truth.
func (s *contactService) sendNotification(ctx context.Context, logger *log.Logger, req *SubmitContactRequest) {
	if s.mailer == nil {
		return
	}

	if err := s.mailer.Send(ctx, ToNotificationEmail(s.inbox, req)); err != nil {
		logger.Warn("Contact notification email failed; storing message anyway", "error", err.Error())
		return
	}

	logger.Debug("Contact notification email sent")
}
