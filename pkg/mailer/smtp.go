package mailer

import (
	"context"
	"fmt"

	"github.com/nataa-app/landing-gateway/pkg/circuitbreaker"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	gomail "github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/nataa-app/landing-gateway/pkg/mailer")

type deliverFunc func(ctx context.Context, msg *gomail.Msg) error

// SMTPMailer dials the relay per message. Dial and send go through a circuit
// breaker so a dead relay costs one timeout, not one per submission.
type SMTPMailer struct {
	cfg     Config
	breaker circuitbreaker.CircuitBreaker
	deliver deliverFunc
}

func NewSMTPMailer(cfg Config, breaker circuitbreaker.CircuitBreaker) (*SMTPMailer, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	if breaker == nil {
		breaker = circuitbreaker.NewCircuitBreaker(nil)
	}

	m := &SMTPMailer{cfg: cfg, breaker: breaker}
	m.deliver = m.dialAndSend
	return m, nil
}

func (m *SMTPMailer) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTimeout(m.cfg.Timeout),
	}

	if m.cfg.UsesImplicitTLS() {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	return opts
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	client, err := gomail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) buildMessage(message Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.FromFormat(m.cfg.FromName, m.cfg.Username); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	if message.ReplyTo != "" {
		if err := msg.ReplyTo(message.ReplyTo); err != nil {
			return nil, fmt.Errorf("set reply-to: %w", err)
		}
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.Text)
	if message.HTML != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, message.HTML)
	}

	return msg, nil
}

func (m *SMTPMailer) Send(ctx context.Context, message Message) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "mailer.send", trace.WithAttributes(
		attribute.String("smtp.host", m.cfg.Host),
		attribute.Int("smtp.port", m.cfg.Port),
	))
	defer span.End()

	msg, err := m.buildMessage(message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid message")
		return apperrors.NewNotificationError("invalid notification email", err)
	}

	if err := m.breaker.Call(func() error { return m.deliver(ctx, msg) }); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		return apperrors.NewNotificationError("unable to send notification email", err)
	}

	return nil
}

// BreakerState reports the relay circuit state for health checks.
func (m *SMTPMailer) BreakerState() circuitbreaker.CircuitState {
	return m.breaker.State()
}
