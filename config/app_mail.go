package config

import (
	"strconv"

	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/circuitbreaker"
	"github.com/nataa-app/landing-gateway/pkg/constants"
	"github.com/nataa-app/landing-gateway/pkg/mailer"
	"github.com/nataa-app/landing-gateway/pkg/utils"
)

func NewMailConfig() mailer.Config {
	port, err := strconv.Atoi(utils.GetEnvTrimmed("SMTP_PORT"))
	if err != nil {
		port = 0
	}

	return mailer.Config{
		Host:     sanitizeEnv(utils.GetEnvTrimmed("SMTP_HOST")),
		Port:     port,
		Username: sanitizeEnv(utils.GetEnvTrimmed("SMTP_USER")),
		Password: sanitizeEnv(utils.GetEnvTrimmed("SMTP_PASS")),
		FromName: utils.GetEnvTrimmedOrDefault("SMTP_FROM_NAME", mailer.DefaultFromName),
		Timeout:  utils.GetEnvDurationOrDefault("MAIL_TIMEOUT", constants.DefaultMailTimeout),
	}
}

// NewMailerOrNil returns nil when any SMTP setting is missing; sending is then skipped.
func NewMailerOrNil(logger *log.Logger, cfg mailer.Config) mailer.Mailer {
	if !cfg.IsConfigured() {
		logger.Info("SMTP is not fully configured; notification emails are disabled")
		return nil
	}

	m, err := mailer.NewSMTPMailer(cfg, circuitbreaker.NewCircuitBreaker(nil))
	if err != nil {
		logger.Error("Failed to create SMTP mailer", "error", err)
		return nil
	}

	logger.Info("SMTP mailer configured", "host", cfg.Host, "port", cfg.Port, "implicit_tls", cfg.UsesImplicitTLS())
	return m
}
