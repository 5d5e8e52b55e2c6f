// Package mailer sends operational notification emails over SMTP.
package mailer

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultFromName = "Nataa Contact"
	implicitTLSPort = 465
)

var ErrNotConfigured = errors.New("mail transport is not configured")

type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// FromName is the display name on the sender address; the address itself is Username.
	FromName string
	Timeout  time.Duration
}

// IsConfigured is true only when host, port, user and password are all present.
func (c Config) IsConfigured() bool {
	return c.Host != "" && c.Port > 0 && c.Username != "" && c.Password != ""
}

// UsesImplicitTLS mirrors the common relay convention: port 465 speaks TLS from the first byte.
func (c Config) UsesImplicitTLS() bool {
	return c.Port == implicitTLSPort
}
