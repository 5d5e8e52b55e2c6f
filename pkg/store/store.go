// Package store wraps the external datastore that holds submission records.
// Every backend is append-only from the gateway's point of view.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverPostgREST = "postgrest"
)

// DefaultTimeout bounds a single write when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// MsgNotConfigured is returned to callers when no store credentials were provided.
const MsgNotConfigured = "Store configuration missing"

var ErrNotConfigured = errors.New("store is not configured")

var tracer = otel.Tracer("github.com/nataa-app/landing-gateway/pkg/store")

// Record is a row destined for a named table or collection.
type Record interface {
	TableName() string
}

type Store interface {
	// Create inserts record. Implementations fill server-generated fields when the backend returns them.
	Create(ctx context.Context, record Record) error
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

// Error is a rejection reported by the store itself, with the store's own message.
type Error struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store rejected write (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("store rejected write (status %d): %s", e.Status, e.Message)
}

// IsDuplicate reports whether err is a unique-constraint violation from any backend.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	var storeErr *Error
	if errors.As(err, &storeErr) && (storeErr.Code == "23505" || storeErr.Status == 409) {
		return true
	}

	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}

// Message returns the store-supplied message when err carries one that is safe to show callers.
func Message(err error) string {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Message
	}
	return ""
}

// PersistenceError maps a failed write to a DATABASE_ERROR, preferring the store's own message.
func PersistenceError(fallback string, err error) *apperrors.AppError {
	if msg := Message(err); msg != "" {
		return apperrors.NewDatabaseError(msg, err)
	}
	return apperrors.NewDatabaseError(fallback, err)
}

func NotConfiguredError() *apperrors.AppError {
	return apperrors.NewConfigurationError(MsgNotConfigured, ErrNotConfigured)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
