package store

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// GormStore writes records through gorm (PostgreSQL in production, SQLite locally).
type GormStore struct {
	db      *gorm.DB
	driver  string
	timeout time.Duration
}

func NewGormStore(db *gorm.DB, driver string, timeout time.Duration) *GormStore {
	return &GormStore{db: db, driver: driver, timeout: timeout}
}

func (s *GormStore) Create(ctx context.Context, record Record) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "store.create", trace.WithAttributes(
		attribute.String("db.system", s.driver),
		attribute.String("db.table", record.TableName()),
	))
	defer span.End()

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return err
	}

	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

func (s *GormStore) Driver() string {
	return s.driver
}

// DB exposes the underlying handle for migrations.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}
