package waitlist

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	store    store.Store
	notifier Notifier
	logger   *log.Logger
}

func NewWaitlistServiceFactory(s store.Store, notifier Notifier, logger *log.Logger) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		store:    s,
		notifier: notifier,
		logger:   logger,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	repository := NewWaitlistRepository(f.store)
	return NewWaitlistService(f.logger, repository, f.notifier)
}

func (f *DefaultWaitlistServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewWaitlistController(f.CreateService(), limiter)
}
