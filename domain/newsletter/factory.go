package newsletter

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

type NewsletterServiceFactory interface {
	CreateService() NewsletterService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultNewsletterServiceFactory struct {
	store  store.Store
	logger *log.Logger
}

func NewNewsletterServiceFactory(s store.Store, logger *log.Logger) NewsletterServiceFactory {
	return &DefaultNewsletterServiceFactory{store: s, logger: logger}
}

func (f *DefaultNewsletterServiceFactory) CreateService() NewsletterService {
	return NewNewsletterService(f.logger, NewNewsletterRepository(f.store))
}

func (f *DefaultNewsletterServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewNewsletterController(f.CreateService(), limiter)
}
