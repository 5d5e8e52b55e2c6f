package partner

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

type PartnerServiceFactory interface {
	CreateService() PartnerService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultPartnerServiceFactory struct {
	store    store.Store
	notifier Notifier
	logger   *log.Logger
}

func NewPartnerServiceFactory(s store.Store, notifier Notifier, logger *log.Logger) PartnerServiceFactory {
	return &DefaultPartnerServiceFactory{store: s, notifier: notifier, logger: logger}
}

func (f *DefaultPartnerServiceFactory) CreateService() PartnerService {
	return NewPartnerService(f.logger, NewPartnerRepository(f.store), f.notifier)
}

func (f *DefaultPartnerServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewPartnerController(f.CreateService(), limiter)
}
