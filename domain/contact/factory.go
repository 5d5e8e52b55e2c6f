package contact

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/mailer"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
	"github.com/nataa-app/landing-gateway/pkg/store"
)

type ContactServiceFactory interface {
	CreateService() ContactService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
	CreateNotifier(dispatcher Dispatcher) *RelayNotifier
}

type DefaultContactServiceFactory struct {
	store  store.Store
	mailer mailer.Mailer
	inbox  string
	logger *log.Logger
}

func NewContactServiceFactory(s store.Store, m mailer.Mailer, inbox string, logger *log.Logger) ContactServiceFactory {
	return &DefaultContactServiceFactory{
		store:  s,
		mailer: m,
		inbox:  inbox,
		logger: logger,
	}
}

func (f *DefaultContactServiceFactory) CreateService() ContactService {
	return NewContactService(f.logger, NewContactRepository(f.store), f.mailer, f.inbox)
}

func (f *DefaultContactServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewContactController(f.CreateService(), limiter)
}

func (f *DefaultContactServiceFactory) CreateNotifier(dispatcher Dispatcher) *RelayNotifier {
	return NewRelayNotifier(dispatcher, f.CreateService())
}
