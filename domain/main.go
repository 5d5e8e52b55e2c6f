package domain

import (
	"github.com/nataa-app/landing-gateway/config"
	"github.com/nataa-app/landing-gateway/domain/contact"
	"github.com/nataa-app/landing-gateway/domain/monitoring"
	"github.com/nataa-app/landing-gateway/domain/newsletter"
	"github.com/nataa-app/landing-gateway/domain/partner"
	"github.com/nataa-app/landing-gateway/domain/waitlist"
	"github.com/nataa-app/landing-gateway/pkg/constants"
)

// SetupCoreDomain mounts every controller. The four submission routes share
// one limiter, so a client's budget spans all forms.
func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService
	cfg := appConfig.Config
	logger := appConfig.Logger

	submissionLimiter := rs.RateLimiterFactory().CreateRateLimiter(
		constants.SubmissionRateLimitScope,
		cfg.SubmissionRateLimitRequests,
		cfg.RateLimitWindow,
	)

	contactFactory := contact.NewContactServiceFactory(appConfig.Store, appConfig.Mailer, cfg.ContactInbox, logger)
	notifier := contactFactory.CreateNotifier(appConfig.Dispatcher)

	monitoringDeps := monitoring.Dependencies{
		Store: appConfig.Store,
		Cache: appConfig.Cache,
	}
	if appConfig.Store != nil {
		monitoringDeps.StoreDriver = appConfig.Store.Driver()
	}
	if appConfig.Mailer != nil {
		monitoringDeps.Mailer = appConfig.Mailer
	}

	rs.MountController(monitoring.NewMonitoringControllerFactory(monitoringDeps, logger).CreateController())
	rs.MountController(contactFactory.CreateController(submissionLimiter))
	rs.MountController(newsletter.NewNewsletterServiceFactory(appConfig.Store, logger).CreateController(submissionLimiter))
	rs.MountController(waitlist.NewWaitlistServiceFactory(appConfig.Store, notifier, logger).CreateController(submissionLimiter))
	rs.MountController(partner.NewPartnerServiceFactory(appConfig.Store, notifier, logger).CreateController(submissionLimiter))
}
