package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/circuitbreaker"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
)

const (
	monitoringRequestsPerMinute = 10
	healthCheckTimeout          = 3 * time.Second
)

// Pinger is satisfied by the store and the cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter is implemented by mailers that send through a circuit breaker.
type BreakerReporter interface {
	BreakerState() circuitbreaker.CircuitState
}

type HealthStatus struct {
	Store       int    `json:"store"` // 1 = reachable, 0 = unreachable or not configured
	StoreDriver string `json:"store_driver,omitempty"`
	Cache       int    `json:"cache"`  // 1 = reachable, 0 = unreachable or not configured
	Mailer      int    `json:"mailer"` // 1 = configured with a closed circuit
	MailCircuit string `json:"mail_circuit,omitempty"`
	Uptime      int    `json:"uptime"`
}

type Dependencies struct {
	Store       Pinger
	StoreDriver string
	Cache       Pinger
	// Mailer is nil when SMTP is not configured.
	Mailer any
}

type MonitoringController struct {
	deps      Dependencies
	logger    *log.Logger
	startTime time.Time
}

func NewMonitoringController(deps Dependencies, logger *log.Logger) *router.RESTController {
	ctrl := &MonitoringController{
		deps:      deps,
		logger:    logger,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			monitoringRateLimiter := createMonitoringRateLimiter(routerService)

			routerService.AddGetHandler(controller, monitoringRateLimiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.monitor(c)
			})

			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func createMonitoringRateLimiter(routerService *router.RouterService) ratelimit.RateLimiter {
	return routerService.RateLimiterFactory().CreateRateLimiter("monitoring", monitoringRequestsPerMinute, time.Minute)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Debug("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	return &router.ServiceResult{
		StatusCode: http.StatusOK,
		Data:       ctrl.performHealthChecks(ctx, logger),
		Message:    "landing-gateway health check completed",
	}
}

func (ctrl *MonitoringController) monitor(
	c *router.RequestContext,
) *router.ServiceResult {
	return &router.ServiceResult{
		StatusCode: http.StatusOK,
		Data:       "Submission gateway is operational.",
		Message:    "Monitoring successful",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		StoreDriver: ctrl.deps.StoreDriver,
		Uptime:      int(time.Since(ctrl.startTime).Seconds()),
	}

	status.Store = checkConnectivity(ctx, "store", ctrl.deps.Store, logger)
	status.Cache = checkConnectivity(ctx, "cache", ctrl.deps.Cache, logger)
	checkMailer(ctrl.deps.Mailer, &status, logger)

	return status
}

func checkConnectivity(ctx context.Context, name string, dep Pinger, logger *log.Logger) int {
	if dep == nil {
		logger.Debug("Dependency not configured, health check skipped", "dependency", name)
		return 0
	}

	if err := dep.Ping(ctx); err != nil {
		logger.Error("Health check failed", "dependency", name, "error", err)
		return 0
	}

	return 1
}

func checkMailer(m any, status *HealthStatus, logger *log.Logger) {
	if m == nil {
		logger.Debug("Mailer not configured, notification emails are skipped")
		return
	}

	status.Mailer = 1
	if reporter, ok := m.(BreakerReporter); ok {
		state := reporter.BreakerState()
		status.MailCircuit = state.String()
		if state == circuitbreaker.Open {
			status.Mailer = 0
			logger.Warn("Mail circuit is open")
		}
	}
}
