package monitoring

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	deps   Dependencies
	logger *log.Logger
}

func NewMonitoringControllerFactory(deps Dependencies, logger *log.Logger) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		deps:   deps,
		logger: logger,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.deps, f.logger)
}
