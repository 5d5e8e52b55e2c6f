// Package notify runs best-effort side effects (notification emails) off the
// request path. Jobs are bounded, never retried and never surface to callers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxInFlight = 16

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDropped = "dropped"
)

var ErrClosed = errors.New("notification dispatcher is closed")

type Job func(ctx context.Context) error

type Config struct {
	Timeout     time.Duration
	MaxInFlight int
	// Registerer receives the notifications_total counter. Nil skips registration.
	Registerer prometheus.Registerer
}

type Dispatcher struct {
	logger  *log.Logger
	timeout time.Duration
	slots   chan struct{}
	outcome *prometheus.CounterVec

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(cfg Config, logger *log.Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	if logger == nil {
		logger = log.NewLoggerWithJSONOutput()
	}

	return &Dispatcher{
		logger:  logger,
		timeout: cfg.Timeout,
		slots:   make(chan struct{}, cfg.MaxInFlight),
		outcome: registerCounter(cfg.Registerer),
	}
}

func registerCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Best-effort notification jobs by outcome",
		},
		[]string{"job", "outcome"},
	)

	if reg == nil {
		return counter
	}

	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return counter
}

// Dispatch schedules job and returns immediately. It reports false when the
// job was dropped because the dispatcher is saturated or closed.
// The job's context is detached from ctx's cancellation but keeps its values
// (logger, correlation id), bounded by the dispatcher timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, job Job) bool {
	logger := log.GetLoggerInstanceFromContext(ctx, d.logger)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.record(name, OutcomeDropped)
		logger.Warn("notification dropped", "job", name, "error", ErrClosed.Error())
		return false
	}

	select {
	case d.slots <- struct{}{}:
	default:
		d.mu.Unlock()
		d.record(name, OutcomeDropped)
		logger.Warn("notification dropped, dispatcher saturated", "job", name)
		return false
	}

	d.wg.Add(1)
	d.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	go func() {
		defer d.wg.Done()
		defer func() { <-d.slots }()
		defer cancel()

		if err := d.run(jobCtx, job); err != nil {
			d.record(name, OutcomeFailure)
			logger.Error("notification failed", "job", name, "error", err.Error())
			return
		}
		d.record(name, OutcomeSuccess)
		logger.Debug("notification sent", "job", name)
	}()

	return true
}

func (d *Dispatcher) run(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notification job panicked: %v", r)
		}
	}()
	return job(ctx)
}

func (d *Dispatcher) record(name, outcome string) {
	d.outcome.WithLabelValues(name, outcome).Inc()
}

// Close stops accepting jobs and waits for in-flight ones until ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
