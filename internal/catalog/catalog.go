// Package catalog keeps the ancillary backend data the pages need: the
// model catalog, dashboard statistics, and service reachability. Fetches
// ride a retry policy inside a circuit breaker and land in the cache; when
// the service is away, pages get the last cached copy or a static fallback.
// The submission path never goes through here.
package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/backend"
	"github.com/deepmindcheck/web/internal/cache"
	"github.com/deepmindcheck/web/internal/metrics"
	"github.com/deepmindcheck/web/pkg/circuitbreaker"
	"github.com/deepmindcheck/web/pkg/logger"
	"github.com/deepmindcheck/web/pkg/retry"
)

const (
	catalogKey   = "catalog:models"
	dashboardKey = "catalog:dashboard"
)

// FallbackCatalog serves when the service has never answered.
var FallbackCatalog = backend.ModelCatalog{
	AvailableModels: []string{"baseline", "advanced", "ensemble"},
	DefaultModel:    "baseline",
}

// API is the slice of the backend client this service consumes.
type API interface {
	ModelInfo(ctx context.Context) (*backend.ModelCatalog, error)
	Dashboard(ctx context.Context) (*backend.DashboardData, error)
	Health(ctx context.Context) error
}

type Service struct {
	api          API
	store        cache.Store
	breaker      *circuitbreaker.CircuitBreaker
	retryCfg     retry.Config
	catalogTTL   time.Duration
	dashboardTTL time.Duration
}

func NewService(api API, store cache.Store, catalogTTL, dashboardTTL time.Duration) *Service {
	breaker := circuitbreaker.NewCircuitBreaker("backend-ancillary", circuitbreaker.Config{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          30 * time.Second,
		Logger:           logger.GetLogger(),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	retryCfg := retry.DefaultConfig()
	retryCfg.Logger = logger.GetLogger()
	// Only unreachable-service failures are worth another attempt; an
	// answered refusal will not change on retry.
	retryCfg.Retryable = backend.IsTransport

	return &Service{
		api:          api,
		store:        store,
		breaker:      breaker,
		retryCfg:     retryCfg,
		catalogTTL:   catalogTTL,
		dashboardTTL: dashboardTTL,
	}
}

// Models returns the catalog and never fails: cache first, then the
// service, then the static fallback.
func (s *Service) Models(ctx context.Context) backend.ModelCatalog {
	var cached backend.ModelCatalog
	if hit, err := s.store.GetJSON(ctx, catalogKey, &cached); err == nil && hit {
		metrics.CacheHits.WithLabelValues("catalog").Inc()
		return cached
	}
	metrics.CacheMisses.WithLabelValues("catalog").Inc()

	catalog, err := fetch(ctx, s, func() (*backend.ModelCatalog, error) {
		return s.api.ModelInfo(ctx)
	})
	if err != nil {
		logger.Warn("Model catalog unavailable, serving fallback", zap.Error(err))
		return FallbackCatalog
	}

	if err := s.store.SetJSON(ctx, catalogKey, catalog, s.catalogTTL); err != nil {
		logger.Warn("Failed to cache model catalog", zap.Error(err))
	}
	return *catalog
}

// Dashboard returns the analytics snapshot, zero-valued when the service
// is unreachable and nothing is cached.
func (s *Service) Dashboard(ctx context.Context) backend.DashboardData {
	var cached backend.DashboardData
	if hit, err := s.store.GetJSON(ctx, dashboardKey, &cached); err == nil && hit {
		metrics.CacheHits.WithLabelValues("dashboard").Inc()
		return cached
	}
	metrics.CacheMisses.WithLabelValues("dashboard").Inc()

	data, err := fetch(ctx, s, func() (*backend.DashboardData, error) {
		return s.api.Dashboard(ctx)
	})
	if err != nil {
		logger.Warn("Dashboard data unavailable", zap.Error(err))
		return backend.DashboardData{}
	}

	if err := s.store.SetJSON(ctx, dashboardKey, data, s.dashboardTTL); err != nil {
		logger.Warn("Failed to cache dashboard data", zap.Error(err))
	}
	return *data
}

// Healthy probes the service once through the breaker; an open breaker
// reports unhealthy without a call.
func (s *Service) Healthy(ctx context.Context) bool {
	err := s.breaker.Execute(ctx, func() error {
		return s.api.Health(ctx)
	})
	return err == nil
}

// BreakerState exposes the ancillary breaker for health reporting.
func (s *Service) BreakerState() circuitbreaker.State {
	return s.breaker.State()
}

// Degraded reports whether recent ancillary calls have tripped the
// breaker. Pages use it to flag the service banner without probing.
func (s *Service) Degraded() bool {
	return s.breaker.State() == circuitbreaker.StateOpen
}

func fetch[T any](ctx context.Context, s *Service, op func() (T, error)) (T, error) {
	var result T
	err := s.breaker.Execute(ctx, func() error {
		var err error
		result, err = retry.DoWithResult(ctx, s.retryCfg, op)
		return err
	})
	return result, err
}
