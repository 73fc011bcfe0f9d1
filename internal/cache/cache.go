// Package cache holds short-lived copies of ancillary backend data such as
// the model catalog and dashboard snapshots. Analysis results are never
// cached here; they live only as the current result in a visitor's session.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/deepmindcheck/web/pkg/config"
)

type Store interface {
	GetJSON(ctx context.Context, key string, out interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Close() error
}

// New picks the store from config: redis when asked for, in-memory otherwise.
func New(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
