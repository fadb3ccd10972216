package catalog

import (
	"log/slog"
	"time"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Option configures a Service.
type Option func(*Service)

// WithCacheSize bounds each of the ritual and tray caches.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// WithCacheTTL sets how long a cached item is served. Zero keeps entries
// until evicted or invalidated.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}
