package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/cache"
	"github.com/trayshop/storefront/pkg/logger"
)

const (
	ritualsPath = "/api/rituals"
	traysPath   = "/api/trays"
)

// API is the subset of *apiclient.Client the service uses.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
	Post(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error
	Put(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
}

// Service is safe for concurrent use.
type Service struct {
	api       API
	log       *slog.Logger
	cacheSize int
	cacheTTL  time.Duration

	rituals *cache.LRU[apiclient.ID, Ritual]
	trays   *cache.LRU[apiclient.ID, Tray]
}

func NewService(api API, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	s := &Service{
		api:       api,
		log:       slog.Default(),
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("catalog"))
	s.rituals = cache.NewLRU(s.cacheSize, cache.WithTTL[apiclient.ID, Ritual](s.cacheTTL))
	s.trays = cache.NewLRU(s.cacheSize, cache.WithTTL[apiclient.ID, Tray](s.cacheTTL))
	return s, nil
}

// InvalidateAll drops every cached ritual and tray.
func (s *Service) InvalidateAll() {
	s.rituals.Purge()
	s.trays.Purge()
}

// itemPath joins escaped segments onto base.
func itemPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// cachedGet serves id from c or fetches and stores it.
func cachedGet[T any](ctx context.Context, s *Service, c *cache.LRU[apiclient.ID, T], base string, id apiclient.ID) (T, error) {
	var zero T
	if strings.TrimSpace(id.String()) == "" {
		return zero, ErrMissingID
	}
	if v, ok := c.Get(id); ok {
		s.log.DebugContext(ctx, "cache hit", logger.ProductID(id.String()), logger.Path(base))
		return v, nil
	}

	var v T
	if err := s.api.Get(ctx, itemPath(base, id.String()), &v); err != nil {
		return zero, err
	}
	c.Put(id, v)
	return v, nil
}

func list[T any](ctx context.Context, api API, path string, opts ...apiclient.RequestOption) ([]T, error) {
	var out []T
	if err := api.Get(ctx, path, &out, opts...); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
