package storefront

import (
	"time"

	"github.com/trayshop/storefront/pkg/config"
	"github.com/trayshop/storefront/pkg/mongo"
	"github.com/trayshop/storefront/pkg/pg"
	"github.com/trayshop/storefront/pkg/redis"
)

// StorageBackend selects where the token and cart are persisted.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageFile     StorageBackend = "file"
	StorageRedis    StorageBackend = "redis"
	StoragePostgres StorageBackend = "postgres"
	StorageMongo    StorageBackend = "mongo"
)

// Config is read from the environment once per process.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL,required,notEmpty"`
	Environment    string        `env:"STOREFRONT_ENV" envDefault:"development"`
	ServiceName    string        `env:"STOREFRONT_SERVICE" envDefault:"storefront"`
	RequestTimeout time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT" envDefault:"15s"`
	UserAgent      string        `env:"STOREFRONT_USER_AGENT"`

	Storage    StorageBackend `env:"STOREFRONT_STORAGE" envDefault:"file"`
	StorageDir string         `env:"STOREFRONT_STORAGE_DIR" envDefault:".storefront"`

	CatalogCacheSize int           `env:"STOREFRONT_CATALOG_CACHE_SIZE" envDefault:"256"`
	CatalogCacheTTL  time.Duration `env:"STOREFRONT_CATALOG_CACHE_TTL" envDefault:"5m"`

	// RolesFile is an optional YAML role/permission map replacing the defaults.
	RolesFile string `env:"STOREFRONT_ROLES_FILE"`

	Redis    redis.Config
	Postgres pg.Config
	Mongo    mongo.Config
}

// LoadConfig parses Config from the environment (and ./.env when present).
// Later calls return the first result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
