package foodpath

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER,default=file"`
	Dir      string `env:"STORE_DIR,default=data"`
	S3Bucket string `env:"STORE_S3_BUCKET"`
	S3Prefix string `env:"STORE_S3_PREFIX,default=foodpath"`
	DSN      string `env:"STORE_DSN"`
}

// CatalogConfig points at catalog documents kept in the store. Empty keys
// use the embedded catalogs.
type CatalogConfig struct {
	ProductsKey string `env:"CATALOG_PRODUCTS_KEY"`
	RecipesKey  string `env:"CATALOG_RECIPES_KEY"`
}

type BackendConfig struct {
	BaseURL      string        `env:"BACKEND_URL,default=http://localhost:9001/api"`
	JobPortalURL string        `env:"JOB_PORTAL_URL,default=http://localhost:9090"`
	ProbeTimeout time.Duration `env:"BACKEND_PROBE_TIMEOUT,default=3s,strict"`
}

type PricingConfig struct {
	USDToINR       float64 `env:"USD_TO_INR,default=83,strict"`
	DeliveryFeeINR float64 `env:"DELIVERY_FEE_INR,default=49,strict"`
}

type ServerConfig struct {
	Addr        string `env:"ADDR,default=:8080"`
	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:3000"`
	ActivityLog string `env:"ACTIVITY_LOG,default=stdout"`
	Telemetry   bool   `env:"TELEMETRY_ENABLED,default=false,strict"`
}

// Origins splits the comma separated CORS origin list.
func (c ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LoadEnv reads a .env file when present. A missing file is not an error.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Decode fills cfg from the environment. Structs made only of defaulted fields
// decode fine even when none of their variables are set.
func Decode(cfg any) error {
	err := envdecode.Decode(cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
