package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
)

const (
	EnvPrefix = "comet"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// DevAdminPassword is the documented development fallback. It is never
// accepted when the app runs in production.
const DevAdminPassword = "comet2024-dev"

type Config struct {
	App       AppConfig
	RateLimit RateLimitConfig
	Sendgrid  SendgridConfig
	Admin     AdminConfig
	Catalog   CatalogConfig
	Upload    UploadConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Admin.validate(cfg.App); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COMET_APP_ENV" default:"development"`
	Port         string `envconfig:"COMET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"COMET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COMET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RateLimitConfig carries the fixed-window policies. Defaults reproduce the
// production limits: 5 auth attempts per 15 minutes, 3 contact and 3 quote
// submissions per hour, all keyed by client IP.
type RateLimitConfig struct {
	AuthWindow    time.Duration `envconfig:"COMET_RATE_LIMIT_AUTH_WINDOW" default:"15m"`
	AuthLimit     int           `envconfig:"COMET_RATE_LIMIT_AUTH_LIMIT" default:"5"`
	ContactWindow time.Duration `envconfig:"COMET_RATE_LIMIT_CONTACT_WINDOW" default:"1h"`
	ContactLimit  int           `envconfig:"COMET_RATE_LIMIT_CONTACT_LIMIT" default:"3"`
	QuoteWindow   time.Duration `envconfig:"COMET_RATE_LIMIT_QUOTE_WINDOW" default:"1h"`
	QuoteLimit    int           `envconfig:"COMET_RATE_LIMIT_QUOTE_LIMIT" default:"3"`
	GCInterval    time.Duration `envconfig:"COMET_RATE_LIMIT_GC_INTERVAL" default:"5m"`
}

type SendgridConfig struct {
	APIKey       string        `envconfig:"COMET_SENDGRID_API_KEY"`
	FromEmail    string        `envconfig:"COMET_EMAIL_FROM" default:"Comet Control <noreply@cometcontrol.com>"`
	ContactEmail string        `envconfig:"COMET_CONTACT_EMAIL"`
	SendTimeout  time.Duration `envconfig:"COMET_SENDGRID_SEND_TIMEOUT" default:"10s"`
}

// Configured reports whether a delivery credential is present. Without one the
// dispatcher short-circuits into dev mode instead of failing.
func (s SendgridConfig) Configured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

type AdminConfig struct {
	Password      string        `envconfig:"COMET_ADMIN_PASSWORD"`
	SessionSecret string        `envconfig:"COMET_ADMIN_SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"COMET_ADMIN_SESSION_TTL" default:"24h"`
}

func (a *AdminConfig) validate(app AppConfig) error {
	if app.IsProd() {
		if a.Password == "" {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "COMET_ADMIN_PASSWORD is required in production")
		}
		if a.SessionSecret == "" {
			return pkgerrors.New(pkgerrors.CodeConfiguration, "COMET_ADMIN_SESSION_SECRET is required in production")
		}
	}
	if a.Password == "" {
		a.Password = DevAdminPassword
	}
	if a.SessionSecret == "" {
		a.SessionSecret = "comet-dev-session-secret"
	}
	return nil
}

type CatalogConfig struct {
	DataPath string `envconfig:"COMET_CATALOG_DATA_PATH" default:"data/products.json"`
}

type UploadConfig struct {
	Dir         string `envconfig:"COMET_UPLOAD_DIR" default:"data/uploads"`
	BaseURL     string `envconfig:"COMET_UPLOAD_BASE_URL" default:"/files"`
	MaxUploadMB int    `envconfig:"COMET_MAX_UPLOAD_MB" default:"25"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"COMET_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
