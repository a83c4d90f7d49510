package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "ERPX"

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Chart    ChartConfig
	Session  SessionConfig
	Fixtures FixturesConfig
	Activity ActivityConfig
}

type AppConfig struct {
	ServiceName  string `envconfig:"ERPX_SERVICE_NAME" default:"erpx" validate:"required"`
	LogLevel     string `envconfig:"ERPX_LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	LogFormat    string `envconfig:"ERPX_LOG_FORMAT" default:"json" validate:"oneof=json console"`
	LogWarnStack bool   `envconfig:"ERPX_LOG_WARN_STACK" default:"false"`
}

type HTTPConfig struct {
	Addr         string `envconfig:"ERPX_HTTP_ADDR" default:":8080" validate:"required"`
	APIAddr      string `envconfig:"ERPX_API_ADDR" default:":8081"`
	BasePath     string `envconfig:"ERPX_BASE_PATH" default:"/erp" validate:"required,startswith=/"`
	// TemplatesDir replaces the embedded page templates; it must hold erp.html and partials/.
	TemplatesDir string `envconfig:"ERPX_TEMPLATES_DIR"`
}

type ChartConfig struct {
	Theme    string        `envconfig:"ERPX_CHART_THEME" default:"westeros"`
	CacheTTL time.Duration `envconfig:"ERPX_CHART_CACHE_TTL" default:"5m" validate:"gte=0"`
}

type SessionConfig struct {
	// TTL is the idle expiry; zero keeps sessions for the process lifetime.
	TTL time.Duration `envconfig:"ERPX_SESSION_TTL" default:"30m" validate:"gte=0"`
}

type FixturesConfig struct {
	Path string `envconfig:"ERPX_FIXTURES_PATH"`
	// Seed feeds the sample generator; zero seeds from the clock.
	Seed uint64 `envconfig:"ERPX_SEED" default:"0"`
}

type ActivityConfig struct {
	Enabled bool   `envconfig:"ERPX_ACTIVITY_ENABLED" default:"true"`
	Channel string `envconfig:"ERPX_ACTIVITY_CHANNEL" default:"erpx"`
}

// Load reads an optional .env file, then the ERPX_* environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses and validates the process environment.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
