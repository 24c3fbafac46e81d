package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server captures process-level configuration. Every field is read from a
// VISA_-prefixed environment variable.
type Server struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	Environment    string        `env:"ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:","`

	Database Database
	Redis    Redis
	Session  Session
	Login    Login
	Seed     Seed
}

// Database is optional: an empty URL selects the in-memory stores.
type Database struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

type Redis struct {
	URL string `env:"REDIS_URL"`
}

type Session struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RememberMeTTL   time.Duration `env:"REMEMBER_ME_TTL" envDefault:"720h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"true"`
	CookieDomain    string        `env:"COOKIE_DOMAIN"`
	CleanupSchedule string        `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"@every 15m"`
}

type Login struct {
	MaxFailedAttempts int           `env:"LOGIN_MAX_FAILED_ATTEMPTS" envDefault:"5"`
	Lockout           time.Duration `env:"LOGIN_LOCKOUT" envDefault:"15m"`
	IPRate            float64       `env:"LOGIN_IP_RATE" envDefault:"0.5"`
	IPBurst           int           `env:"LOGIN_IP_BURST" envDefault:"5"`
}

// Seed bootstraps the first super admin when both values are set. Demo
// loads sample admins and checklist items into in-memory stores.
type Seed struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	Demo          bool   `env:"SEED_DEMO" envDefault:"false"`
}

const envPrefix = "VISA_"

// Load reads an optional .env file and parses the environment.
func Load() (Server, error) {
	_ = godotenv.Load()
	return Parse(env.Options{Prefix: envPrefix})
}

// Parse parses the environment with the given options and validates the result.
// Tests pass Options.Environment to avoid touching the process env.
func Parse(opts env.Options) (Server, error) {
	if opts.Prefix == "" {
		opts.Prefix = envPrefix
	}
	var cfg Server
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Server{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) Validate() error {
	var errs []error
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("VISA_SESSION_TTL must be positive"))
	}
	if c.Session.RememberMeTTL < c.Session.TTL {
		errs = append(errs, errors.New("VISA_REMEMBER_ME_TTL must be at least VISA_SESSION_TTL"))
	}
	if c.Login.MaxFailedAttempts <= 0 {
		errs = append(errs, errors.New("VISA_LOGIN_MAX_FAILED_ATTEMPTS must be positive"))
	}
	if c.Login.Lockout <= 0 {
		errs = append(errs, errors.New("VISA_LOGIN_LOCKOUT must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("VISA_REQUEST_TIMEOUT must be positive"))
	}
	if (c.Seed.AdminEmail == "") != (c.Seed.AdminPassword == "") {
		errs = append(errs, errors.New("VISA_SEED_ADMIN_EMAIL and VISA_SEED_ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

func (c Server) IsDevelopment() bool { return c.Environment == "development" }

func (c Server) UsePostgres() bool { return c.Database.URL != "" }

func (c Server) UseRedis() bool { return c.Redis.URL != "" }
