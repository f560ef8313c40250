package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "SHIELDSWEEPER"

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	Tick          time.Duration `mapstructure:"tick"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	MaxSessions   int           `mapstructure:"max_sessions"`
	Secret        string        `mapstructure:"secret"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
}

type Config struct {
	Mode     string         `mapstructure:"mode"`
	Addr     string         `mapstructure:"addr"`
	Layout   string         `mapstructure:"layout"`
	Audio    bool           `mapstructure:"audio"`
	Origins  []string       `mapstructure:"cors_origins"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Cookies  CookiesConfig  `mapstructure:"cookies"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

var (
	ErrBadMode         = errors.New(`mode must be "development" or "production"`)
	ErrMissingSecret   = errors.New("session.secret must be set in production")
	ErrBadSessionTimes = errors.New("session ttl, tick and sweep_interval must be positive")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("layout", "")
	v.SetDefault("audio", true)
	v.SetDefault("cors_origins", []string{})

	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.tick", time.Second)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("session.max_sessions", 1024)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.token_lifetime", 24*time.Hour)

	v.SetDefault("cookies.domain", "")
	v.SetDefault("cookies.secure", false)
	v.SetDefault("cookies.same_site", "lax")

	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.host", "")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.password_file", "")
	v.SetDefault("postgres.db_name", "")
	v.SetDefault("postgres.ssl_mode", "disable")
}

// Load reads the config file at path (TOML, YAML or JSON; optional) and
// applies SHIELDSWEEPER_* environment overrides, e.g. SHIELDSWEEPER_LOG_LEVEL
// for log.level.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("unable to load %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case "development", "production":
	default:
		return ErrBadMode
	}
	if c.Production() && c.Session.Secret == "" {
		return ErrMissingSecret
	}
	if c.Session.TTL <= 0 || c.Session.Tick <= 0 || c.Session.SweepInterval <= 0 {
		return ErrBadSessionTimes
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
		if c.Development() {
			c.Log.Level = "debug"
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Fields is the config as log fields, secrets left out.
func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"layout":                 c.Layout,
		"audio":                  c.Audio,
		"log_level":              c.Log.Level,
		"log_file":               c.Log.File,
		"session_ttl":            c.Session.TTL.String(),
		"session_tick":           c.Session.Tick.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
		"session_max_sessions":   c.Session.MaxSessions,
		"session_token_lifetime": c.Session.TokenLifetime.String(),
		"cors_origins":           c.Origins,
		"cookies_domain":         c.Cookies.Domain,
		"cookies_secure":         c.Cookies.Secure,
		"cookies_same_site":      c.Cookies.SameSite,
		"pg_enabled":             c.Postgres.Enabled(),
		"pg_host":                c.Postgres.Host,
		"pg_port":                c.Postgres.Port,
		"pg_db_name":             c.Postgres.DBName,
	}
}
