package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresConfig struct {
	URL          string `mapstructure:"url"`
	Host         string `mapstructure:"host"`
	Port         uint16 `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	PasswordFile string `mapstructure:"password_file"`
	DBName       string `mapstructure:"db_name"`
	SSLMode      string `mapstructure:"ssl_mode"`
}

// Enabled reports whether a records store is configured, either as a full
// URL or as a host.
func (c PostgresConfig) Enabled() bool {
	return c.URL != "" || c.Host != ""
}

func (c PostgresConfig) password() (string, error) {
	if c.Password != "" || c.PasswordFile == "" {
		return c.Password, nil
	}
	data, err := os.ReadFile(c.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (c PostgresConfig) ConnString() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if c.Host == "" {
		return "", fmt.Errorf("neither postgres.url nor postgres.host is set")
	}
	password, err := c.password()
	if err != nil {
		return "", err
	}
	u := &url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.User, password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String(), nil
}

func (c PostgresConfig) PgxpoolConfig() (*pgxpool.Config, error) {
	connString, err := c.ConnString()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(connString)
}
