package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/logger"
	"github.com/Aleph-Alpha/roovector-go/v1/metrics"
	"github.com/Aleph-Alpha/roovector-go/v1/tracer"
)

const (
	DefaultMaxOpenConns    = 50
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = time.Minute
	DefaultSSLMode         = "disable"
)

// Config is the root of the configuration file.
type Config struct {
	Logger       logger.Config  `yaml:"logger"`
	Metrics      metrics.Config `yaml:"metrics"`
	Tracer       tracer.Config  `yaml:"tracer"`
	Postgres     Postgres       `yaml:"postgres"`
	Registration Registration   `yaml:"registration"`
}

// Postgres holds the database connection settings.
type Postgres struct {
	Connection Connection `yaml:"connection"`
	Pool       Pool       `yaml:"pool"`
}

// Connection identifies the database.
type Connection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DbName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	// BinaryParameters enables lib/pq binary_parameters, which makes
	// pqvector send vector arguments in binary format. pgx-based components
	// ignore it.
	BinaryParameters bool `yaml:"binary_parameters"`
}

// Pool bounds the connection pool. Zero values are replaced by the defaults.
type Pool struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Registration controls where the vector types are looked up.
type Registration struct {
	// Schema holding roovector and roohalfvec. Default: public.
	Schema string `yaml:"schema"`
}

// DSN renders the connection as a key/value connection string understood by
// both pgx and lib/pq. Empty fields are left out.
func (c Connection) DSN() string {
	var b strings.Builder
	add := func(key, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", key, quote(value))
	}

	add("host", c.Host)
	add("port", c.Port)
	add("user", c.User)
	add("password", c.Password)
	add("dbname", c.DbName)
	add("sslmode", c.SSLMode)
	if c.BinaryParameters {
		add("binary_parameters", "yes")
	}
	return b.String()
}

func quote(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(value) + "'"
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	c.Postgres.Pool = c.Postgres.Pool.WithDefaults()
	if c.Postgres.Connection.SSLMode == "" {
		c.Postgres.Connection.SSLMode = DefaultSSLMode
	}
	if c.Registration.Schema == "" {
		c.Registration.Schema = bridge.DefaultSchema
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = metrics.DefaultMetricsAddress
	}
	if c.Logger.Level == "" {
		c.Logger.Level = logger.Info
	}
	return c
}

// WithDefaults fills unset pool limits.
func (p Pool) WithDefaults() Pool {
	if p.MaxOpenConns == 0 {
		p.MaxOpenConns = DefaultMaxOpenConns
	}
	if p.MaxIdleConns == 0 {
		p.MaxIdleConns = DefaultMaxIdleConns
	}
	if p.ConnMaxLifetime == 0 {
		p.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return p
}
