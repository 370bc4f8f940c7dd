// Package config loads server settings from flags, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	// NotFound404 answers an unknown article with 404 and an error body.
	NotFound404 = "404"
	// NotFoundEmpty answers an unknown article with 200 and {}.
	NotFoundEmpty = "empty"
)

var (
	ErrMissingAddr       = errors.New("server.addr is required")
	ErrInvalidDriver     = errors.New("store.driver must be 'mongo' or 'postgres'")
	ErrMissingURI        = errors.New("store.uri is required")
	ErrMissingDatabase   = errors.New("store.database is required for the mongo driver")
	ErrMissingCollection = errors.New("store.collection is required")
	ErrInvalidNotFound   = errors.New("api.not_found must be '404' or 'empty'")
	ErrInvalidLogLevel   = errors.New("log.level must be one of: debug, info, warn, error")
	ErrNegativeTimeout   = errors.New("timeouts must be non-negative")
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// RequestTimeout of 0 lets a request wait on the store indefinitely.
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver         string        `mapstructure:"driver"`
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxPool        int           `mapstructure:"max_pool"`
}

type APIConfig struct {
	NotFound     string `mapstructure:"not_found"`
	ExposeErrors bool   `mapstructure:"expose_errors"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default matches the legacy deployment: local mongo, webnews.idnes, port 3001.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            "0.0.0.0:3001",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver:         DriverMongo,
			URI:            "mongodb://localhost:27017",
			Database:       "webnews",
			Collection:     "idnes",
			ConnectTimeout: 5 * time.Second,
			MaxPool:        10,
		},
		API: APIConfig{
			NotFound: NotFound404,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load parses args, reads the file named by --config (if any) and applies
// WEBNEWS_* environment overrides on top of Default().
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("webnews", pflag.ContinueOnError)
	cfile := fs.String("config", "", "path to a YAML config file")
	fs.String("addr", "", "listen address, overrides server.addr")
	fs.String("store-driver", "", "store backend: mongo or postgres")
	fs.String("store-uri", "", "store connection string")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("WEBNEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// plain variables used by the old deployments
	if port := os.Getenv("PORT"); port != "" {
		host := os.Getenv("HOST")
		if host == "" {
			host = "0.0.0.0"
		}
		v.SetDefault("server.addr", host+":"+port)
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		v.SetDefault("store.uri", dsn)
	}

	if *cfile != "" {
		v.SetConfigFile(*cfile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", *cfile, err)
		}
	}

	_ = v.BindPFlag("server.addr", fs.Lookup("addr"))
	_ = v.BindPFlag("store.driver", fs.Lookup("store-driver"))
	_ = v.BindPFlag("store.uri", fs.Lookup("store-uri"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.uri", d.Store.URI)
	v.SetDefault("store.database", d.Store.Database)
	v.SetDefault("store.collection", d.Store.Collection)
	v.SetDefault("store.connect_timeout", d.Store.ConnectTimeout)
	v.SetDefault("store.max_pool", d.Store.MaxPool)
	v.SetDefault("api.not_found", d.API.NotFound)
	v.SetDefault("api.expose_errors", d.API.ExposeErrors)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrMissingAddr
	}
	if c.Server.RequestTimeout < 0 || c.Server.ShutdownTimeout < 0 || c.Store.ConnectTimeout < 0 {
		return ErrNegativeTimeout
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.Database == "" {
			return ErrMissingDatabase
		}
	case DriverPostgres:
	default:
		return ErrInvalidDriver
	}
	if c.Store.URI == "" {
		return ErrMissingURI
	}
	if c.Store.Collection == "" {
		return ErrMissingCollection
	}
	if c.API.NotFound != NotFound404 && c.API.NotFound != NotFoundEmpty {
		return ErrInvalidNotFound
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}
