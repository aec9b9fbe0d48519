// Package config loads runtime settings from defaults, an optional YAML
// file and ORDERFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, for example
// ORDERFORM_ORDER_ENDPOINT for order.endpoint.
const EnvPrefix = "ORDERFORM"

type Config struct {
	Server  Server  `mapstructure:"server"`
	Order   Order   `mapstructure:"order"`
	Schema  Schema  `mapstructure:"schema"`
	Session Session `mapstructure:"session"`
	Theme   Theme   `mapstructure:"theme"`
	Landing Landing `mapstructure:"landing"`
	Catalog Catalog `mapstructure:"catalog"`
	Log     Log     `mapstructure:"log"`
}

type Server struct {
	Addr          string        `mapstructure:"addr"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

// Order points at the order API.
type Order struct {
	Endpoint string `mapstructure:"endpoint"`
	Path     string `mapstructure:"path"`
	// Timeout bounds one submission; zero waits as long as the caller's
	// context allows.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Schema optionally replaces the embedded OpenAPI order contract with a
// file path or http(s) URL.
type Schema struct {
	Source string `mapstructure:"source"`
}

type Session struct {
	Cookie string        `mapstructure:"cookie"`
	Secure bool          `mapstructure:"secure"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Theme struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

type Landing struct {
	Title   string `mapstructure:"title"`
	Heading string `mapstructure:"heading"`
	Intro   string `mapstructure:"intro"`
}

// Catalog optionally replaces the embedded size/topping labels.
type Catalog struct {
	File string `mapstructure:"file"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

var defaults = map[string]any{
	"server.addr":           ":8080",
	"server.shutdown_grace": 5 * time.Second,
	"order.endpoint":        "http://localhost:9009",
	"order.path":            "/api/order",
	"order.timeout":         time.Duration(0),
	"schema.source":         "",
	"session.cookie":        "orderform_session",
	"session.secure":        false,
	"session.ttl":           30 * time.Minute,
	"theme.name":            "pizza",
	"theme.variant":         "light",
	"landing.title":         "Pizza Orders",
	"landing.heading":       "Pizza, made to order",
	"landing.intro":         "",
	"catalog.file":          "",
	"log.level":             "info",
	"log.development":       false,
}

// New returns a viper instance with defaults and environment overrides
// applied. file may be empty.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file = strings.TrimSpace(file); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	return v, nil
}

// Load reads file (optional) and decodes the result into Config.
func Load(file string) (Config, error) {
	v, err := New(file)
	if err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// Decode unmarshals v into Config and validates it.
func Decode(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, errors.New("config: nil viper instance")
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if strings.TrimSpace(c.Order.Endpoint) == "" {
		errs = append(errs, errors.New("order.endpoint is required"))
	}
	if c.Order.Timeout < 0 {
		errs = append(errs, errors.New("order.timeout must not be negative"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Server.ShutdownGrace < 0 {
		errs = append(errs, errors.New("server.shutdown_grace must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
