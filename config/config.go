// Package config reads server settings from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/ugparu/pooledhttp/utils/buffer"
)

// Config holds the environment-driven settings. Sizes accept units such as "64KiB".
type Config struct {
	Addr            string        `env:"POOLEDHTTP_ADDR" envDefault:"0.0.0.0:8080" json:"addr"`
	LogLevel        string        `env:"POOLEDHTTP_LOG_LEVEL" envDefault:"info" json:"log_level"`
	Pool            string        `env:"POOLEDHTTP_POOL" envDefault:"sized" json:"pool"`
	BufferSize      string        `env:"POOLEDHTTP_BUFFER_SIZE" envDefault:"64KiB" json:"buffer_size"`
	MaxPooledSize   string        `env:"POOLEDHTTP_MAX_POOLED_SIZE" envDefault:"1MiB" json:"max_pooled_size"`
	MaxBodySize     string        `env:"POOLEDHTTP_MAX_BODY_SIZE" envDefault:"4MiB" json:"max_body_size"`
	Pprof           bool          `env:"POOLEDHTTP_PPROF" json:"pprof"`
	ShutdownTimeout time.Duration `env:"POOLEDHTTP_SHUTDOWN_TIMEOUT" envDefault:"5s" json:"shutdown_timeout"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (cfg Config) String() string {
	data, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// Validate reports every invalid setting at once.
func (cfg Config) Validate() error {
	var result *multierror.Error

	if cfg.Addr == "" {
		result = multierror.Append(result, errors.New("addr: empty"))
	}
	if _, err := cfg.Level(); err != nil {
		result = multierror.Append(result, fmt.Errorf("log level: %w", err))
	}
	switch cfg.Pool {
	case buffer.KindSized, buffer.KindByteBuffer, buffer.KindFixed:
	default:
		result = multierror.Append(result, &buffer.UnknownKindError{Kind: cfg.Pool})
	}
	for _, size := range []struct {
		name, value string
	}{
		{"buffer size", cfg.BufferSize},
		{"max pooled size", cfg.MaxPooledSize},
		{"max body size", cfg.MaxBodySize},
	} {
		if _, err := parseSize(size.value); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", size.name, err))
		}
	}
	if cfg.ShutdownTimeout < 0 {
		result = multierror.Append(result, errors.New("shutdown timeout: negative"))
	}

	return result.ErrorOrNil()
}

func (cfg Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(cfg.LogLevel)
}

func (cfg Config) BufferBytes() int {
	n, _ := parseSize(cfg.BufferSize)
	return int(n)
}

func (cfg Config) MaxPooledBytes() int {
	n, _ := parseSize(cfg.MaxPooledSize)
	return int(n)
}

func (cfg Config) MaxBodyBytes() int64 {
	n, _ := parseSize(cfg.MaxBodySize)
	return n
}

// NewPool builds the configured buffer pool.
func (cfg Config) NewPool() (buffer.Pool, error) {
	return buffer.New(cfg.Pool, cfg.BufferBytes(), cfg.MaxPooledBytes())
}

func parseSize(s string) (int64, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}
	return n, nil
}
