// Package config reads server settings from the environment.
//
// Every variable is optional:
//
//	CROPRESIZE_LOG_LEVEL          debug, info, warn or error (default info)
//	CROPRESIZE_RESAMPLER          imaging, bild or xdraw (default imaging)
//	CROPRESIZE_FILTER             nearest, box, linear, catmullrom, lanczos (default linear)
//	CROPRESIZE_SCALING            strict or cover (default strict)
//	CROPRESIZE_MAX_PIXELS         largest input, intermediate or output pixel count (default 50000000)
//	CROPRESIZE_MAX_REQUEST_BYTES  longest accepted request line (default 268435456)
//	CROPRESIZE_IMAGE_DIR          directory image_list reads when none is given (default /images)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/cropresize-mcp/internal/transform"
)

// Environment variable names.
const (
	EnvLogLevel        = "CROPRESIZE_LOG_LEVEL"
	EnvResampler       = "CROPRESIZE_RESAMPLER"
	EnvFilter          = "CROPRESIZE_FILTER"
	EnvScaling         = "CROPRESIZE_SCALING"
	EnvMaxPixels       = "CROPRESIZE_MAX_PIXELS"
	EnvMaxRequestBytes = "CROPRESIZE_MAX_REQUEST_BYTES"
	EnvImageDir        = "CROPRESIZE_IMAGE_DIR"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultLogLevel        = logrus.InfoLevel
	DefaultMaxPixels       = 50_000_000
	DefaultMaxRequestBytes = 256 << 20
	DefaultImageDir        = "/images"
)

// Config holds validated settings.
type Config struct {
	LogLevel        logrus.Level
	Resampler       transform.Resampler
	Scaling         transform.Scaling
	MaxPixels       int
	MaxRequestBytes int
	ImageDir        string
}

// Default returns the settings used when the environment is empty.
func Default() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		Resampler:       transform.DefaultResampler(),
		Scaling:         transform.Strict,
		MaxPixels:       DefaultMaxPixels,
		MaxRequestBytes: DefaultMaxRequestBytes,
		ImageDir:        DefaultImageDir,
	}
}

// FromEnv loads the configuration from the process environment.
func FromEnv() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a Config from lookup, which has the signature of os.LookupEnv.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Default()

	if v := get(EnvLogLevel); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	backend, filter := get(EnvResampler), get(EnvFilter)
	if backend != "" || filter != "" {
		if backend == "" {
			backend = transform.BackendImaging
		}
		if filter == "" {
			filter = transform.FilterLinear
		}
		r, err := transform.NewResampler(backend, filter)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", EnvResampler, EnvFilter, err)
		}
		cfg.Resampler = r
	}

	scaling, err := transform.ParseScaling(strings.ToLower(get(EnvScaling)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvScaling, err)
	}
	cfg.Scaling = scaling

	if cfg.MaxPixels, err = positiveInt(get(EnvMaxPixels), DefaultMaxPixels); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvMaxPixels, err)
	}
	if cfg.MaxRequestBytes, err = positiveInt(get(EnvMaxRequestBytes), DefaultMaxRequestBytes); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvMaxRequestBytes, err)
	}

	if v := get(EnvImageDir); v != "" {
		cfg.ImageDir = v
	}

	return cfg, nil
}

// TransformOptions returns the options the crop engine should run with.
func (c *Config) TransformOptions() transform.Options {
	return transform.Options{Scaling: c.Scaling, Resampler: c.Resampler}
}

func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
