package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"carpick/internal/registry"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "CARPICK"

	// DefaultLogFile receives logs in TUI mode when no log file is set.
	DefaultLogFile = "carpick.log"
)

// Config is the validated runtime configuration.
type Config struct {
	Debug       bool
	NoTUI       bool
	Mock        bool
	BaseURL     string
	Timeout     time.Duration
	Rate        float64
	Burst       int
	CacheTTL    time.Duration
	MetricsAddr string
	LogFile     string

	// Headless name queries.
	Manufacturer string
	Make         string
	Model        string
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("no-tui", false)
	v.SetDefault("mock", false)
	v.SetDefault("base-url", registry.DefaultBaseURL)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("rate", 5.0)
	v.SetDefault("burst", 5)
	v.SetDefault("cache-ttl", time.Duration(0))
	v.SetDefault("metrics-addr", "")
	v.SetDefault("log-file", "")
	v.SetDefault("manufacturer", "")
	v.SetDefault("make", "")
	v.SetDefault("model", "")
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Debug:        v.GetBool("debug"),
		NoTUI:        v.GetBool("no-tui"),
		Mock:         v.GetBool("mock"),
		BaseURL:      v.GetString("base-url"),
		Timeout:      v.GetDuration("timeout"),
		Rate:         v.GetFloat64("rate"),
		Burst:        v.GetInt("burst"),
		CacheTTL:     v.GetDuration("cache-ttl"),
		MetricsAddr:  v.GetString("metrics-addr"),
		LogFile:      v.GetString("log-file"),
		Manufacturer: v.GetString("manufacturer"),
		Make:         v.GetString("make"),
		Model:        v.GetString("model"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if !c.Mock {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("base-url %q is not an absolute URL", c.BaseURL))
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if c.Rate < 0 {
		errs = append(errs, errors.New("rate must not be negative"))
	}
	if c.Burst < 0 {
		errs = append(errs, errors.New("burst must not be negative"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache-ttl must not be negative"))
	}
	if c.Model != "" && c.Make == "" {
		errs = append(errs, errors.New("model requires make"))
	}
	if c.Make != "" && c.Manufacturer == "" {
		errs = append(errs, errors.New("make requires manufacturer"))
	}
	return errors.Join(errs...)
}

// LogOutputs returns where logs should go: the configured file, the default
// file when a TUI owns the terminal, or nothing (stderr).
func (c Config) LogOutputs() []string {
	switch {
	case c.LogFile != "":
		return []string{c.LogFile}
	case !c.NoTUI:
		return []string{DefaultLogFile}
	}
	return nil
}
