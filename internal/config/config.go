// Package config loads lvpart binary configuration with viper: built-in
// defaults, an optional YAML/JSON/TOML file, then LVPART_* environment
// overrides (e.g. LVPART_SEARCH_WORKERS=4, LVPART_SERVER_ADDRESS=:9090).
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/lvpart/partition"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "LVPART"

// ErrInvalidConfig wraps every validation failure of a loaded configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the resolved configuration of the CLI and the HTTP service.
type Config struct {
	Search  SearchConfig
	Server  ServerConfig
	Jobs    JobsConfig
	Logging LoggingConfig
}

// SearchConfig holds the default partition options.
type SearchConfig struct {
	Epsilon         float64
	Sentinel        string // "inf", "legacy" or a number
	Variance        string // "sample" or "population"
	Workers         int
	MaxCombinations uint64
	CheckEvery      uint64
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration // bound on synchronous /partitions searches
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// JobsConfig holds the asynchronous job manager settings.
type JobsConfig struct {
	MaxConcurrent   int
	JobTimeout      time.Duration
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// LoggingConfig selects the zerolog level and output format.
type LoggingConfig struct {
	Level  string
	Format string
}

// setDefaults registers every key, which also makes it visible to AutomaticEnv.
func setDefaults(v *viper.Viper) {
	// Search parameters
	v.SetDefault("search.epsilon", partition.DefaultEpsilon)
	v.SetDefault("search.sentinel", "inf")
	v.SetDefault("search.variance", "sample")
	v.SetDefault("search.workers", 1)
	v.SetDefault("search.max_combinations", uint64(50_000_000))
	v.SetDefault("search.check_every", uint64(partition.DefaultCheckEvery))

	// Server parameters
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_body_bytes", int64(8<<20))

	// Job parameters
	v.SetDefault("jobs.max_concurrent", 4)
	v.SetDefault("jobs.job_timeout", 10*time.Minute)
	v.SetDefault("jobs.result_ttl", time.Hour)
	v.SetDefault("jobs.cleanup_interval", 5*time.Minute)

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load resolves defaults, the optional file at path (ignored when empty) and
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{
		Search: SearchConfig{
			Epsilon:         v.GetFloat64("search.epsilon"),
			Sentinel:        v.GetString("search.sentinel"),
			Variance:        v.GetString("search.variance"),
			Workers:         v.GetInt("search.workers"),
			MaxCombinations: v.GetUint64("search.max_combinations"),
			CheckEvery:      v.GetUint64("search.check_every"),
		},
		Server: ServerConfig{
			Address:        v.GetString("server.address"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
			MaxBodyBytes:   v.GetInt64("server.max_body_bytes"),
		},
		Jobs: JobsConfig{
			MaxConcurrent:   v.GetInt("jobs.max_concurrent"),
			JobTimeout:      v.GetDuration("jobs.job_timeout"),
			ResultTTL:       v.GetDuration("jobs.result_ttl"),
			CleanupInterval: v.GetDuration("jobs.cleanup_interval"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig))
		}
	}

	check(c.Search.Epsilon >= 0 && !math.IsInf(c.Search.Epsilon, 0), "search.epsilon=%v", c.Search.Epsilon)
	check(c.Search.Workers >= 0, "search.workers=%d", c.Search.Workers)
	if _, err := partition.ParseVarianceKind(c.Search.Variance); err != nil {
		check(false, "search.variance=%q", c.Search.Variance)
	}
	if _, err := c.Search.SentinelValue(); err != nil {
		check(false, "search.sentinel=%q", c.Search.Sentinel)
	}
	check(c.Server.Address != "", "server.address is empty")
	check(c.Server.RequestTimeout > 0, "server.request_timeout=%s", c.Server.RequestTimeout)
	check(c.Server.MaxBodyBytes > 0, "server.max_body_bytes=%d", c.Server.MaxBodyBytes)
	check(c.Jobs.MaxConcurrent > 0, "jobs.max_concurrent=%d", c.Jobs.MaxConcurrent)
	check(c.Jobs.JobTimeout > 0, "jobs.job_timeout=%s", c.Jobs.JobTimeout)
	check(c.Jobs.ResultTTL > 0, "jobs.result_ttl=%s", c.Jobs.ResultTTL)
	check(c.Jobs.CleanupInterval > 0, "jobs.cleanup_interval=%s", c.Jobs.CleanupInterval)

	return errors.Join(errs...)
}

// SentinelValue maps the textual sentinel onto a float: "inf" (or empty) is
// +Inf, "legacy" is partition.LegacySentinel, anything else must parse as a number.
func (s SearchConfig) SentinelValue() (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s.Sentinel)) {
	case "", "inf", "+inf":
		return partition.DefaultSentinel, nil
	case "legacy":
		return partition.LegacySentinel, nil
	}
	f, err := strconv.ParseFloat(s.Sentinel, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("sentinel %q: %w", s.Sentinel, ErrInvalidConfig)
	}

	return f, nil
}

// Options converts the search section into partition options.
func (s SearchConfig) Options() ([]partition.Option, error) {
	kind, err := partition.ParseVarianceKind(s.Variance)
	if err != nil {
		return nil, err
	}
	sentinel, err := s.SentinelValue()
	if err != nil {
		return nil, err
	}

	return []partition.Option{
		partition.WithEpsilon(s.Epsilon),
		partition.WithSentinel(sentinel),
		partition.WithVarianceKind(kind),
		partition.WithWorkers(s.Workers),
		partition.WithMaxCombinations(s.MaxCombinations),
		partition.WithProgress(s.CheckEvery, nil),
	}, nil
}
