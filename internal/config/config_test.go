package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvpart/internal/config"
	"github.com/katalvlaran/lvpart/partition"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigSuite) write(name, body string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Equal(partition.DefaultEpsilon, cfg.Search.Epsilon)
	s.Equal("inf", cfg.Search.Sentinel)
	s.Equal("sample", cfg.Search.Variance)
	s.Equal(1, cfg.Search.Workers)
	s.Equal(":8080", cfg.Server.Address)
	s.Equal(30*time.Second, cfg.Server.RequestTimeout)
	s.Equal([]string{"*"}, cfg.Server.AllowedOrigins)
	s.Equal(4, cfg.Jobs.MaxConcurrent)
	s.Equal(time.Hour, cfg.Jobs.ResultTTL)
	s.Equal("info", cfg.Logging.Level)
}

func (s *ConfigSuite) TestFileAndEnv() {
	path := s.write("lvpart.yaml", `
search:
  epsilon: 0.001
  variance: population
  workers: 3
  sentinel: legacy
server:
  address: ":9000"
  request_timeout: 5s
jobs:
  max_concurrent: 2
logging:
  format: json
`)
	s.T().Setenv("LVPART_SEARCH_WORKERS", "6")
	s.T().Setenv("LVPART_LOGGING_LEVEL", "debug")

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(0.001, cfg.Search.Epsilon)
	s.Equal("population", cfg.Search.Variance)
	s.Equal(6, cfg.Search.Workers, "environment wins over the file")
	s.Equal(":9000", cfg.Server.Address)
	s.Equal(5*time.Second, cfg.Server.RequestTimeout)
	s.Equal(2, cfg.Jobs.MaxConcurrent)
	s.Equal("json", cfg.Logging.Format)
	s.Equal("debug", cfg.Logging.Level)

	sentinel, err := cfg.Search.SentinelValue()
	s.Require().NoError(err)
	s.Equal(partition.LegacySentinel, sentinel)
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := config.Load(filepath.Join(s.dir, "absent.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestInvalidValues() {
	s.T().Setenv("LVPART_SEARCH_VARIANCE", "median")
	s.T().Setenv("LVPART_JOBS_MAX_CONCURRENT", "0")

	_, err := config.Load("")
	s.Require().ErrorIs(err, config.ErrInvalidConfig)
	s.Contains(err.Error(), "search.variance")
	s.Contains(err.Error(), "jobs.max_concurrent")
}

func (s *ConfigSuite) TestSearchOptions() {
	sc := config.SearchConfig{
		Epsilon:         0.5,
		Sentinel:        "1e9",
		Variance:        "population",
		Workers:         2,
		MaxCombinations: 100,
		CheckEvery:      64,
	}
	opts, err := sc.Options()
	s.Require().NoError(err)

	resolved := partition.NewSearch([]float64{1, 2}, []string{"a", "b"}, 2, opts...).Options()
	s.Equal(0.5, resolved.Epsilon)
	s.Equal(1e9, resolved.Sentinel)
	s.Equal(partition.Population, resolved.Variance)
	s.Equal(2, resolved.Workers)
	s.Equal(uint64(100), resolved.MaxCombinations)
	s.Equal(uint64(64), resolved.CheckEvery)

	sc.Variance = "bogus"
	_, err = sc.Options()
	s.ErrorIs(err, partition.ErrInvalidOption)
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func TestSentinelValue(t *testing.T) {
	for in, want := range map[string]float64{
		"":       math.Inf(1),
		"inf":    math.Inf(1),
		"legacy": partition.LegacySentinel,
		"42.5":   42.5,
	} {
		got, err := config.SearchConfig{Sentinel: in}.SentinelValue()
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := config.SearchConfig{Sentinel: "big"}.SentinelValue()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
