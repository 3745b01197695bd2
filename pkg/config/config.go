// Package config resolves the scheduler's ambient settings. Every value has a
// default that reproduces generate_all_timetables()'s original zero-argument
// behavior, so running with no environment variables set is unchanged.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config governs a single generation run.
type Config struct {
	Env string

	InputDir   string
	OutputFile string
	RNGSeed    int64

	Log     LogConfig
	Metrics MetricsConfig
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig controls the optional Prometheus metrics server.
type MetricsConfig struct {
	Addr string // empty disables the server entirely
}

// Load resolves configuration from an optional .env file and the
// environment. No variable is required; every field has a spec-matching
// default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("TIMETABLE_ENV")
	cfg.InputDir = v.GetString("TIMETABLE_INPUT_DIR")
	cfg.OutputFile = v.GetString("TIMETABLE_OUTPUT_FILE")
	cfg.RNGSeed = v.GetInt64("TIMETABLE_RNG_SEED")

	cfg.Log = LogConfig{
		Level:  v.GetString("TIMETABLE_LOG_LEVEL"),
		Format: v.GetString("TIMETABLE_LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{
		Addr: v.GetString("TIMETABLE_METRICS_ADDR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TIMETABLE_ENV", EnvDevelopment)
	v.SetDefault("TIMETABLE_INPUT_DIR", ".")
	v.SetDefault("TIMETABLE_OUTPUT_FILE", "timetable_all.xlsx")
	// 0 means "seed from the current time", matching the original's
	// unseeded (wall-clock-driven) randomness.
	v.SetDefault("TIMETABLE_RNG_SEED", 0)
	v.SetDefault("TIMETABLE_LOG_LEVEL", "info")
	v.SetDefault("TIMETABLE_LOG_FORMAT", "console")
	v.SetDefault("TIMETABLE_METRICS_ADDR", "")
}

// ResolvedSeed returns the configured seed, or the current time when unset.
func (c *Config) ResolvedSeed() int64 {
	if c.RNGSeed != 0 {
		return c.RNGSeed
	}
	return time.Now().UnixNano()
}
