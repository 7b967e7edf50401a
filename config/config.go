// SPDX-License-Identifier: EPL-2.0

// Package config loads engine settings from a YAML file and PODMIX_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ik5/podmix/graph"
	"github.com/ik5/podmix/hydrate"
	"github.com/ik5/podmix/internal/logging"
	"github.com/ik5/podmix/playback"
	"github.com/ik5/podmix/render"
)

// EnvPrefix prefixes environment overrides: engine.sample_rate is read from
// PODMIX_ENGINE_SAMPLE_RATE.
const EnvPrefix = "PODMIX"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Engine    Engine              `mapstructure:"engine"`
	Ducking   graph.DuckingParams `mapstructure:"ducking"`
	Playback  Playback            `mapstructure:"playback"`
	Hydration Hydration           `mapstructure:"hydration"`
	Logging   logging.Config      `mapstructure:"logging"`
}

type Engine struct {
	SampleRate int `mapstructure:"sample_rate" validate:"gte=8000,lte=192000"`
	// Channels of the live output. Offline renders are always stereo.
	Channels  int `mapstructure:"channels" validate:"gte=1,lte=8"`
	BlockSize int `mapstructure:"block_size" validate:"gte=16,lte=8192"`
}

type Playback struct {
	Tick time.Duration `mapstructure:"tick" validate:"gt=0"`
	// MinTimeline is the shortest timeline shown, in seconds.
	MinTimeline float64 `mapstructure:"min_timeline" validate:"gte=0"`
}

type Hydration struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	// CacheTTL of decoded buffers; 0 disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// Root resolves relative file paths.
	Root string `mapstructure:"root"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Engine: Engine{
			SampleRate: render.DefaultSampleRate,
			Channels:   render.OutputChannels,
			BlockSize:  render.DefaultBlockSize,
		},
		Ducking: graph.DefaultDucking(),
		Playback: Playback{
			Tick:        playback.DefaultTick,
			MinTimeline: playback.DefaultMinTimeline,
		},
		Hydration: Hydration{
			Concurrency: hydrate.DefaultConcurrency,
			CacheTTL:    hydrate.DefaultCacheTTL,
		},
		Logging: logging.DefaultConfig(),
	}
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("engine.sample_rate", c.Engine.SampleRate)
	v.SetDefault("engine.channels", c.Engine.Channels)
	v.SetDefault("engine.block_size", c.Engine.BlockSize)

	v.SetDefault("ducking.amount", c.Ducking.Amount)
	v.SetDefault("ducking.attack", c.Ducking.Attack)
	v.SetDefault("ducking.release", c.Ducking.Release)

	v.SetDefault("playback.tick", c.Playback.Tick)
	v.SetDefault("playback.min_timeline", c.Playback.MinTimeline)

	v.SetDefault("hydration.concurrency", c.Hydration.Concurrency)
	v.SetDefault("hydration.cache_ttl", c.Hydration.CacheTTL)
	v.SetDefault("hydration.root", c.Hydration.Root)

	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.file", c.Logging.File)
	v.SetDefault("logging.max_size_mb", c.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", c.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", c.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", c.Logging.Compress)
}

// Load reads path, when not empty, over the defaults and applies
// environment overrides. The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field range.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// RenderOptions is the offline renderer configuration. Offline output is stereo
// whatever the live channel count.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		SampleRate: c.Engine.SampleRate,
		Channels:   render.OutputChannels,
		BlockSize:  c.Engine.BlockSize,
		Ducking:    c.Ducking,
	}
}

func (c *Config) PlaybackOptions() playback.Options {
	return playback.Options{
		Tick:        c.Playback.Tick,
		MinTimeline: c.Playback.MinTimeline,
		BlockSize:   c.Engine.BlockSize,
		Ducking:     c.Ducking,
	}
}

func (c *Config) HydrateOptions() hydrate.Options {
	ttl := c.Hydration.CacheTTL
	if ttl == 0 {
		ttl = -1
	}
	return hydrate.Options{
		SampleRate:  c.Engine.SampleRate,
		Concurrency: c.Hydration.Concurrency,
		CacheTTL:    ttl,
	}
}
