// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "podmix.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("Load(\"\") = %+v, want %+v", c, Default())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
engine:
  sample_rate: 48000
ducking:
  amount: 0.3
playback:
  tick: 40ms
hydration:
  cache_ttl: 5m
logging:
  level: debug
`)
	t.Setenv("PODMIX_HYDRATION_CONCURRENCY", "9")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Engine.SampleRate != 48000 || c.Engine.Channels != 2 {
		t.Errorf("engine = %+v", c.Engine)
	}
	if c.Ducking.Amount != 0.3 || c.Ducking.Attack != 0.05 {
		t.Errorf("ducking = %+v", c.Ducking)
	}
	if c.Playback.Tick != 40*time.Millisecond {
		t.Errorf("tick = %v, want 40ms", c.Playback.Tick)
	}
	if c.Hydration.CacheTTL != 5*time.Minute || c.Hydration.Concurrency != 9 {
		t.Errorf("hydration = %+v", c.Hydration)
	}
	if c.Logging.Level != "debug" {
		t.Errorf("logging level = %q", c.Logging.Level)
	}

	if r := c.RenderOptions(); r.SampleRate != 48000 || r.Channels != 2 {
		t.Errorf("RenderOptions() = %+v", r)
	}
	if h := c.HydrateOptions(); h.SampleRate != 48000 || h.CacheTTL != 5*time.Minute {
		t.Errorf("HydrateOptions() = %+v", h)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"sample rate", "engine:\n  sample_rate: 1000\n"},
		{"ducking amount", "ducking:\n  amount: 2\n"},
		{"log level", "logging:\n  level: chatty\n"},
		{"zero tick", "playback:\n  tick: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestHydrateOptions_NoCache(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Hydration.CacheTTL = 0
	if got := c.HydrateOptions().CacheTTL; got >= 0 {
		t.Errorf("CacheTTL = %v, want disabled", got)
	}
}
