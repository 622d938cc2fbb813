// Package config loads engine tuning from defaults, a JSON file and
// SOUNDSCAPE_* environment variables, in rising precedence
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/engine"
)

// Config is the host-tunable subset of engine behavior
type Config struct {
	MasterVolume     float64 `json:"master_volume"`
	SampleRate       int     `json:"sample_rate"`
	OcclusionEnabled bool    `json:"occlusion_enabled"`
	OccludedCutoff   float64 `json:"occluded_cutoff"`
	OccludedVolume   float64 `json:"occluded_volume"`
}

// Default returns the engine's built-in tuning
func Default() Config {
	return Config{
		MasterVolume:     1.0,
		SampleRate:       constant.SampleRate,
		OcclusionEnabled: true,
		OccludedCutoff:   constant.OcclusionMinCutoff,
		OccludedVolume:   constant.OccludedVolume,
	}
}

// Load builds a config from defaults, then the JSON file at path if
// non-empty, then environment overrides
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	cfg.clamp()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := envFloat("SOUNDSCAPE_MASTER_VOLUME"); ok {
		c.MasterVolume = v
	}
	if v, ok := envInt("SOUNDSCAPE_SAMPLE_RATE"); ok {
		c.SampleRate = v
	}
	if v, ok := envBool("SOUNDSCAPE_OCCLUSION"); ok {
		c.OcclusionEnabled = v
	}
	if v, ok := envFloat("SOUNDSCAPE_OCCLUDED_CUTOFF"); ok {
		c.OccludedCutoff = v
	}
	if v, ok := envFloat("SOUNDSCAPE_OCCLUDED_VOLUME"); ok {
		c.OccludedVolume = v
	}
}

func (c *Config) clamp() {
	if c.MasterVolume < 0 {
		c.MasterVolume = 0
	}
	if c.MasterVolume > 1 {
		c.MasterVolume = 1
	}
	if c.SampleRate <= 0 {
		c.SampleRate = constant.SampleRate
	}
	if c.OccludedVolume < 0 {
		c.OccludedVolume = 0
	}
	if c.OccludedVolume > 1 {
		c.OccludedVolume = 1
	}
}

// Apply pushes the runtime-tunable fields into a running engine
// The sample rate is construction-only and ignored here
func (c Config) Apply(e *engine.Engine) {
	e.SetMasterVolume(c.MasterVolume)
	e.SetOcclusionConfig(engine.OcclusionConfig{
		Enabled:        c.OcclusionEnabled,
		OccludedCutoff: c.OccludedCutoff,
		OccludedVolume: c.OccludedVolume,
	})
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(key string) (bool, bool) {
	s := os.Getenv(key)
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}
