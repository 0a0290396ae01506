// Package config loads slideshow configuration from a YAML file with
// KENBURNS_* environment overrides, and validates it before a slideshow is
// built.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	kenburns "github.com/stateforward/go-kenburns"
	"github.com/stateforward/go-kenburns/style"
)

type Config struct {
	Images            []string      `yaml:"images" env:"IMAGES" envSeparator:","`
	FadeDuration      time.Duration `yaml:"fade_duration" env:"FADE_DURATION"`
	AnimationDuration time.Duration `yaml:"animation_duration" env:"ANIMATION_DURATION"`
	Randomize         bool          `yaml:"randomize" env:"RANDOMIZE"`
	Paused            bool          `yaml:"paused" env:"PAUSED"`
	Effects           []string      `yaml:"effects" env:"EFFECTS" envSeparator:","`
	Curve             string        `yaml:"curve" env:"CURVE"`
	Vendor            string        `yaml:"vendor" env:"VENDOR"`
	// Seed makes effect selection reproducible. Zero seeds randomly.
	Seed     uint64 `yaml:"seed" env:"SEED"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

const Prefix = "KENBURNS_"

// Default returns the documented defaults.
func Default() Config {
	return Config{
		FadeDuration:      kenburns.DefaultFadeDuration,
		AnimationDuration: kenburns.DefaultAnimationDuration,
		Randomize:         true,
		Effects:           append([]string(nil), kenburns.DefaultEffects...),
		Curve:             "ease-out",
		LogLevel:          "info",
	}
}

// Load reads path over the defaults, when path is not empty, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Join(ErrRead, fmt.Errorf("%s: %w", path, err))
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Join(ErrParse, fmt.Errorf("%s: %w", path, err))
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return cfg, errors.Join(ErrParse, fmt.Errorf("environment: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Images) == 0 {
		return ErrNoImages
	}
	if len(c.Effects) == 0 {
		return ErrNoEffects
	}
	if c.FadeDuration < 0 {
		return fmt.Errorf("%w: fade_duration %s", ErrInvalidDuration, c.FadeDuration)
	}
	if c.AnimationDuration < 0 {
		return fmt.Errorf("%w: animation_duration %s", ErrInvalidDuration, c.AnimationDuration)
	}
	// a cycle with no duration reschedules itself without time passing
	if c.FadeDuration+c.AnimationDuration == 0 {
		return fmt.Errorf("%w: fade_duration and animation_duration are both zero", ErrInvalidDuration)
	}
	if _, err := style.ParseVendor(c.Vendor); err != nil {
		return errors.Join(ErrUnknownVendor, err)
	}
	return nil
}

// Options converts the configuration into slideshow options. It assumes
// Validate passed.
func (c Config) Options() []kenburns.Option {
	vendor, _ := style.ParseVendor(c.Vendor)
	options := []kenburns.Option{
		kenburns.WithFadeDuration(c.FadeDuration),
		kenburns.WithAnimationDuration(c.AnimationDuration),
		kenburns.WithRandomize(c.Randomize),
		kenburns.WithPaused(c.Paused),
		kenburns.WithEffects(c.Effects...),
		kenburns.WithCurve(c.Curve),
		kenburns.WithVendor(vendor),
	}
	if c.Seed != 0 {
		options = append(options, kenburns.WithRand(rand.New(rand.NewPCG(c.Seed, c.Seed))))
	}
	return options
}
