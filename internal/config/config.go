package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/tenorlab/tenorpick/internal/profile"
	"github.com/tenorlab/tenorpick/internal/scoring"
)

// WeightsFile is the on-disk shape of config/weights.yaml: one weight
// block per strategy.
type WeightsFile struct {
	Strategies map[string]scoring.WeightConfig `yaml:"strategies"`
}

// LoadWeights reads per-strategy weight overrides. Missing or invalid
// files fall back to the built-in presets with a logged error, never a
// failure; the optimizer must stay usable without any config on disk.
func LoadWeights(path string) map[scoring.StrategyType]scoring.WeightConfig {
	defaults := map[scoring.StrategyType]scoring.WeightConfig{
		scoring.StrategyCashSecuredPut: scoring.PresetFor(scoring.StrategyCashSecuredPut),
		scoring.StrategyCoveredCall:    scoring.PresetFor(scoring.StrategyCoveredCall),
		scoring.StrategyCreditSpread:   scoring.PresetFor(scoring.StrategyCreditSpread),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read weights config, using presets")
		return defaults
	}

	var file WeightsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to parse weights config, using presets")
		return defaults
	}

	for name, w := range file.Strategies {
		strategy := scoring.ParseStrategy(name)
		normalized, err := w.Normalized()
		if err != nil {
			log.Error().Err(err).Str("strategy", name).Msg("Invalid weights for strategy, keeping preset")
			continue
		}
		defaults[strategy] = normalized
	}

	log.Info().Str("path", path).Int("strategies", len(file.Strategies)).Msg("Loaded scoring weights")
	return defaults
}

// ProfilesFile is the on-disk shape of config/profiles.yaml.
type ProfilesFile struct {
	Profiles map[string]profile.Profile `yaml:"profiles"`
}

// LoadProfiles reads a market-profile table from YAML. Unlike weights,
// a present-but-broken profiles file is an error: silently dropping a
// profile table would change scores without warning.
func LoadProfiles(path string) (*profile.StaticProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles config: %w", err)
	}
	var file ProfilesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse profiles config: %w", err)
	}
	log.Info().Str("path", path).Int("symbols", len(file.Profiles)).Msg("Loaded market profiles")
	return profile.NewStaticProvider(file.Profiles), nil
}

// LoadProfilesOrDefault falls back to the built-in table with a logged
// error when the file is unreadable.
func LoadProfilesOrDefault(path string) *profile.StaticProvider {
	prov, err := LoadProfiles(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to load profiles, using built-in table")
		return profile.DefaultProvider()
	}
	return prov
}
