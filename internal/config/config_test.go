package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenorlab/tenorpick/internal/scoring"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWeights_OverridesAndNormalizes(t *testing.T) {
	path := writeFile(t, "weights.yaml", `
strategies:
  csp:
    theta_efficiency: 0.2
    gamma_risk: 0.2
    liquidity: 0.2
    event_buffer: 0.2
`)
	table := LoadWeights(path)

	csp := table[scoring.StrategyCashSecuredPut]
	assert.InDelta(t, 1.0, csp.Sum(), 1e-6, "raw sum 0.8 renormalizes to 1.0")
	assert.InDelta(t, 0.25, csp.ThetaEfficiency, 1e-9)

	// Untouched strategies keep their presets.
	assert.Equal(t, scoring.PresetFor(scoring.StrategyCoveredCall), table[scoring.StrategyCoveredCall])
}

func TestLoadWeights_MissingFileFallsBack(t *testing.T) {
	table := LoadWeights(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, scoring.PresetFor(scoring.StrategyCashSecuredPut), table[scoring.StrategyCashSecuredPut])
}

func TestLoadWeights_InvalidStrategyKept(t *testing.T) {
	path := writeFile(t, "weights.yaml", `
strategies:
  covered_call:
    theta_efficiency: 0
    gamma_risk: 0
    liquidity: 0
    event_buffer: 0
`)
	table := LoadWeights(path)
	assert.Equal(t, scoring.PresetFor(scoring.StrategyCoveredCall), table[scoring.StrategyCoveredCall],
		"a zero-sum block is rejected and the preset survives")
}

func TestLoadProfiles(t *testing.T) {
	path := writeFile(t, "profiles.yaml", `
profiles:
  TSLA:
    volatility_ratio: 1.8
    beta: 2.0
    liquidity: 1.2
    market_cap_tier: 1.4
    options_activity: 1.4
`)
	prov, err := LoadProfiles(path)
	require.NoError(t, err)

	p, ok := prov.Lookup("TSLA")
	require.True(t, ok)
	assert.Equal(t, 1.8, p.VolatilityRatio)
	assert.Equal(t, 1, prov.Len())
}

func TestLoadProfiles_Errors(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "profiles: [not, a, map]")
	_, err = LoadProfiles(bad)
	assert.Error(t, err)
}

func TestLoadProfilesOrDefault(t *testing.T) {
	prov := LoadProfilesOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	_, ok := prov.Lookup("TSLA")
	assert.True(t, ok, "fallback serves the built-in table")
}
