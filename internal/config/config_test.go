package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "development", cfg.Environment)
	assert.Contains(t, cfg.Balls, cfg.Engine.BallMaterial)
	assert.Equal(t, int64(1), cfg.Engine.Seed)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero time step", func(c *Config) { c.Physics.TimeStep = 0 }},
		{"negative flight cutoff", func(c *Config) { c.Physics.MaxFlightSeconds = -1 }},
		{"zero fence distance", func(c *Config) { c.Field.FenceDistanceM = 0 }},
		{"foul line past 90", func(c *Config) { c.Field.FoulLineDeg = 91 }},
		{"no balls configured", func(c *Config) { c.Balls = nil }},
		{"massless ball", func(c *Config) {
			c.Balls["standard"] = BallConfig{MassKg: 0, RadiusM: 0.0366}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRejectsUnknownBallMaterial(t *testing.T) {
	cfg := Default()
	cfg.Engine.BallMaterial = "cork"

	err := cfg.Validate()
	var unknown ErrUnknownBallMaterial
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "cork", unknown.Material)
	assert.Contains(t, err.Error(), "cork")
}

func TestBallCrossSectionDerivedFromRadius(t *testing.T) {
	ball := Default().Balls["standard"]
	want := math.Pi * ball.RadiusM * ball.RadiusM
	assert.InDelta(t, want, ball.CrossSectionM2(), 1e-12)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	// No config file in the test working directory: Load must succeed on
	// built-in defaults.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Field.FenceDistanceM, cfg.Field.FenceDistanceM)
	assert.Contains(t, cfg.Balls, "standard")
}
