package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	nft "github.com/tphakala/go-nft"
)

func TestDefault_Options(t *testing.T) {
	cfg := Default()
	assert.Equal(t, nft.Focusing, cfg.KappaValue())
	assert.Equal(t, nft.TimeWindow{T1: DefaultT1, T2: DefaultT2}, cfg.TimeWindow())
	assert.Equal(t, nft.FrequencyWindow{Xi1: nft.DefaultXi1, Xi2: nft.DefaultXi2, M: nft.DefaultM}, cfg.FrequencyWindow())

	fwd, err := cfg.ForwardOptions()
	require.NoError(t, err)
	assert.Equal(t, nft.Split4B, fwd.Discretization)
	assert.Equal(t, nft.SubsampleAndRefine, fwd.Localization)
	assert.Equal(t, nft.FilterFull, fwd.Filtering)
	assert.Equal(t, nft.NormingConstants, fwd.DiscreteSpectrum)
	assert.Equal(t, nft.ReflectionCoefficient, fwd.ContinuousSpectrum)
	assert.Equal(t, nft.On, fwd.Normalization)
	assert.Equal(t, nft.Off, fwd.Richardson)
	require.NoError(t, fwd.Validate())

	inv, err := cfg.InverseOptions()
	require.NoError(t, err)
	assert.Equal(t, nft.Split2A, inv.Discretization)
	assert.Equal(t, nft.ReflectionCepstrum, inv.Method)
	require.NoError(t, inv.Validate())

	per, err := cfg.PeriodicOptions()
	require.NoError(t, err)
	assert.Equal(t, nft.Split4A, per.Discretization)
	assert.Equal(t, nft.Mixed, per.Localization)
	assert.Equal(t, nft.PeriodicFilterAuto, per.Filtering)
	assert.Nil(t, per.BoundingBox)
	require.NoError(t, per.Validate())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nft.yaml")
	want := Default()
	want.Kappa = -1
	want.Forward.Richardson = true
	want.Periodic.BoundingBox = &nft.Box{ReMin: -1, ReMax: 1, ImMin: 0, ImMax: 2}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "forward:\n  discretization: bo\n  m: 64\ntime_window:\n  t1: -5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Forward.M)
	assert.InDelta(t, -5, cfg.Time.T1, 0)
	assert.InDelta(t, DefaultT2, cfg.Time.T2, 0)
	assert.Equal(t, "full", cfg.Forward.Filtering)

	fwd, err := cfg.ForwardOptions()
	require.NoError(t, err)
	assert.Equal(t, nft.BO, fwd.Discretization)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("forward: [1, 2\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestOptions_UnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		call   func(*Config) error
	}{
		{"forward scheme", func(c *Config) { c.Forward.Discretization = "2SPLIT9Z" },
			func(c *Config) error { _, err := c.ForwardOptions(); return err }},
		{"forward localization", func(c *Config) { c.Forward.Localization = "bisection" },
			func(c *Config) error { _, err := c.ForwardOptions(); return err }},
		{"inverse method", func(c *Config) { c.Inverse.Method = "gelfand" },
			func(c *Config) error { _, err := c.InverseOptions(); return err }},
		{"periodic filtering", func(c *Config) { c.Periodic.Filtering = "strict" },
			func(c *Config) error { _, err := c.PeriodicOptions(); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, tt.call(cfg), nft.ErrInvalidArgument)
		})
	}
}

func TestParseScheme_Default(t *testing.T) {
	for _, name := range []string{"", "default"} {
		id, err := parseScheme(name)
		require.NoError(t, err)
		assert.Zero(t, id)
	}
}
