// Package config loads transform settings for the nft command from YAML.
package config

import (
	"fmt"
	"os"

	nft "github.com/tphakala/go-nft"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Kappa    int            `yaml:"kappa"`
	Time     TimeConfig     `yaml:"time_window"`
	Forward  ForwardConfig  `yaml:"forward"`
	Inverse  InverseConfig  `yaml:"inverse"`
	Periodic PeriodicConfig `yaml:"periodic"`
	Workers  int            `yaml:"workers"`
}

type TimeConfig struct {
	T1 float64 `yaml:"t1"`
	T2 float64 `yaml:"t2"`
}

type ForwardConfig struct {
	Discretization      string  `yaml:"discretization"`
	Localization        string  `yaml:"localization"`
	Filtering           string  `yaml:"filtering"`
	DiscreteSpectrum    string  `yaml:"discrete_spectrum"`
	ContinuousSpectrum  string  `yaml:"continuous_spectrum"`
	Niter               int     `yaml:"niter"`
	Normalization       bool    `yaml:"normalization"`
	Richardson          bool    `yaml:"richardson"`
	DegeneracyTolerance float64 `yaml:"degeneracy_tolerance"`
	Xi1                 float64 `yaml:"xi1"`
	Xi2                 float64 `yaml:"xi2"`
	M                   int     `yaml:"m"`
	KMax                int     `yaml:"kmax"`
}

type InverseConfig struct {
	Discretization     string  `yaml:"discretization"`
	ContinuousSpectrum string  `yaml:"continuous_spectrum"`
	Method             string  `yaml:"method"`
	DiscreteSpectrum   string  `yaml:"discrete_spectrum"`
	MaxIter            int     `yaml:"max_iter"`
	Tolerance          float64 `yaml:"tolerance"`
	Oversampling       int     `yaml:"oversampling"`
	D                  int     `yaml:"d"`
}

type PeriodicConfig struct {
	Discretization string   `yaml:"discretization"`
	Localization   string   `yaml:"localization"`
	Filtering      string   `yaml:"filtering"`
	MaxEvaluations int      `yaml:"max_evaluations"`
	Normalization  bool     `yaml:"normalization"`
	BoundingBox    *nft.Box `yaml:"bounding_box,omitempty"`
}

const (
	DefaultT1 = -20.0
	DefaultT2 = 20.0
)

func Default() *Config {
	return &Config{
		Kappa: int(nft.Focusing),
		Time:  TimeConfig{T1: DefaultT1, T2: DefaultT2},
		Forward: ForwardConfig{
			Discretization:     "2SPLIT4B",
			Localization:       "subsampleandrefine",
			Filtering:          "full",
			DiscreteSpectrum:   "norming",
			ContinuousSpectrum: "reflection",
			Niter:              10,
			Normalization:      true,
			Xi1:                nft.DefaultXi1,
			Xi2:                nft.DefaultXi2,
			M:                  nft.DefaultM,
			KMax:               nft.DefaultKMax,
		},
		Inverse: InverseConfig{
			Discretization:     "2SPLIT2A",
			ContinuousSpectrum: "reflection",
			Method:             "cepstrum",
			DiscreteSpectrum:   "norming",
			MaxIter:            100,
			Tolerance:          1e-10,
			Oversampling:       8,
		},
		Periodic: PeriodicConfig{
			Discretization: "2SPLIT4A",
			Localization:   "mixed",
			Filtering:      "auto",
			MaxEvaluations: 20,
			Normalization:  true,
		},
	}
}

// Load reads path over Default, so missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) TimeWindow() nft.TimeWindow {
	return nft.TimeWindow{T1: c.Time.T1, T2: c.Time.T2}
}

func (c *Config) KappaValue() nft.Kappa {
	return nft.Kappa(c.Kappa)
}

func (c *Config) FrequencyWindow() nft.FrequencyWindow {
	return nft.FrequencyWindow{Xi1: c.Forward.Xi1, Xi2: c.Forward.Xi2, M: c.Forward.M}
}

// ForwardOptions converts the forward section. Option names are validated
// here; numeric ranges are validated by the transform.
func (c *Config) ForwardOptions() (*nft.ForwardOptions, error) {
	f := c.Forward
	opts := &nft.ForwardOptions{
		Niter:               f.Niter,
		Normalization:       toggle(f.Normalization),
		Richardson:          toggle(f.Richardson),
		DegeneracyTolerance: f.DegeneracyTolerance,
		Workers:             c.Workers,
	}
	var err error
	if opts.Discretization, err = parseScheme(f.Discretization); err != nil {
		return nil, err
	}
	if opts.Localization, err = nft.ParseBoundStateLocalization(f.Localization); err != nil {
		return nil, err
	}
	if opts.Filtering, err = nft.ParseBoundStateFiltering(f.Filtering); err != nil {
		return nil, err
	}
	if opts.DiscreteSpectrum, err = nft.ParseDiscreteSpectrumType(f.DiscreteSpectrum); err != nil {
		return nil, err
	}
	if opts.ContinuousSpectrum, err = nft.ParseContinuousSpectrumType(f.ContinuousSpectrum); err != nil {
		return nil, err
	}
	return opts, nil
}

// InverseOptions converts the inverse section.
func (c *Config) InverseOptions() (*nft.InverseOptions, error) {
	i := c.Inverse
	opts := &nft.InverseOptions{
		MaxIter:      i.MaxIter,
		Tolerance:    i.Tolerance,
		Oversampling: i.Oversampling,
		Workers:      c.Workers,
	}
	var err error
	if opts.Discretization, err = parseScheme(i.Discretization); err != nil {
		return nil, err
	}
	if opts.ContinuousSpectrum, err = nft.ParseInverseContinuousSpectrumType(i.ContinuousSpectrum); err != nil {
		return nil, err
	}
	if opts.Method, err = nft.ParseInversionMethod(i.Method); err != nil {
		return nil, err
	}
	if opts.DiscreteSpectrum, err = nft.ParseInverseDiscreteSpectrumType(i.DiscreteSpectrum); err != nil {
		return nil, err
	}
	return opts, nil
}

// PeriodicOptions converts the periodic section.
func (c *Config) PeriodicOptions() (*nft.PeriodicOptions, error) {
	p := c.Periodic
	opts := &nft.PeriodicOptions{
		MaxEvaluations: p.MaxEvaluations,
		Normalization:  toggle(p.Normalization),
		BoundingBox:    p.BoundingBox,
		Workers:        c.Workers,
	}
	var err error
	if opts.Discretization, err = parseScheme(p.Discretization); err != nil {
		return nil, err
	}
	if opts.Localization, err = nft.ParsePeriodicLocalization(p.Localization); err != nil {
		return nil, err
	}
	if opts.Filtering, err = nft.ParsePeriodicFiltering(p.Filtering); err != nil {
		return nil, err
	}
	return opts, nil
}

func parseScheme(name string) (nft.Discretization, error) {
	if name == "" || name == "default" {
		return 0, nil
	}
	return nft.ParseDiscretization(name)
}

func toggle(on bool) nft.Toggle {
	if on {
		return nft.On
	}
	return nft.Off
}
