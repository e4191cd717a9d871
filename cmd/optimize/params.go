// Package main provides CMA-ES optimization for grid simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/evgen/config"
)

// ParamSpec defines a single optimizable parameter and where it lives in
// the config.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

func intParam(name, path string, lo, hi, def float64, field func(*config.Config) *int) ParamSpec {
	return ParamSpec{
		Name: name, Path: path, Min: lo, Max: hi, Default: def,
		get: func(c *config.Config) float64 { return float64(*field(c)) },
		set: func(c *config.Config, v float64) { *field(c) = round(v) },
	}
}

// NewParamVector creates the standard set of optimizable parameters.
// The procreation cost is searched as a fraction of the minimum
// procreation energy so every candidate satisfies cost <= minimum; it is
// applied after the minimum.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			intParam("energy_gain", "foliage.energy_gain", 1, 20, 5,
				func(c *config.Config) *int { return &c.Foliage.EnergyGain }),
			intParam("daily_growth", "foliage.daily_growth", 0, 10, 2,
				func(c *config.Config) *int { return &c.Foliage.DailyGrowth }),
			intParam("starting_energy", "animals.starting_energy", 5, 60, 30,
				func(c *config.Config) *int { return &c.Animals.StartingEnergy }),
			intParam("min_procreation", "animals.min_procreation_energy", 2, 40, 15,
				func(c *config.Config) *int { return &c.Animals.MinProcreationEnergy }),
			{
				Name: "procreation_cost_ratio", Path: "animals.procreation_energy_loss",
				Min: 0.1, Max: 1, Default: 10.0 / 15.0,
				get: func(c *config.Config) float64 {
					return float64(c.Animals.ProcreationEnergyLoss) / float64(c.Animals.MinProcreationEnergy)
				},
				set: func(c *config.Config, ratio float64) {
					limit := c.Animals.MinProcreationEnergy
					c.Animals.ProcreationEnergyLoss = min(max(round(ratio*float64(limit)), 1), limit)
				},
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped, rounded parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}

func round(x float64) int {
	return int(math.Round(x))
}

func logn(n int) float64 {
	return math.Log(float64(n))
}
