package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/telemetry"
)

func TestParamVectorDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Defaults())
	require.Len(t, got, pv.Dim())
	assert.InDeltaSlice(t, pv.DefaultVector(), got, 1e-9)
}

func TestApplyToConfigKeepsConfigValid(t *testing.T) {
	pv := NewParamVector()
	corners := [][]float64{
		{0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1},
		{0.5, 0.5, 0.5, 0.5, 0.5},
		{-1, 2, -1, 2, -1}, // out of range, clamped
	}
	for _, c := range corners {
		cfg := config.Defaults()
		pv.ApplyToConfig(cfg, pv.Denormalize(c))
		assert.NoError(t, cfg.Validate(), "corner %v", c)
		assert.LessOrEqual(t, cfg.Animals.ProcreationEnergyLoss, cfg.Animals.MinProcreationEnergy)
		assert.GreaterOrEqual(t, cfg.Animals.ProcreationEnergyLoss, 1)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	assert.InDeltaSlice(t, raw, pv.Denormalize(pv.Normalize(raw)), 1e-9)
}

func TestComputeQuality(t *testing.T) {
	steady := &runResult{survivalEpochs: 100, startingEnergy: 30, area: 200}
	for i := 0; i < 20; i++ {
		steady.windowStats = append(steady.windowStats, telemetry.WindowStats{Animals: 60, EnergyP50: 15})
	}
	q := computeQuality(steady)
	assert.InDelta(t, 1.0, q, 1e-9, "on-target steady population scores full quality")

	short := &runResult{survivalEpochs: 2, startingEnergy: 30, area: 200,
		windowStats: []telemetry.WindowStats{{Animals: 2}, {Animals: 1}}}
	assert.Zero(t, computeQuality(short), "runs inside the warmup score zero")

	assert.Less(t, computeFitness(steady), computeFitness(short), "longer survival is better")
}

func TestEvalLogWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	l := &evalLog{w: &buf}

	require.NoError(t, l.write(evalRecord{Eval: 1, Fitness: -10}))
	require.NoError(t, l.write(evalRecord{Eval: 2, Fitness: -12}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "eval,fitness,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,-12,"))
}
