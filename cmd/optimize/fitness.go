package main

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/sim"
	"github.com/pthm-cable/evgen/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxEpochs  int
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
	lastSurvival   float64 // mean survival from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxEpochs int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxEpochs:   maxEpochs,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSurvival returns the mean survival in epochs from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalEpochs int                     // epochs before extinction (or maxEpochs if survived)
	windowStats    []telemetry.WindowStats // collected via StatsCallback each window
	hallOfFame     *telemetry.HallOfFame
	startingEnergy int
	area           int
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	survival   float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
// A run that cannot be built scores +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, seed := range fe.seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := fe.runSimulation(x, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = seedResult{
				fitness:    computeFitness(result),
				quality:    computeQuality(result),
				survival:   float64(result.survivalEpochs),
				hallOfFame: result.hallOfFame,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Printf("evaluation failed: %v\n", err)
		return math.Inf(1)
	}

	// Aggregate results
	var totalFitness, totalQuality, totalSurvival float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		totalSurvival += r.survival
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.lastSurvival = totalSurvival / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until extinction or maxEpochs, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{
		startingEnergy: cfg.Animals.StartingEnergy,
		area:           cfg.Derived.Area,
	}

	s, err := sim.New(sim.Options{
		Seed:   seed,
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}

	result.survivalEpochs = s.Run(fe.maxEpochs)
	if s.Extinct() {
		// One more epoch reports the last deaths to the hall of fame.
		s.Step()
	}
	result.hallOfFame = s.HallOfFame()
	return result, s.Close()
}

// copyConfig returns a copy of the base config. Config holds only values,
// so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalEpochs × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(r *runResult) float64 {
	return -(float64(r.survivalEpochs) * (1.0 + 0.2*computeQuality(r)))
}

// Quality component weights.
const (
	qualityWeightStability = 0.40
	qualityWeightDensity   = 0.30
	qualityWeightEnergy    = 0.30

	qualityWarmupWindows = 3   // skip first N windows (warmup)
	qualityMinPop        = 2   // exclude windows with fewer animals
	targetDensity        = 0.3 // animals per cell
	targetEnergyRatio    = 0.5 // median energy over starting energy
)

// computeQuality computes ecosystem quality in [0, 1] from window stats.
func computeQuality(r *runResult) float64 {
	windows := r.windowStats
	if len(windows) <= qualityWarmupWindows || r.area == 0 || r.startingEnergy == 0 {
		return 0
	}

	var densitySum, energySum float64
	counts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Animals < qualityMinPop {
			continue
		}
		counts = append(counts, float64(w.Animals))

		density := float64(w.Animals) / float64(r.area)
		densitySum += gauss(density, targetDensity, 0.2)

		energy := w.EnergyP50 / float64(r.startingEnergy)
		energySum += gauss(energy, targetEnergyRatio, 0.3)
	}

	if len(counts) == 0 {
		return 0
	}
	n := float64(len(counts))

	stabilityScore := 0.0
	if len(counts) >= 2 {
		mean, variance := stat.PopMeanVariance(counts, nil)
		if mean > 0 {
			stabilityScore = math.Exp(-variance / (mean * mean))
		}
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightDensity*densitySum/n +
		qualityWeightEnergy*energySum/n

	return clamp01(quality)
}

// gauss scores x by its distance from target in units of width.
func gauss(x, target, width float64) float64 {
	d := (x - target) / width
	return math.Exp(-d * d)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
