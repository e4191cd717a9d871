package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the epoch pipeline. The first five match world.Phase.
const (
	PhaseCleanup   = "cleanup"
	PhaseMove      = "move"
	PhaseFeed      = "feed"
	PhaseGrow      = "grow"
	PhaseAge       = "age"
	PhaseTelemetry = "telemetry"
)

// Phases lists the phases in pipeline order.
var Phases = []string{PhaseCleanup, PhaseMove, PhaseFeed, PhaseGrow, PhaseAge, PhaseTelemetry}

// epochSample holds timing data for a single epoch.
type epochSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps per-phase epoch timings in a ring of the last
// windowSize epochs. Phases are timed back to back: starting one ends the
// previous one.
type PerfCollector struct {
	ring  []epochSample
	next  int
	count int

	current    epochSample
	epochStart time.Time
	phaseStart time.Time
	phase      string

	// Frame timing (for graphics mode)
	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize epochs.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]epochSample, windowSize), now: time.Now}
}

// StartEpoch begins timing a new epoch.
func (p *PerfCollector) StartEpoch() {
	p.epochStart = p.now()
	p.current = epochSample{phases: make(map[string]time.Duration, len(Phases))}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndEpoch closes the running phase and stores the epoch in the ring.
func (p *PerfCollector) EndEpoch() {
	now := p.now()
	p.closePhase(now)
	p.phase = ""
	p.current.total = now.Sub(p.epochStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgEpoch time.Duration
	MinEpoch time.Duration
	MaxEpoch time.Duration

	// Average duration and share of the epoch per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	EpochsPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the epochs currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		stats.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return stats
	}

	var total time.Duration
	for i, s := range p.ring[:p.count] {
		total += s.total
		if i == 0 || s.total < stats.MinEpoch {
			stats.MinEpoch = s.total
		}
		stats.MaxEpoch = max(stats.MaxEpoch, s.total)
		for phase, d := range s.phases {
			stats.PhaseAvg[phase] += d
		}
	}

	n := time.Duration(p.count)
	stats.AvgEpoch = total / n
	for phase, sum := range stats.PhaseAvg {
		stats.PhaseAvg[phase] = sum / n
	}
	if stats.AvgEpoch > 0 {
		stats.EpochsPerSecond = float64(time.Second) / float64(stats.AvgEpoch)
		for phase, avg := range stats.PhaseAvg {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgEpoch) * 100
		}
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_epoch_us", s.AvgEpoch.Microseconds(),
		"min_epoch_us", s.MinEpoch.Microseconds(),
		"max_epoch_us", s.MaxEpoch.Microseconds(),
		"epochs_per_sec", int(s.EpochsPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	// Add phase breakdowns
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_epoch_us", s.AvgEpoch.Microseconds()),
		slog.Int64("min_epoch_us", s.MinEpoch.Microseconds()),
		slog.Int64("max_epoch_us", s.MaxEpoch.Microseconds()),
		slog.Float64("epochs_per_sec", s.EpochsPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgEpochUS   int64   `csv:"avg_epoch_us"`
	MinEpochUS   int64   `csv:"min_epoch_us"`
	MaxEpochUS   int64   `csv:"max_epoch_us"`
	EpochsPerSec float64 `csv:"epochs_per_sec"`
	FPS          float64 `csv:"fps"`
	CleanupPct   float64 `csv:"cleanup_pct"`
	MovePct      float64 `csv:"move_pct"`
	FeedPct      float64 `csv:"feed_pct"`
	GrowPct      float64 `csv:"grow_pct"`
	AgePct       float64 `csv:"age_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgEpochUS:   s.AvgEpoch.Microseconds(),
		MinEpochUS:   s.MinEpoch.Microseconds(),
		MaxEpochUS:   s.MaxEpoch.Microseconds(),
		EpochsPerSec: s.EpochsPerSecond,
		FPS:          s.FPS,
		CleanupPct:   s.PhasePct[PhaseCleanup],
		MovePct:      s.PhasePct[PhaseMove],
		FeedPct:      s.PhasePct[PhaseFeed],
		GrowPct:      s.PhasePct[PhaseGrow],
		AgePct:       s.PhasePct[PhaseAge],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
