package telemetry

import (
	"testing"
	"time"
)

// stepClock is a manual clock for PerfCollector.
type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time { return c.t }
func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(windowSize int) (*PerfCollector, *stepClock) {
	clock := &stepClock{t: time.Unix(1_700_000_000, 0)}
	pc := NewPerfCollector(windowSize)
	pc.now = clock.now
	return pc, clock
}

func runEpochs(pc *PerfCollector, clock *stepClock, n int, phases map[string]time.Duration) {
	for i := 0; i < n; i++ {
		pc.StartEpoch()
		for _, phase := range Phases {
			d, ok := phases[phase]
			if !ok {
				continue
			}
			pc.StartPhase(phase)
			clock.advance(d)
		}
		pc.EndEpoch()
	}
}

func TestPerfCollector_PhasesTracked(t *testing.T) {
	pc, clock := newTestCollector(10)
	runEpochs(pc, clock, 5, map[string]time.Duration{
		PhaseMove: 100 * time.Microsecond,
		PhaseFeed: 200 * time.Microsecond,
	})

	stats := pc.Stats()
	if stats.AvgEpoch != 300*time.Microsecond {
		t.Errorf("avg epoch = %v, want 300µs", stats.AvgEpoch)
	}
	if got := stats.PhaseAvg[PhaseMove]; got != 100*time.Microsecond {
		t.Errorf("move avg = %v, want 100µs", got)
	}
	if got := stats.PhaseAvg[PhaseFeed]; got != 200*time.Microsecond {
		t.Errorf("feed avg = %v, want 200µs", got)
	}
	if _, ok := stats.PhaseAvg[PhaseGrow]; ok {
		t.Error("grow was never started and should not be tracked")
	}
	if stats.MinEpoch != stats.AvgEpoch || stats.MaxEpoch != stats.AvgEpoch {
		t.Errorf("equal epochs: want min = avg = max, got %v / %v / %v", stats.MinEpoch, stats.AvgEpoch, stats.MaxEpoch)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestCollector(5)

	// Slow epochs first, then enough fast ones to push them out
	runEpochs(pc, clock, 5, map[string]time.Duration{PhaseAge: 2 * time.Millisecond})
	runEpochs(pc, clock, 5, map[string]time.Duration{PhaseAge: 100 * time.Microsecond})

	stats := pc.Stats()
	if stats.MaxEpoch != 100*time.Microsecond {
		t.Errorf("slow epochs should have left the window, max = %v", stats.MaxEpoch)
	}
	if stats.EpochsPerSecond != 10000 {
		t.Errorf("epochs per second = %v, want 10000", stats.EpochsPerSecond)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc, clock := newTestCollector(10)
	runEpochs(pc, clock, 5, map[string]time.Duration{
		PhaseCleanup: 250 * time.Microsecond,
		PhaseGrow:    750 * time.Microsecond,
	})

	stats := pc.Stats()
	if got := stats.PhasePct[PhaseCleanup]; got != 25 {
		t.Errorf("cleanup share = %v%%, want 25%%", got)
	}
	if got := stats.PhasePct[PhaseGrow]; got != 75 {
		t.Errorf("grow share = %v%%, want 75%%", got)
	}
}

func TestPerfCollector_TimeBetweenPhasesNotCounted(t *testing.T) {
	pc, clock := newTestCollector(10)

	pc.StartEpoch()
	clock.advance(500 * time.Microsecond) // before the first phase
	pc.StartPhase(PhaseMove)
	clock.advance(500 * time.Microsecond)
	pc.EndEpoch()

	stats := pc.Stats()
	if stats.AvgEpoch != time.Millisecond {
		t.Errorf("avg epoch = %v, want 1ms", stats.AvgEpoch)
	}
	if got := stats.PhasePct[PhaseMove]; got != 50 {
		t.Errorf("move share = %v%%, want 50%%", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgEpoch != 0 || stats.EpochsPerSecond != 0 {
		t.Errorf("empty collector: avg = %v, rate = %v, want zeros", stats.AvgEpoch, stats.EpochsPerSecond)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	pc.RecordFrame()
	if fps := pc.Stats().FPS; fps != 0 {
		t.Errorf("a single frame has no duration, got FPS %v", fps)
	}

	clock.advance(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 16*time.Millisecond {
		t.Errorf("frame duration = %v, want 16ms", stats.FrameDuration)
	}
	if stats.FPS != 62.5 {
		t.Errorf("FPS = %v, want 62.5", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgEpoch:        1500 * time.Microsecond,
		EpochsPerSecond: 666,
		PhasePct:        map[string]float64{PhaseMove: 40, PhaseTelemetry: 5},
	}

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgEpochUS != 1500 {
		t.Errorf("row = %+v, want window_end 120 and avg 1500us", row)
	}
	if row.MovePct != 40 || row.TelemetryPct != 5 || row.FeedPct != 0 {
		t.Errorf("phase columns = move %v telemetry %v feed %v", row.MovePct, row.TelemetryPct, row.FeedPct)
	}
}
