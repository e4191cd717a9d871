package telemetry

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	ID         uint64
	BirthEpoch int
	ParentA    uint64 // 0 for founders
	ParentB    uint64
	Generation int // founders are generation 0
	Genome     string

	Children   int
	PeakEnergy int
}

// LifetimeTracker manages per-animal lifetime statistics.
type LifetimeTracker struct {
	stats         map[uint64]*LifetimeStats
	maxGeneration int
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint64]*LifetimeStats),
	}
}

// RegisterFounder creates lifetime stats for an animal placed at creation.
func (lt *LifetimeTracker) RegisterFounder(id uint64, birthEpoch int, genome string, energy int) {
	lt.stats[id] = &LifetimeStats{
		ID:         id,
		BirthEpoch: birthEpoch,
		Genome:     genome,
		PeakEnergy: energy,
	}
}

// RegisterChild creates lifetime stats for a newborn and credits both
// parents. The child's generation is one past its older-generation parent.
func (lt *LifetimeTracker) RegisterChild(id uint64, birthEpoch int, parentA, parentB uint64, genome string, energy int) {
	gen := 0
	for _, p := range []uint64{parentA, parentB} {
		if s := lt.stats[p]; s != nil {
			s.Children++
			gen = max(gen, s.Generation+1)
		}
	}
	lt.stats[id] = &LifetimeStats{
		ID:         id,
		BirthEpoch: birthEpoch,
		ParentA:    parentA,
		ParentB:    parentB,
		Generation: gen,
		Genome:     genome,
		PeakEnergy: energy,
	}
	lt.maxGeneration = max(lt.maxGeneration, gen)
}

// Get returns the lifetime stats for an animal, or nil if not found.
func (lt *LifetimeTracker) Get(id uint64) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an animal's stats and returns them (for hall of fame).
func (lt *LifetimeTracker) Remove(id uint64) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(id uint64, energy int) {
	if s := lt.stats[id]; s != nil && energy > s.PeakEnergy {
		s.PeakEnergy = energy
	}
}

// Count returns the number of tracked animals.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MaxGeneration returns the deepest generation ever born.
func (lt *LifetimeTracker) MaxGeneration() int {
	return lt.maxGeneration
}
