package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/evgen/config"
)

// HallEntry is a notable animal recorded at its death.
type HallEntry struct {
	ID         uint64  `json:"id"`
	Fitness    float64 `json:"fitness"`
	Genome     string  `json:"genome"`
	Generation int     `json:"generation"`
	Children   int     `json:"children"`
	Age        int     `json:"age"`
	Eaten      int     `json:"eaten"`
	PeakEnergy int     `json:"peak_energy"`
	BornEpoch  int     `json:"born_epoch"`
	DiedEpoch  int     `json:"died_epoch"`
}

// HallOfFame keeps the fittest dead animals, best first.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
	cfg     config.HallOfFameFitnessConfig
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int, cfg config.HallOfFameFitnessConfig) *HallOfFame {
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
		cfg:     cfg,
	}
}

// DeathRecord is what the hall needs to know about a dead animal.
type DeathRecord struct {
	ID        uint64
	Age       int
	Children  int
	Eaten     int
	DiedEpoch int
	Genome    string
	Lifetime  *LifetimeStats // may be nil
}

// Consider evaluates a dead animal for entry.
// Returns true if it was added to the hall.
func (hof *HallOfFame) Consider(d DeathRecord) bool {
	if hof.maxSize <= 0 {
		return false
	}

	entry := HallEntry{
		ID:        d.ID,
		Genome:    d.Genome,
		Children:  d.Children,
		Age:       d.Age,
		Eaten:     d.Eaten,
		DiedEpoch: d.DiedEpoch,
	}
	if lt := d.Lifetime; lt != nil {
		entry.Generation = lt.Generation
		entry.PeakEnergy = lt.PeakEnergy
		entry.BornEpoch = lt.BirthEpoch
	}
	entry.Fitness = hof.calculateFitness(entry)

	before := len(hof.entries)
	hof.entries = hof.insertEntry(hof.entries, entry)
	return len(hof.entries) > before || hof.contains(entry.ID)
}

// calculateFitness computes the weighted fitness score.
func (hof *HallOfFame) calculateFitness(e HallEntry) float64 {
	return float64(e.Children)*hof.cfg.ChildrenWeight +
		float64(e.Age)*hof.cfg.AgeWeight +
		float64(e.Eaten)*hof.cfg.EatenWeight
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall
	}

	// Insert at position
	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	// Trim if over capacity
	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}

	return hall
}

func (hof *HallOfFame) contains(id uint64) bool {
	for _, e := range hof.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Entries returns the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		Entries []HallEntry `json:"entries"`
	}{hof.entries}, "", "  ")
}
