package telemetry

// GenomePopularity counts living animals per genome. Ties for most popular
// go to the lexicographically smallest genome so results are stable.
type GenomePopularity struct {
	members map[string]map[uint64]struct{}
}

// NewGenomePopularity creates an empty tracker.
func NewGenomePopularity() *GenomePopularity {
	return &GenomePopularity{members: make(map[string]map[uint64]struct{})}
}

// Add registers animal id as carrying genome.
func (gp *GenomePopularity) Add(genome string, id uint64) {
	set, ok := gp.members[genome]
	if !ok {
		set = make(map[uint64]struct{})
		gp.members[genome] = set
	}
	set[id] = struct{}{}
}

// MostPopular returns the most common genome and its carrier count.
// Returns "", 0 when no animal is tracked.
func (gp *GenomePopularity) MostPopular() (string, int) {
	best, bestCount := "", 0
	for genome, set := range gp.members {
		n := len(set)
		if n > bestCount || (n == bestCount && genome < best) {
			best, bestCount = genome, n
		}
	}
	return best, bestCount
}

// Distinct returns the number of distinct genomes alive.
func (gp *GenomePopularity) Distinct() int {
	return len(gp.members)
}
