package systems

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/randomset"
)

// GrowthVariant selects where foliage prefers to grow.
type GrowthVariant uint8

const (
	// Equatorial prefers a horizontal band around the middle row.
	Equatorial GrowthVariant = iota
	// ToxicCorpses prefers the cells where the fewest animals have died.
	ToxicCorpses
)

// ParseGrowthVariant maps a configuration name to a GrowthVariant.
func ParseGrowthVariant(s string) (GrowthVariant, error) {
	switch strings.ToLower(s) {
	case "equator", "equatorial":
		return Equatorial, nil
	case "toxic", "toxic_corpses":
		return ToxicCorpses, nil
	}
	return 0, fmt.Errorf("unknown foliage variant %q", s)
}

func (v GrowthVariant) String() string {
	if v == ToxicCorpses {
		return "toxic"
	}
	return "equator"
}

// preferredChance is the 1-in-N chance of skipping the preferred pool
// while both pools have room.
const preferredChance = 5

// Grower decides where foliage appears. Every cell is preferred or regular,
// and within each group either available (no plant) or occupied. Only
// available cells are handed out.
type Grower struct {
	variant GrowthVariant
	bounds  components.Bounds
	target  int

	preferred      []bool
	preferredCount int
	freePreferred  *randomset.Set[components.Position]
	freeRegular    *randomset.Set[components.Position]

	// ToxicCorpses state
	deaths   []int
	buckets  map[int][]components.Position
	keys     []int // sorted bucket keys
	maxDeath int
}

// NewGrower creates a grower covering bounds with no plants.
func NewGrower(variant GrowthVariant, bounds components.Bounds) *Grower {
	area := bounds.Area()
	g := &Grower{
		variant:       variant,
		bounds:        bounds,
		target:        area / 5,
		preferred:     make([]bool, area),
		freePreferred: randomset.New[components.Position](),
		freeRegular:   randomset.New[components.Position](),
	}

	switch variant {
	case ToxicCorpses:
		g.deaths = make([]int, area)
		g.buckets = make(map[int][]components.Position)
		for i := 0; i < area; i++ {
			g.preferred[i] = true
			g.freePreferred.Add(bounds.At(i))
		}
		g.preferredCount = area
	default:
		g.markEquator()
		for i := 0; i < area; i++ {
			if !g.preferred[i] {
				g.freeRegular.Add(bounds.At(i))
			}
		}
	}
	return g
}

// markEquator flags rows outward from the middle, alternating above and
// below, until the preferred target is reached.
func (g *Grower) markEquator() {
	mid := (g.bounds.Min.Y + g.bounds.Max.Y) / 2
	remaining := g.target
	for step := 0; remaining > 0; step++ {
		if step > 2*g.bounds.Height() {
			break
		}
		offset := (step + 1) / 2
		y := mid - offset
		if step%2 == 1 {
			y = mid + offset
		}
		if y < g.bounds.Min.Y || y > g.bounds.Max.Y {
			continue
		}
		for x := g.bounds.Min.X; x <= g.bounds.Max.X && remaining > 0; x++ {
			p := components.Pos(x, y)
			g.preferred[g.bounds.Index(p)] = true
			g.freePreferred.Add(p)
			g.preferredCount++
			remaining--
		}
	}
}

// Variant returns the growth variant.
func (g *Grower) Variant() GrowthVariant { return g.variant }

// PlantSpot takes an available cell for a new plant. The preferred pool is
// used four times out of five while the regular pool has room, and always
// when it does not. Returns false when no cell is available.
func (g *Grower) PlantSpot(rng *rand.Rand) (components.Position, bool) {
	roll := rng.Intn(preferredChance)
	if g.freePreferred.Len() > 0 && (roll != 0 || g.freeRegular.Len() == 0) {
		return g.freePreferred.PollRandom(rng)
	}
	return g.freeRegular.PollRandom(rng)
}

// PlantEaten releases the cell at pos back to its available pool.
func (g *Grower) PlantEaten(pos components.Position) {
	pool := g.freeRegular
	if g.preferred[g.index(pos)] {
		pool = g.freePreferred
	}
	if !pool.Add(pos) {
		panic(fmt.Sprintf("systems: plant eaten at %v, but the cell had no plant", pos))
	}
}

// IsPreferred reports whether pos is currently a preferred cell.
func (g *Grower) IsPreferred(pos components.Position) bool {
	return g.preferred[g.index(pos)]
}

// AnimalDiedAt records a death at pos. Only ToxicCorpses reacts: the cell's
// death count grows, a preferred cell that becomes the most toxic is
// demoted, and the least toxic regular cells are promoted until the
// preferred target is met again.
func (g *Grower) AnimalDiedAt(pos components.Position) {
	if g.variant != ToxicCorpses {
		return
	}
	i := g.index(pos)
	old := g.deaths[i]
	g.deaths[i]++
	count := g.deaths[i]

	if !g.preferred[i] {
		g.unfile(pos, old)
		g.file(pos, count)
	} else if count > g.maxDeath {
		g.setPreferred(pos, false)
		g.file(pos, count)
	}

	for g.preferredCount < g.target && len(g.keys) > 0 {
		lowest := g.keys[0]
		p := g.buckets[lowest][0]
		g.unfile(p, lowest)
		g.setPreferred(p, true)
		g.maxDeath = max(g.maxDeath, g.deaths[g.index(p)])
	}
}

func (g *Grower) setPreferred(pos components.Position, preferred bool) {
	i := g.index(pos)
	if g.preferred[i] == preferred {
		return
	}
	g.preferred[i] = preferred
	from, to := g.freeRegular, g.freePreferred
	if preferred {
		g.preferredCount++
	} else {
		g.preferredCount--
		from, to = to, from
	}
	if from.Remove(pos) {
		to.Add(pos)
	}
}

func (g *Grower) file(pos components.Position, count int) {
	bucket, ok := g.buckets[count]
	if !ok {
		k, _ := slices.BinarySearch(g.keys, count)
		g.keys = slices.Insert(g.keys, k, count)
	}
	g.buckets[count] = append(bucket, pos)
}

func (g *Grower) unfile(pos components.Position, count int) {
	bucket := g.buckets[count]
	k := slices.Index(bucket, pos)
	if k < 0 {
		panic(fmt.Sprintf("systems: %v missing from toxicity bucket %d", pos, count))
	}
	bucket = slices.Delete(bucket, k, k+1)
	if len(bucket) > 0 {
		g.buckets[count] = bucket
		return
	}
	delete(g.buckets, count)
	if j, found := slices.BinarySearch(g.keys, count); found {
		g.keys = slices.Delete(g.keys, j, j+1)
	}
}

func (g *Grower) index(pos components.Position) int {
	if !g.bounds.Contains(pos) {
		panic(fmt.Sprintf("systems: %v outside grower bounds", pos))
	}
	return g.bounds.Index(pos)
}

// PreferredTarget is the number of cells the grower tries to keep preferred.
func (g *Grower) PreferredTarget() int { return g.target }

// PreferredCount is the number of preferred cells.
func (g *Grower) PreferredCount() int { return g.preferredCount }

// AvailablePreferred is the number of preferred cells without a plant.
func (g *Grower) AvailablePreferred() int { return g.freePreferred.Len() }

// AvailableRegular is the number of regular cells without a plant.
func (g *Grower) AvailableRegular() int { return g.freeRegular.Len() }

// DeathCount returns the deaths recorded at pos (always 0 for Equatorial).
func (g *Grower) DeathCount(pos components.Position) int {
	if g.deaths == nil {
		return 0
	}
	return g.deaths[g.index(pos)]
}
