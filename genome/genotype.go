// Package genome implements direction genomes: crossover, mutation and the
// read cursor that steers an animal.
package genome

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// NumValues is the number of distinct gene values, one per compass point.
const NumValues = 8

// Genotype is a fixed-length sequence of direction genes plus a read cursor.
// Genes never change after construction; only the cursor moves.
type Genotype struct {
	genes     []uint8
	cursor    int
	behaviour Behaviour
}

// NewRandom creates a genotype with a random cursor and random genes.
func NewRandom(p Params, rng *rand.Rand) *Genotype {
	g := &Genotype{
		genes:     make([]uint8, p.Length),
		cursor:    rng.Intn(p.Length),
		behaviour: p.Behaviour,
	}
	for i := range g.genes {
		g.genes[i] = uint8(rng.Intn(NumValues))
	}
	return g
}

// FromGenes builds a genotype from explicit genes.
func FromGenes(genes []uint8, cursor int, behaviour Behaviour) *Genotype {
	if len(genes) == 0 {
		panic("genome: empty gene sequence")
	}
	if cursor < 0 || cursor >= len(genes) {
		panic(fmt.Sprintf("genome: cursor %d out of range [0,%d)", cursor, len(genes)))
	}
	g := &Genotype{
		genes:     make([]uint8, len(genes)),
		cursor:    cursor,
		behaviour: behaviour,
	}
	for i, v := range genes {
		if v >= NumValues {
			panic(fmt.Sprintf("genome: gene value %d out of range", v))
		}
		g.genes[i] = v
	}
	return g
}

// Parse reads a digit string such as "01234567" into a genotype.
func Parse(s string, cursor int, behaviour Behaviour) (*Genotype, error) {
	genes := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c >= '0'+NumValues {
			return nil, fmt.Errorf("invalid gene %q at %d", c, i)
		}
		genes[i] = c - '0'
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("empty genome")
	}
	if cursor < 0 || cursor >= len(genes) {
		return nil, fmt.Errorf("cursor %d out of range", cursor)
	}
	return FromGenes(genes, cursor, behaviour), nil
}

// Crossover creates a child from parents a and b. ratio is a's share of the
// pair's energy and must lie strictly between 0 and 1; the stronger parent
// contributes the larger segment.
func Crossover(a, b *Genotype, ratio float64, p Params, rng *rand.Rand, sampler *IndexSampler) *Genotype {
	cursor := rng.Intn(p.Length)
	switchSides := rng.Intn(2) == 1
	return CrossoverSides(a, b, ratio, switchSides, cursor, p, rng, sampler)
}

// CrossoverSides is Crossover with the child's cursor and the side a's
// segment is taken from fixed by the caller. With switchSides false a
// supplies the leading genes, otherwise the trailing ones.
func CrossoverSides(a, b *Genotype, ratio float64, switchSides bool, cursor int, p Params, rng *rand.Rand, sampler *IndexSampler) *Genotype {
	if !(ratio > 0 && ratio < 1) {
		panic(fmt.Sprintf("genome: crossover ratio %v outside (0,1)", ratio))
	}
	if len(a.genes) != p.Length || len(b.genes) != p.Length {
		panic(fmt.Sprintf("genome: parent lengths %d/%d, want %d", len(a.genes), len(b.genes), p.Length))
	}

	n := p.Length
	cut := int(math.Floor(ratio * float64(n)))
	lo, hi := 0, cut
	if switchSides {
		cut = n - cut
		lo, hi = cut, n
	}

	genes := make([]uint8, n)
	copy(genes, b.genes)
	copy(genes[lo:hi], a.genes[lo:hi])

	child := &Genotype{genes: genes, cursor: cursor, behaviour: p.Behaviour}
	child.mutate(p, rng, sampler)
	return child
}

func (g *Genotype) mutate(p Params, rng *rand.Rand, sampler *IndexSampler) {
	k := p.MinMutations
	if p.MaxMutations > p.MinMutations {
		k += rng.Intn(p.MaxMutations - p.MinMutations + 1)
	}
	if k == 0 {
		return
	}

	for _, idx := range sampler.PollSeveral(len(g.genes), k, rng) {
		old := g.genes[idx]
		switch p.Mutation {
		case StepMutation:
			if rng.Intn(2) == 0 {
				g.genes[idx] = (old + 1) % NumValues
			} else {
				g.genes[idx] = (old + NumValues - 1) % NumValues
			}
		default:
			v := old
			for v == old {
				v = uint8(rng.Intn(NumValues))
			}
			g.genes[idx] = v
		}
	}
}

// NextDirection returns the gene under the cursor and advances the cursor.
// Erratic genomes draw on every call and jump anywhere with probability 1/5.
func (g *Genotype) NextDirection(rng *rand.Rand) int {
	gene := int(g.genes[g.cursor])
	if g.behaviour == Erratic && rng.Intn(5) == 0 {
		g.cursor = rng.Intn(len(g.genes))
	} else {
		g.cursor = (g.cursor + 1) % len(g.genes)
	}
	return gene
}

// Len returns the number of genes.
func (g *Genotype) Len() int { return len(g.genes) }

// Cursor returns the index of the next gene to be read.
func (g *Genotype) Cursor() int { return g.cursor }

// Behaviour returns the cursor behaviour.
func (g *Genotype) Behaviour() Behaviour { return g.behaviour }

// Gene returns the gene at index i.
func (g *Genotype) Gene(i int) int { return int(g.genes[i]) }

// Genes returns a copy of the gene sequence.
func (g *Genotype) Genes() []uint8 {
	out := make([]uint8, len(g.genes))
	copy(out, g.genes)
	return out
}

// Equal compares gene sequences. Cursor and behaviour are ignored.
func (g *Genotype) Equal(o *Genotype) bool {
	if len(g.genes) != len(o.genes) {
		return false
	}
	for i := range g.genes {
		if g.genes[i] != o.genes[i] {
			return false
		}
	}
	return true
}

// String renders the genes as digits, e.g. "0045077623". Equal genotypes
// render identically, so the string doubles as a map key.
func (g *Genotype) String() string {
	var sb strings.Builder
	sb.Grow(len(g.genes))
	for _, v := range g.genes {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}
