package main

import (
	"math/rand"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/systems"
)

// PreviewParams holds the slider values.
type PreviewParams struct {
	Width   float32
	Height  float32
	Growth  float32 // plants per step
	Grazing float32 // plants eaten per step
	Deaths  float32 // deaths per step
	Variant systems.GrowthVariant
}

// preview drives a Grower with synthetic planting, grazing and deaths so its
// placement can be watched without animals.
type preview struct {
	bounds components.Bounds
	grower *systems.Grower
	plants []bool
	count  int
	rng    *rand.Rand
	epoch  int
}

func newPreview(p PreviewParams, seed int64) *preview {
	bounds := components.GridBounds(int(p.Width), int(p.Height))
	return &preview{
		bounds: bounds,
		grower: systems.NewGrower(p.Variant, bounds),
		plants: make([]bool, bounds.Area()),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// step grazes, kills and then plants, in that order.
func (pv *preview) step(p PreviewParams) {
	for i := 0; i < int(p.Grazing) && pv.count > 0; i++ {
		pv.graze()
	}
	for i := 0; i < int(p.Deaths); i++ {
		pv.grower.AnimalDiedAt(pv.bounds.At(pv.rng.Intn(pv.bounds.Area())))
	}
	for i := 0; i < int(p.Growth); i++ {
		pos, ok := pv.grower.PlantSpot(pv.rng)
		if !ok {
			break
		}
		pv.plants[pv.bounds.Index(pos)] = true
		pv.count++
	}
	pv.epoch++
}

// graze removes one random plant.
func (pv *preview) graze() {
	k := pv.rng.Intn(pv.count)
	for i, has := range pv.plants {
		if !has {
			continue
		}
		if k == 0 {
			pv.plants[i] = false
			pv.count--
			pv.grower.PlantEaten(pv.bounds.At(i))
			return
		}
		k--
	}
}

// preferredPlants counts plants standing on preferred cells.
func (pv *preview) preferredPlants() int {
	n := 0
	for i, has := range pv.plants {
		if has && pv.grower.IsPreferred(pv.bounds.At(i)) {
			n++
		}
	}
	return n
}

func (pv *preview) maxDeaths() int {
	most := 0
	for i := 0; i < pv.bounds.Area(); i++ {
		most = max(most, pv.grower.DeathCount(pv.bounds.At(i)))
	}
	return most
}
