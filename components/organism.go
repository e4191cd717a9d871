// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/evgen/genome"

// Identity holds the animal's stable id. Ids are handed out in strictly
// increasing order and never reused, unlike ECS entity ids.
type Identity struct {
	ID uint64 `inspect:"label"`
}

// Rotation is the compass direction the animal faces.
type Rotation struct {
	Facing Direction `inspect:"dir"`
}

// Energy tracks an animal's metabolic state.
type Energy struct {
	Value int  `inspect:"bar,max:100"`
	Alive bool `inspect:"bool"`
}

// Lifecycle holds counters accumulated over an animal's life.
type Lifecycle struct {
	Age       int `inspect:"label"`
	Children  int `inspect:"label"`
	Eaten     int `inspect:"label"`
	BornEpoch int `inspect:"label"`
	DiedEpoch int `inspect:"skip"` // valid once Energy.Alive is false
}

// Genome attaches a genotype to an animal.
type Genome struct {
	Genotype *genome.Genotype `inspect:"skip"`
}
