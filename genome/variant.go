package genome

import (
	"fmt"
	"strings"
)

// MutationVariant selects how a mutated gene changes.
type MutationVariant uint8

const (
	// RandomMutation replaces the gene with a different uniformly drawn value.
	RandomMutation MutationVariant = iota
	// StepMutation moves the gene one step up or down the compass.
	StepMutation
)

// Behaviour selects how the cursor advances between reads.
type Behaviour uint8

const (
	// Predestined genomes always advance the cursor by one.
	Predestined Behaviour = iota
	// Erratic genomes jump to a random gene with probability 1/5.
	Erratic
)

// ParseMutation maps a configuration name to a MutationVariant.
func ParseMutation(s string) (MutationVariant, error) {
	switch strings.ToLower(s) {
	case "random":
		return RandomMutation, nil
	case "step":
		return StepMutation, nil
	}
	return 0, fmt.Errorf("unknown mutation variant %q", s)
}

// ParseBehaviour maps a configuration name to a Behaviour. "crazy" is
// accepted as a synonym for erratic.
func ParseBehaviour(s string) (Behaviour, error) {
	switch strings.ToLower(s) {
	case "predestined":
		return Predestined, nil
	case "crazy", "erratic":
		return Erratic, nil
	}
	return 0, fmt.Errorf("unknown behaviour variant %q", s)
}

func (m MutationVariant) String() string {
	if m == StepMutation {
		return "step"
	}
	return "random"
}

func (b Behaviour) String() string {
	if b == Erratic {
		return "crazy"
	}
	return "predestined"
}

// Params are the genome settings shared by every animal of a simulation.
type Params struct {
	Length       int
	MinMutations int
	MaxMutations int
	Mutation     MutationVariant
	Behaviour    Behaviour
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if p.Length < 1 {
		return fmt.Errorf("genome length must be >= 1, got %d", p.Length)
	}
	if p.MinMutations < 0 || p.MinMutations > p.MaxMutations || p.MaxMutations > p.Length {
		return fmt.Errorf("need 0 <= min mutations (%d) <= max mutations (%d) <= length (%d)",
			p.MinMutations, p.MaxMutations, p.Length)
	}
	return nil
}
