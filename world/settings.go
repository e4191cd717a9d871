package world

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/evgen/genome"
	"github.com/pthm-cable/evgen/systems"
)

// MaxSide is the largest supported grid side.
const MaxSide = 50

// Settings are the validated scalars a Map is built from.
type Settings struct {
	Width, Height int
	Topology      systems.Topology
	Growth        systems.GrowthVariant

	StartingFoliage int
	DailyFoliage    int
	EnergyGain      int

	StartingAnimals      int
	StartingEnergy       int
	MinProcreationEnergy int
	ProcreationCost      int

	Genome genome.Params
}

// Validate reports every rule the settings break.
func (s Settings) Validate() error {
	var errs []error
	if s.Width < 1 || s.Width > MaxSide || s.Height < 1 || s.Height > MaxSide {
		errs = append(errs, fmt.Errorf("grid %dx%d outside 1..%d", s.Width, s.Height, MaxSide))
	}
	if s.StartingFoliage < 0 || s.StartingFoliage > s.Width*s.Height {
		errs = append(errs, fmt.Errorf("starting foliage %d outside 0..%d", s.StartingFoliage, s.Width*s.Height))
	}
	if s.DailyFoliage < 0 {
		errs = append(errs, fmt.Errorf("daily foliage %d is negative", s.DailyFoliage))
	}
	if s.EnergyGain < 0 {
		errs = append(errs, fmt.Errorf("energy gain %d is negative", s.EnergyGain))
	}
	if s.StartingAnimals < 0 {
		errs = append(errs, fmt.Errorf("starting animals %d is negative", s.StartingAnimals))
	}
	if s.StartingEnergy < 1 {
		errs = append(errs, fmt.Errorf("starting energy %d must be positive", s.StartingEnergy))
	}
	if s.ProcreationCost < 1 || s.ProcreationCost > s.MinProcreationEnergy {
		errs = append(errs, fmt.Errorf("need 1 <= procreation cost (%d) <= min procreation energy (%d)",
			s.ProcreationCost, s.MinProcreationEnergy))
	}
	if err := s.Genome.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
