package sim

import (
	"errors"

	"github.com/pthm-cable/evgen/config"
	"github.com/pthm-cable/evgen/genome"
	"github.com/pthm-cable/evgen/systems"
	"github.com/pthm-cable/evgen/world"
)

// SettingsFromConfig maps the loaded configuration onto kernel settings.
// Variant names are resolved to their closed tags here.
func SettingsFromConfig(cfg *config.Config) (world.Settings, error) {
	topology, errTopology := systems.ParseTopology(cfg.World.Variant)
	growth, errGrowth := systems.ParseGrowthVariant(cfg.Foliage.Variant)
	mutation, errMutation := genome.ParseMutation(cfg.Genome.Mutation)
	behaviour, errBehaviour := genome.ParseBehaviour(cfg.Genome.Behaviour)
	if err := errors.Join(errTopology, errGrowth, errMutation, errBehaviour); err != nil {
		return world.Settings{}, err
	}

	s := world.Settings{
		Width:    cfg.World.Width,
		Height:   cfg.World.Height,
		Topology: topology,
		Growth:   growth,

		StartingFoliage: cfg.Foliage.Starting,
		DailyFoliage:    cfg.Foliage.DailyGrowth,
		EnergyGain:      cfg.Foliage.EnergyGain,

		StartingAnimals:      cfg.Animals.Starting,
		StartingEnergy:       cfg.Animals.StartingEnergy,
		MinProcreationEnergy: cfg.Animals.MinProcreationEnergy,
		ProcreationCost:      cfg.Animals.ProcreationEnergyLoss,

		Genome: genome.Params{
			Length:       cfg.Genome.Length,
			MinMutations: cfg.Genome.MinMutations,
			MaxMutations: cfg.Genome.MaxMutations,
			Mutation:     mutation,
			Behaviour:    behaviour,
		},
	}
	return s, s.Validate()
}
