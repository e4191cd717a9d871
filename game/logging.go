package game

import (
	"log/slog"

	"github.com/pthm-cable/evgen/world"
)

func logTracked(a world.AnimalInfo) {
	slog.Info("animal_tracked",
		"id", a.ID,
		"pos", a.Pos.String(),
		"energy", a.Energy,
		"age", a.Age,
		"genome", a.Genome,
	)
}

func logPause(paused bool, epoch int) {
	if paused {
		slog.Info("simulation_paused", "reason", "user", "epoch", epoch)
		return
	}
	slog.Info("simulation_resumed", "epoch", epoch)
}
