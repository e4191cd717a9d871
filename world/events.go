package world

import "github.com/pthm-cable/evgen/components"

// Phase names a step of the epoch pipeline. Values match the stage ids in
// systems.StageRegistry.
type Phase string

const (
	PhaseCleanup Phase = "cleanup"
	PhaseMove    Phase = "move"
	PhaseFeed    Phase = "feed"
	PhaseGrow    Phase = "grow"
	PhaseAge     Phase = "age"
)

// MoveEvent records one animal relocation during the move step.
type MoveEvent struct {
	ID     uint64
	From   components.Position
	To     components.Position
	Facing components.Direction
}

// Birth describes a child placed during the feed step.
type Birth struct {
	ID      uint64
	ParentA uint64
	ParentB uint64
	Pos     components.Position
	Energy  int
	Genome  string
}

// Death describes an animal removed during cleanup.
type Death struct {
	ID        uint64
	Pos       components.Position
	Age       int
	Children  int
	Eaten     int
	DiedEpoch int
	Genome    string
}

// EpochReport summarises what happened during one AdvanceEpoch call.
type EpochReport struct {
	Epoch       int // epoch that was completed
	Births      []Birth
	Deaths      []Death
	Meals       int
	PlantsGrown int
	Wraps       int
	Reflections int
	Teleports   int
}
