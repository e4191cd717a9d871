package systems

// Stage describes one timed step of an epoch for display.
type Stage struct {
	ID          string // perf phase name
	Name        string
	Description string
	Kernel      bool // runs inside the map's AdvanceEpoch
}

// pipelineStages are in execution order. IDs match the perf phase names.
var pipelineStages = []Stage{
	{"cleanup", "Cleanup", "Removes animals that died last epoch", true},
	{"move", "Move", "Turns and steps every animal", true},
	{"feed", "Feed & Breed", "Top animal eats, top pair procreates", true},
	{"grow", "Grow", "Plants the day's foliage", true},
	{"age", "Age", "Ages animals and marks the starved", true},
	{"telemetry", "Telemetry", "Collects stats and bookmarks", false},
}

// StageRegistry looks up epoch stages by phase name so the perf panel and
// the collector agree on naming.
type StageRegistry struct {
	byID map[string]int
}

// NewStageRegistry indexes the epoch stages.
func NewStageRegistry() *StageRegistry {
	r := &StageRegistry{byID: make(map[string]int, len(pipelineStages))}
	for i, s := range pipelineStages {
		r.byID[s.ID] = i
	}
	return r
}

// Stages returns the stages in execution order.
func (r *StageRegistry) Stages() []Stage {
	return pipelineStages
}

// Stage returns the stage with the given phase name.
func (r *StageRegistry) Stage(id string) (Stage, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Stage{}, false
	}
	return pipelineStages[i], true
}

// Name returns the display name for a phase, or the phase itself when it
// is not a known stage.
func (r *StageRegistry) Name(id string) string {
	if s, ok := r.Stage(id); ok {
		return s.Name
	}
	return id
}
