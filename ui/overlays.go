package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayPreferred OverlayID = "preferred_spots"
	OverlayGridLines OverlayID = "grid_lines"
	OverlayDominant  OverlayID = "dominant_genome"
	OverlayTrails    OverlayID = "trails"
	OverlayEffects   OverlayID = "effects"
	OverlayStats     OverlayID = "stats"
	OverlayBookmarks OverlayID = "bookmarks"
	OverlayPerf      OverlayID = "perf"
)

// Overlay categories, in display order.
const (
	CategoryMap    = "map"
	CategoryPanels = "panels"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // 0 = no key
	KeyLabel  string // shown next to the name
	Category  string
	Exclusive []OverlayID // switched off when this one is switched on
	Default   bool
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayPreferred, Name: "Preferred Spots", Key: rl.KeyP, KeyLabel: "P", Category: CategoryMap, Default: true},
	{ID: OverlayGridLines, Name: "Grid Lines", Key: rl.KeyG, KeyLabel: "G", Category: CategoryMap},
	{ID: OverlayDominant, Name: "Dominant Genome", Key: rl.KeyD, KeyLabel: "D", Category: CategoryMap, Exclusive: []OverlayID{OverlayTrails}},
	{ID: OverlayTrails, Name: "Trails", Key: rl.KeyT, KeyLabel: "T", Category: CategoryMap, Exclusive: []OverlayID{OverlayDominant}},
	{ID: OverlayEffects, Name: "Effects", Key: rl.KeyE, KeyLabel: "E", Category: CategoryMap, Default: true},

	{ID: OverlayStats, Name: "Statistics", Key: rl.KeyS, KeyLabel: "S", Category: CategoryPanels, Default: true},
	{ID: OverlayBookmarks, Name: "Bookmarks", Key: rl.KeyB, KeyLabel: "B", Category: CategoryPanels},
	{ID: OverlayPerf, Name: "Performance", Key: rl.KeyF3, KeyLabel: "F3", Category: CategoryPanels},
}

// OverlayRegistry tracks which overlays are switched on.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	index       map[OverlayID]int
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard overlays in their
// default state.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{
		index:   make(map[OverlayID]int),
		enabled: make(map[OverlayID]bool),
	}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay, replacing any with the same ID.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.descriptors[i] = desc
	} else {
		r.index[desc.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, desc)
	}
	r.enabled[desc.ID] = desc.Default
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.index[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Switching one on switches off the
// overlays it excludes.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, other := range r.descriptors[i].Exclusive {
			r.enabled[other] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns the overlays of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, d := range r.descriptors {
		if d.Category == category {
			result = append(result, d)
		}
	}
	return result
}

// Categories returns the categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.descriptors {
		if !slices.Contains(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. It reports the overlay,
// its new state and whether any overlay was bound.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, d := range r.descriptors {
		if d.Key != 0 && d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays lists the active overlays in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, d := range r.descriptors {
		if r.enabled[d.ID] {
			result = append(result, d.ID)
		}
	}
	return result
}
