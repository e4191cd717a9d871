package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/camera"
	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

// ParticleType distinguishes effect particles.
type ParticleType uint8

const (
	ParticleBirth ParticleType = iota
	ParticleDeath
	ParticleTeleport
)

// particleLife is how many frames an effect lasts.
const particleLife = 40

// EffectParticle is a fading ring marking an event on a cell.
type EffectParticle struct {
	Pos     components.Position
	Type    ParticleType
	Life    int
	MaxLife int
}

// ParticleRenderer renders effect particles for births, deaths and
// portal crossings.
type ParticleRenderer struct {
	layout    Layout
	particles []EffectParticle
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(layout Layout) *ParticleRenderer {
	return &ParticleRenderer{layout: layout}
}

// Emit adds particles for the events of one epoch.
func (r *ParticleRenderer) Emit(report world.EpochReport, moves []world.MoveEvent) {
	for _, b := range report.Births {
		r.add(b.Pos, ParticleBirth)
	}
	for _, d := range report.Deaths {
		r.add(d.Pos, ParticleDeath)
	}
	if report.Teleports == 0 {
		return
	}
	for _, mv := range moves {
		if !isStep(mv.From, mv.To) {
			r.add(mv.To, ParticleTeleport)
		}
	}
}

func (r *ParticleRenderer) add(pos components.Position, typ ParticleType) {
	r.particles = append(r.particles, EffectParticle{Pos: pos, Type: typ, Life: particleLife, MaxLife: particleLife})
}

// Update ages particles by one frame and drops expired ones.
func (r *ParticleRenderer) Update() {
	live := r.particles[:0]
	for _, p := range r.particles {
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	r.particles = live
}

// Len returns the number of live particles.
func (r *ParticleRenderer) Len() int {
	return len(r.particles)
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(cam *camera.Camera) {
	for i := range r.particles {
		p := &r.particles[i]

		// Calculate life ratio for fade
		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		// Get color based on type
		var color rl.Color
		switch p.Type {
		case ParticleBirth:
			// Soft green
			color = rl.Color{R: 120, G: 230, B: 140, A: uint8(lifeRatio * 200)}
		case ParticleDeath:
			// Grey/brown
			color = rl.Color{R: 100, G: 80, B: 60, A: uint8(lifeRatio * 180)}
		case ParticleTeleport:
			// Violet
			color = rl.Color{R: 170, G: 90, B: 255, A: uint8(lifeRatio * 220)}
		}

		// Rings expand as they fade
		radius := r.layout.CellSize * cam.Zoom * (0.3 + 0.4*(1-lifeRatio))
		forEachScreenPos(cam, r.layout, p.Pos, func(sx, sy float32) {
			half := r.layout.CellSize * cam.Zoom / 2
			rl.DrawCircleLinesV(rl.Vector2{X: sx + half, Y: sy + half}, radius, color)
		})
	}
}
