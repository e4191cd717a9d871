package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/renderer"
	"github.com/pthm-cable/evgen/systems"
	"github.com/pthm-cable/evgen/ui"
)

var colorBackground = rl.Color{R: 14, G: 16, B: 20, A: 255}

const controlsLegend = "SPACE pause | N step | R reset | ,/. speed | arrows/wheel camera | click track | TAB controls"

// Draw renders the map, overlays and panels.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	m := g.sim.Map()
	g.grid.Draw(g.camera, m, renderer.GridOptions{
		ShowPreferred: g.overlays.IsEnabled(ui.OverlayPreferred),
		ShowLines:     g.overlays.IsEnabled(ui.OverlayGridLines),
		ToxicPalette:  m.Settings().Growth == systems.ToxicCorpses,
	})
	g.animals.Draw(g.camera, g.living, g.progress(), g.highlight())
	g.drawMapOverlays()

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and every enabled panel.
func (g *Game) drawUI() {
	m := g.sim.Map()
	stats := g.sim.LastStats()
	perf := g.sim.Perf().Stats()

	mostPopular, mostPopularN := g.sim.Popularity().MostPopular()
	g.hud.Draw(ui.HUDData{
		Title:           fmt.Sprintf("Evolution Grid (seed %d)", g.sim.Seed()),
		Epoch:           m.Epoch(),
		Animals:         len(g.living),
		Foliage:         m.FoliageCount(),
		FreeFields:      m.FreeFieldCount(),
		EpochsPerSecond: float32(perf.EpochsPerSecond),
		FPS:             rl.GetFPS(),
		Paused:          g.state.Paused,
		Topology:        m.Settings().Topology.String(),
		Growth:          m.Settings().Growth.String(),
		MostPopular:     mostPopular,
		MostPopularN:    mostPopularN,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	res := g.controls.Draw(&g.state, g.overlays)
	if res.TogglePause {
		g.togglePause()
	}
	if res.Step && g.state.Paused {
		g.advance()
	}
	if res.Toggled != "" {
		g.overlays.Toggle(res.Toggled)
	}

	y := int32(120)
	if g.controls.IsVisible() {
		y = 120 + g.controlsHeight()
	}
	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.statsPanel.SetPosition(10, y)
		y = g.statsPanel.Draw(stats) + 10
	}

	right := int32(g.screenWidth) - 330
	if g.overlays.IsEnabled(ui.OverlayBookmarks) {
		g.bookmarkPanel.SetPosition(right, int32(g.screenHeight)-200)
		g.bookmarkPanel.Draw(g.sim.RecentBookmarks())
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(right, int32(g.screenHeight)-340)
		g.perfPanel.Draw(ui.PerfPanelData{Stats: perf, Stages: g.stages})
	}

	g.inspector.Draw()

	// Reset is applied last so nothing above draws a half-built run.
	if res.Reset {
		g.reset()
	}
}

func (g *Game) controlsHeight() int32 {
	return g.controls.Height() + 10
}
