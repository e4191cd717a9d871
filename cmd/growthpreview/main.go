// Foliage growth preview tool - interactive visualization of the grower
// variants with sliders.
//
// Usage: go run ./cmd/growthpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 30
	stepInterval = 0.1 // seconds between animated steps
)

var (
	colorGround    = rl.Color{R: 60, G: 52, B: 40, A: 255}
	colorPreferred = rl.Color{R: 52, G: 92, B: 48, A: 255}
	colorPlant     = rl.Color{R: 120, G: 210, B: 90, A: 255}
	colorDeath     = rl.Color{R: 170, G: 60, B: 160, A: 255}
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Foliage Growth Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := PreviewParams{
		Width:   20,
		Height:  10,
		Growth:  2,
		Grazing: 1,
		Deaths:  1,
		Variant: systems.Equatorial,
	}
	seed := int64(12345)
	pv := newPreview(params, seed)

	animating := false
	var sinceStep float32

	for !rl.WindowShouldClose() {
		if animating {
			sinceStep += rl.GetFrameTime()
			for sinceStep >= stepInterval {
				pv.step(params)
				sinceStep -= stepInterval
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawGrid(pv)

		statsY := int32(previewSize + 25)
		g := pv.grower
		rl.DrawText(fmt.Sprintf("Step: %d  Plants: %d (%d on preferred)", pv.epoch, pv.count, pv.preferredPlants()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Preferred: %d / target %d  Free: %d preferred, %d regular",
			g.PreferredCount(), g.PreferredTarget(), g.AvailablePreferred(), g.AvailableRegular()), 15, statsY+20, 16, rl.DarkGray)
		if g.Variant() == systems.ToxicCorpses {
			rl.DrawText(fmt.Sprintf("Most deaths on one cell: %d", pv.maxDeaths()), 15, statsY+40, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Growth Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Changing the grid size restarts the preview
		var rebuild bool
		params.Width, rebuild = slider(panelX, &panelY, "Width (cells)", "1", "50", params.Width, 1, 50, true, rebuild)
		params.Height, rebuild = slider(panelX, &panelY, "Height (cells)", "1", "50", params.Height, 1, 50, true, rebuild)
		params.Growth, _ = slider(panelX, &panelY, "Plants per step", "0", "20", params.Growth, 0, 20, true, false)
		params.Grazing, _ = slider(panelX, &panelY, "Plants eaten per step", "0", "20", params.Grazing, 0, 20, true, false)
		params.Deaths, _ = slider(panelX, &panelY, "Deaths per step (toxic only)", "0", "10", params.Deaths, 0, 10, true, false)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 180, Height: 30}, "Variant: "+params.Variant.String()) {
			if params.Variant == systems.Equatorial {
				params.Variant = systems.ToxicCorpses
			} else {
				params.Variant = systems.Equatorial
			}
			rebuild = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step") {
			pv.step(params)
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			seed++
			rebuild = true
		}
		panelY += 45

		if rebuild {
			pv = newPreview(params, seed)
		}

		rl.DrawText("Green cells are preferred; bright dots are plants.", int32(panelX), int32(panelY), 14, rl.Gray)
		rl.DrawText("Purple rings grow with the death count.", int32(panelX), int32(panelY)+18, 14, rl.Gray)

		rl.EndDrawing()
	}
}

// slider draws a labelled integer slider and reports whether it changed,
// folded into changed.
func slider(x float32, y *float32, label, lo, hi string, value, minV, maxV float32, integer, changed bool) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: *y, Width: float32(panelWidth - 100), Height: 20},
		lo, hi,
		value, minV, maxV,
	)
	if integer {
		next = float32(int(next + 0.5))
	}
	rl.DrawText(fmt.Sprintf("%.0f", next), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next, changed || next != value
}

// drawGrid renders the grower state north-up.
func drawGrid(pv *preview) {
	w, h := pv.bounds.Width(), pv.bounds.Height()
	cell := min(float32(previewSize)/float32(w), float32(previewSize)/float32(h))
	mostDeaths := max(pv.maxDeaths(), 1)

	for i := 0; i < pv.bounds.Area(); i++ {
		pos := pv.bounds.At(i)
		x := 10 + float32(pos.X)*cell
		y := 10 + float32(h-1-pos.Y)*cell

		ground := colorGround
		if pv.grower.IsPreferred(pos) {
			ground = colorPreferred
		}
		rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: cell - 1, Y: cell - 1}, ground)

		if d := pv.grower.DeathCount(pos); d > 0 {
			r := cell * 0.45 * float32(d) / float32(mostDeaths)
			rl.DrawCircleLines(int32(x+cell/2), int32(y+cell/2), r, colorDeath)
		}
		if pv.plants[i] {
			rl.DrawCircleV(rl.Vector2{X: x + cell/2, Y: y + cell/2}, cell*0.2, colorPlant)
		}
	}
	rl.DrawRectangleLines(10, 10, int32(cell*float32(w)), int32(cell*float32(h)), rl.DarkGray)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
