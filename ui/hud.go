package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/systems"
	"github.com/pthm-cable/evgen/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title           string
	Epoch           int
	Animals         int
	Foliage         int
	FreeFields      int
	EpochsPerSecond float32
	FPS             int32
	Paused          bool
	Topology        string
	Growth          string
	MostPopular     string
	MostPopularN    int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Animals: %d | Foliage: %d | Free: %d", data.Animals, data.Foliage, data.FreeFields),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Epoch: %d | %.1f epochs/s | FPS: %d | %s / %s",
			data.Epoch, data.EpochsPerSecond, data.FPS, data.Topology, data.Growth),
		10, 55, 16, rl.LightGray,
	)

	if data.MostPopular != "" {
		rl.DrawText(
			fmt.Sprintf("Top genome: %s (%d)", data.MostPopular, data.MostPopularN),
			10, 75, 16, rl.LightGray,
		)
	}

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 95, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Stages   *systems.StageRegistry
}

// PerfPanel renders the epoch phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases are listed in pipeline order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Epoch Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s | %.0f epochs/s", data.Stats.AvgEpoch.Round(time.Microsecond), data.Stats.EpochsPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	stages := data.Stages
	if stages == nil {
		stages = systems.NewStageRegistry()
	}
	var kernel time.Duration
	for _, stage := range stages.Stages() {
		avg := data.Stats.PhaseAvg[stage.ID]
		pct := data.Stats.PhasePct[stage.ID]
		if stage.Kernel {
			kernel += avg
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", stage.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
	rl.DrawText(fmt.Sprintf("%-14s %8s", "Map total", kernel.Round(time.Microsecond)), x, y, 12, rl.Gray)
}

// BookmarkPanel lists the most recent bookmarks, newest first.
type BookmarkPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewBookmarkPanel creates a new bookmark panel.
func NewBookmarkPanel(x, y, width int32) *BookmarkPanel {
	return &BookmarkPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (b *BookmarkPanel) SetPosition(x, y int32) {
	b.x = x
	b.y = y
}

// Draw renders the panel.
func (b *BookmarkPanel) Draw(bookmarks []telemetry.Bookmark) {
	r := b.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	rows := max(len(bookmarks), 1)
	r.DrawPanel(b.x, b.y, b.width, int32(rows)*lineHeight+lineHeight+padding*2+4)

	y := b.y + padding
	rl.DrawText("Bookmarks", b.x+padding, y, 14, rl.White)
	y += lineHeight + 4

	if len(bookmarks) == 0 {
		rl.DrawText("none yet", b.x+padding, y, r.Theme.FontSize, rl.Gray)
		return
	}
	for i := len(bookmarks) - 1; i >= 0; i-- {
		bm := bookmarks[i]
		rl.DrawText(
			fmt.Sprintf("%5d  %s", bm.Epoch, bm.Description),
			b.x+padding, y, r.Theme.FontSize, bookmarkColor(bm.Type),
		)
		y += lineHeight
	}
}

func bookmarkColor(t telemetry.BookmarkType) rl.Color {
	switch t {
	case telemetry.BookmarkExtinction, telemetry.BookmarkPopulationCrash, telemetry.BookmarkFoliageDepleted:
		return rl.Color{R: 230, G: 110, B: 100, A: 255}
	case telemetry.BookmarkPopulationBoom, telemetry.BookmarkGenomeDominance:
		return rl.Color{R: 120, G: 210, B: 130, A: 255}
	default:
		return rl.LightGray
	}
}
