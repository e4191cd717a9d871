// Package inspector draws the tracked-animal panel. Fields are laid out by
// reflecting over the inspect tags of world.AnimalInfo.
package inspector

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// MaxTrail is how many past positions are kept for the trail overlay.
const MaxTrail = 32

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorDied        = rl.Color{R: 230, G: 110, B: 100, A: 255}
)

// AnimalSource looks up animals by id.
type AnimalSource interface {
	Animal(id uint64) (world.AnimalInfo, bool)
}

// Inspector tracks one animal and renders its panel. The last known state
// is kept after the animal is removed so its death stays visible.
type Inspector struct {
	tracked    uint64
	hasTracked bool
	last       world.AnimalInfo
	trail      []components.Position
	fullEnergy int
	panelX     int32
	panelY     int32
}

// NewInspector creates a new inspector instance. fullEnergy scales the
// energy bar.
func NewInspector(screenWidth int32, fullEnergy int) *Inspector {
	return &Inspector{
		fullEnergy: max(fullEnergy, 1),
		panelX:     screenWidth - PanelWidth - 10,
		panelY:     10,
	}
}

// Resize moves the panel after a window resize.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Track starts following an animal.
func (ins *Inspector) Track(info world.AnimalInfo) {
	ins.tracked = info.ID
	ins.hasTracked = true
	ins.last = info
	ins.trail = append(ins.trail[:0], info.Pos)
}

// Untrack clears the current selection.
func (ins *Inspector) Untrack() {
	ins.hasTracked = false
	ins.trail = ins.trail[:0]
}

// Tracked returns the tracked animal id.
func (ins *Inspector) Tracked() (uint64, bool) {
	return ins.tracked, ins.hasTracked
}

// Last returns the most recent state of the tracked animal.
func (ins *Inspector) Last() world.AnimalInfo {
	return ins.last
}

// Trail returns the recent positions of the tracked animal, oldest first.
func (ins *Inspector) Trail() []components.Position {
	return ins.trail
}

// Refresh pulls the tracked animal's state after an epoch.
func (ins *Inspector) Refresh(src AnimalSource) {
	if !ins.hasTracked {
		return
	}
	info, ok := src.Animal(ins.tracked)
	if !ok {
		// Removed at cleanup; keep the state it died with.
		ins.last.Alive = false
		return
	}
	ins.last = info
	if n := len(ins.trail); info.Alive && (n == 0 || ins.trail[n-1] != info.Pos) {
		if n == MaxTrail {
			copy(ins.trail, ins.trail[1:])
			ins.trail = ins.trail[:n-1]
		}
		ins.trail = append(ins.trail, info.Pos)
	}
}

// Status describes whether the tracked animal lives.
func (ins *Inspector) Status() string {
	if ins.last.Alive {
		return "alive for " + strconv.Itoa(ins.last.Age) + " epochs"
	}
	return "died at epoch " + strconv.Itoa(ins.last.DiedEpoch)
}

// Contains reports whether a screen point is on the panel.
func (ins *Inspector) Contains(mouseX, mouseY float32) bool {
	if !ins.hasTracked {
		return false
	}
	return int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+ins.panelHeight()
}

// HandleClick closes the panel when its close button is hit. It reports
// whether the click was consumed by the panel.
func (ins *Inspector) HandleClick(mouseX, mouseY float32) bool {
	if !ins.Contains(mouseX, mouseY) {
		return false
	}
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
		ins.Untrack()
	}
	return true
}

func (ins *Inspector) fields() []Field {
	fields := ExtractFields(ins.last)
	for i := range fields {
		if fields[i].Name == "Energy" {
			fields[i].Max = float32(ins.fullEnergy)
		}
	}
	return fields
}

func (ins *Inspector) contentWidth() int32 {
	return PanelWidth - 2*PanelPadding
}

// panelHeight computes the dynamic panel height.
func (ins *Inspector) panelHeight() int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 22 // status line
	height += 8  // separator
	for _, f := range ins.fields() {
		height += FieldHeight(f)
	}
	height += 12 // separator
	height += 20 // genome header
	height += genomeHeight(len(ins.last.Genome), ins.contentWidth())
	height += PanelPadding
	return height
}

// Draw renders the panel if an animal is tracked.
func (ins *Inspector) Draw() {
	if !ins.hasTracked {
		return
	}

	panelHeight := ins.panelHeight()

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("ANIMAL #%d", ins.last.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	statusColor := ColorHeaderText
	if !ins.last.Alive {
		statusColor = ColorDied
	}
	rl.DrawText(ins.Status(), x, y, 14, statusColor)
	y += 22

	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	for _, f := range ins.fields() {
		y += DrawField(x, y, f)
	}

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	ins.drawSectionHeader(x, y, fmt.Sprintf("GENOME (gene %d active)", ins.last.Cursor))
	y += 20
	DrawGenome(x, y, ins.contentWidth(), ins.last.Genome, ins.last.Cursor)
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}
