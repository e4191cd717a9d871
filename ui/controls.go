package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed slider bounds in epochs per second.
const (
	MinEpochsPerSecond = 1
	MaxEpochsPerSecond = 120
)

// ControlsState is what the controls panel reads and edits each frame.
type ControlsState struct {
	Paused          bool
	EpochsPerSecond float32
}

// ControlsResult reports the buttons pressed this frame.
type ControlsResult struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Toggled     OverlayID // Empty when no overlay button was pressed
}

// ControlsPanel renders the left-side controls panel: simulation buttons,
// the speed slider and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32 // Height of the last drawn frame
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point falls on the panel, so clicks on
// it are not forwarded to the map.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height)
}

// Height returns the panel height as of the last drawn frame.
func (c *ControlsPanel) Height() int32 {
	return c.height
}

func (c *ControlsPanel) panelHeight(overlays *OverlayRegistry) int32 {
	r := c.renderer
	items := int32(len(overlays.All()) + len(overlays.Categories()))
	return r.Theme.Padding*3 + 30 + 40 + r.Theme.LineHeight + items*(r.Theme.LineHeight+4)
}

// Draw renders the controls panel and applies the speed slider to state.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) ControlsResult {
	var res ControlsResult
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	c.height = c.panelHeight(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)
	buttonW := (inner - 2*float32(padding)) / 3

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Start"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: 24}, pauseText) {
		res.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonW + float32(padding), Y: y, Width: buttonW, Height: 24}, "Step") {
		res.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(buttonW+float32(padding)), Y: y, Width: buttonW, Height: 24}, "Reset") {
		res.Reset = true
	}
	y += 30

	rl.DrawText(fmt.Sprintf("Speed: %.0f epochs/s", state.EpochsPerSecond), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	state.EpochsPerSecond = gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: inner - 50, Height: 16},
		fmt.Sprint(MinEpochsPerSecond), fmt.Sprint(MaxEpochsPerSecond),
		state.EpochsPerSecond, MinEpochsPerSecond, MaxEpochsPerSecond,
	)
	y += 24

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(lineHeight + 4)

		for _, desc := range overlays.ByCategory(category) {
			if c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), inner) {
				res.Toggled = desc.ID
			}
			y += float32(lineHeight + 4)
		}
	}

	return res
}

// drawToggle draws a single overlay toggle button and reports whether it was
// pressed.
func (c *ControlsPanel) drawToggle(x, y float32, desc OverlayDescriptor, enabled bool, width float32) bool {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(int32(x), int32(y)+4, 8, 8, statusColor)

	label := desc.Name
	if desc.KeyLabel != "" {
		label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
	}
	return gui.Button(rl.Rectangle{X: x + 14, Y: y, Width: width - 14, Height: float32(r.Theme.LineHeight)}, label)
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case CategoryMap:
		return "Map"
	case CategoryPanels:
		return "Panels"
	default:
		return cat
	}
}
