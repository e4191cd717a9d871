package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/components"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorDirBg       = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorDirNeedle   = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
	ColorGene        = rl.Color{R: 60, G: 60, B: 72, A: 255}
	ColorGeneActive  = rl.Color{R: 230, G: 190, B: 70, A: 255}
	ColorGeneTextHot = rl.Color{R: 20, G: 20, B: 20, A: 255}
)

// Heights returned by the widgets, used to size the panel up front.
const (
	labelHeight  = 20
	barHeight    = 18
	dirHeight    = 44
	boolHeight   = 18
	geneCellSize = 16
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name, text string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 16, ColorText)
	return labelHeight
}

// DrawBar renders a horizontal progress bar scaled to full.
func DrawBar(x, y int32, name string, value, full float32) int32 {
	ratio := min(max(value/full, 0), 1)

	barWidth := int32(120)
	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, 14, ColorBarBg)

	fillColor := ColorBarFill
	if ratio < 0.3 {
		fillColor = ColorBarLow
	}
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), 14, fillColor)

	rl.DrawText(fmt.Sprintf("%.0f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return barHeight
}

// DrawDirection renders a compass with the needle on a grid direction.
// North points up the screen.
func DrawDirection(x, y int32, name string, d components.Direction) int32 {
	size := int32(40)
	centerX := x + 80 + size/2
	centerY := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, float32(size/2), ColorDirBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	rad := float64(d.Degrees()) * math.Pi / 180
	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Sin(rad))
	endY := float32(centerY) - needleLen*float32(math.Cos(rad))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorDirNeedle,
	)

	rl.DrawText(d.String(), x+80+size+5, y+size/2-7, 14, ColorTextDim)

	return dirHeight
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "no"
	if value {
		color = ColorBoolOn
		text = "yes"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return boolHeight
}

// DrawGenome renders the genes as a wrapped row of digit cells with the
// active gene highlighted.
func DrawGenome(x, y, width int32, genes string, active int) int32 {
	perRow := max(int(width/geneCellSize), 1)
	for i, c := range genes {
		cx := x + int32(i%perRow)*geneCellSize
		cy := y + int32(i/perRow)*geneCellSize

		bg, fg := ColorGene, ColorText
		if i == active {
			bg, fg = ColorGeneActive, ColorGeneTextHot
		}
		rl.DrawRectangle(cx, cy, geneCellSize-2, geneCellSize-2, bg)
		rl.DrawText(string(c), cx+4, cy+2, 12, fg)
	}
	return genomeHeight(len(genes), width)
}

func genomeHeight(n int, width int32) int32 {
	perRow := max(int(width/geneCellSize), 1)
	rows := (n + perRow - 1) / perRow
	return int32(rows)*geneCellSize + 4
}

// DrawField renders a field using its widget, falling back to a label when
// the value does not suit the widget.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := field.Number(); ok {
			return DrawBar(x, y, field.Name, v, field.Max)
		}
	case WidgetDir:
		if d, ok := field.Value.(components.Direction); ok {
			return DrawDirection(x, y, field.Name, d)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Text())
}

// FieldHeight returns the height DrawField uses for field.
func FieldHeight(field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if _, ok := field.Number(); ok {
			return barHeight
		}
	case WidgetDir:
		if _, ok := field.Value.(components.Direction); ok {
			return dirHeight
		}
	case WidgetBool:
		if _, ok := field.Value.(bool); ok {
			return boolHeight
		}
	}
	return labelHeight
}
