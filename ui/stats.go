package ui

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evgen/telemetry"
)

type statsField = FieldDescriptor[telemetry.WindowStats]

func intField(label string, get func(telemetry.WindowStats) int) statsField {
	return statsField{
		Label:  label,
		Widget: WidgetText,
		Text:   func(s telemetry.WindowStats) string { return strconv.Itoa(get(s)) },
	}
}

func floatField(label, format string, get func(telemetry.WindowStats) float64) statsField {
	return statsField{
		Label:  label,
		Widget: WidgetText,
		Text:   func(s telemetry.WindowStats) string { return fmt.Sprintf(format, get(s)) },
	}
}

// StatsSections describes the global statistics panel.
var StatsSections = []SectionDescriptor[telemetry.WindowStats]{
	{
		Title: "Population",
		Fields: []statsField{
			intField("Animals", func(s telemetry.WindowStats) int { return s.Animals }),
			intField("Foliage", func(s telemetry.WindowStats) int { return s.Foliage }),
			intField("Free fields", func(s telemetry.WindowStats) int { return s.FreeFields }),
			intField("Generation", func(s telemetry.WindowStats) int { return s.MaxGeneration }),
		},
	},
	{
		Title: "Genomes",
		Fields: []statsField{
			{
				Label:  "Most popular",
				Widget: WidgetText,
				Text: func(s telemetry.WindowStats) string {
					if s.MostPopularGenome == "" {
						return "-"
					}
					return fmt.Sprintf("%s x%d", s.MostPopularGenome, s.MostPopularCount)
				},
			},
			{
				Label:  "Share",
				Widget: WidgetBar,
				Range:  DefaultRange(),
				Value:  func(s telemetry.WindowStats) float32 { return float32(s.DominantShare) },
			},
			intField("Distinct", func(s telemetry.WindowStats) int { return s.DistinctGenomes }),
		},
	},
	{
		Title: "Energy",
		Fields: []statsField{
			floatField("Average", "%.2f", func(s telemetry.WindowStats) float64 { return s.AvgEnergy }),
			{
				Label:  "p10 / p50 / p90",
				Widget: WidgetText,
				Text: func(s telemetry.WindowStats) string {
					return fmt.Sprintf("%.0f / %.0f / %.0f", s.EnergyP10, s.EnergyP50, s.EnergyP90)
				},
			},
			floatField("Avg life", "%.1f", func(s telemetry.WindowStats) float64 { return s.AvgLifeLength }),
		},
	},
	{
		Title: "Last window",
		Fields: []statsField{
			intField("Births", func(s telemetry.WindowStats) int { return s.Births }),
			intField("Deaths", func(s telemetry.WindowStats) int { return s.Deaths }),
			intField("Meals", func(s telemetry.WindowStats) int { return s.Meals }),
			intField("Plants grown", func(s telemetry.WindowStats) int { return s.PlantsGrown }),
			{
				Label:  "Edge crossings",
				Widget: WidgetText,
				Text: func(s telemetry.WindowStats) string {
					return fmt.Sprintf("%d wrap %d refl %d tele", s.Wraps, s.Reflections, s.Teleports)
				},
			},
		},
	},
}

// StatsPanel renders the latest window statistics.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel and returns its bottom edge.
func (s *StatsPanel) Draw(stats telemetry.WindowStats) int32 {
	r := s.renderer
	padding := r.Theme.Padding

	height := r.Theme.LineHeight + 4 + padding*2
	for _, sec := range StatsSections {
		height += SectionHeight(r, sec)
	}
	r.DrawPanel(s.x, s.y, s.width, height)

	y := s.y + padding
	rl.DrawText(fmt.Sprintf("Statistics (epoch %d)", stats.WindowEndEpoch), s.x+padding, y, 14, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sec := range StatsSections {
		y = DrawSection(r, s.x+padding, y, sec, stats, s.width-padding*2)
	}
	return s.y + height
}
