package inspector

import (
	"testing"

	"github.com/pthm-cable/evgen/components"
	"github.com/pthm-cable/evgen/world"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want Hint
	}{
		{"", Hint{Auto: true, Max: 1}},
		{"bar,max:40", Hint{Widget: WidgetBar, Max: 40}},
		{"bar,max:-3", Hint{Widget: WidgetBar, Max: 1}},
		{"dir", Hint{Widget: WidgetDir, Max: 1}},
		{"label,fmt:%.1f", Hint{Widget: WidgetLabel, Max: 1, Format: "%.1f"}},
		{"gauge,fmt:%d", Hint{Auto: true, Max: 1, Format: "%d"}},
		{"skip", Hint{Widget: WidgetSkip, Max: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseTag(tt.tag); got != tt.want {
				t.Errorf("ParseTag(%q) = %+v, want %+v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestFieldText(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{Field{Value: 3}, "3"},
		{Field{Value: float32(1.5)}, "1.50"},
		{Field{Value: 2.26, Hint: Hint{Format: "%.1f"}}, "2.3"},
		{Field{Value: components.Pos(1, 2)}, components.Pos(1, 2).String()},
	}
	for _, tt := range tests {
		if got := tt.field.Text(); got != tt.want {
			t.Errorf("Text(%v) = %q, want %q", tt.field.Value, got, tt.want)
		}
	}

	if v, ok := (Field{Value: uint64(9)}).Number(); !ok || v != 9 {
		t.Errorf("Number(uint64 9) = %v, %v", v, ok)
	}
	if _, ok := (Field{Value: "x"}).Number(); ok {
		t.Error("strings are not numbers")
	}
}

func TestExtractFieldsAnimalInfo(t *testing.T) {
	info := world.AnimalInfo{ID: 7, Facing: components.East, Energy: 12, Alive: true, Genome: "0123"}
	fields := ExtractFields(info)

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}
	for _, hidden := range []string{"Genome", "Cursor", "DiedEpoch"} {
		if _, ok := byName[hidden]; ok {
			t.Errorf("%s should be skipped", hidden)
		}
	}
	if f := byName["Facing"]; f.Widget != WidgetDir {
		t.Errorf("Facing widget = %v, want dir", f.Widget)
	}
	if f := byName["Energy"]; f.Widget != WidgetBar || f.Max != 100 {
		t.Errorf("Energy = %+v, want bar with max 100", f)
	}
	if fields[0].Name != "ID" {
		t.Errorf("first field = %s, want declaration order", fields[0].Name)
	}
}

type fakeSource map[uint64]world.AnimalInfo

func (f fakeSource) Animal(id uint64) (world.AnimalInfo, bool) {
	info, ok := f[id]
	return info, ok
}

func TestInspectorFollowsAnimal(t *testing.T) {
	ins := NewInspector(1280, 30)
	src := fakeSource{4: {ID: 4, Pos: components.Pos(1, 1), Alive: true, Age: 2}}
	ins.Track(src[4])

	src[4] = world.AnimalInfo{ID: 4, Pos: components.Pos(2, 1), Alive: true, Age: 3}
	ins.Refresh(src)
	src[4] = world.AnimalInfo{ID: 4, Pos: components.Pos(2, 1), Alive: true, Age: 4}
	ins.Refresh(src)

	if got := len(ins.Trail()); got != 2 {
		t.Errorf("trail length = %d, want 2 (standing still adds nothing)", got)
	}
	if got := ins.Status(); got != "alive for 4 epochs" {
		t.Errorf("Status() = %q", got)
	}

	// Dies, then is removed at the next cleanup.
	src[4] = world.AnimalInfo{ID: 4, Pos: components.Pos(2, 1), Alive: false, DiedEpoch: 9}
	ins.Refresh(src)
	delete(src, 4)
	ins.Refresh(src)

	if _, ok := ins.Tracked(); !ok {
		t.Fatal("dead animal should stay tracked")
	}
	if got := ins.Status(); got != "died at epoch 9" {
		t.Errorf("Status() = %q, want died at epoch 9", got)
	}

	ins.Untrack()
	if _, ok := ins.Tracked(); ok {
		t.Error("Untrack should clear the selection")
	}
}

func TestInspectorTrailIsBounded(t *testing.T) {
	ins := NewInspector(1280, 30)
	src := fakeSource{1: {ID: 1, Alive: true}}
	ins.Track(src[1])

	for i := 1; i <= MaxTrail+10; i++ {
		src[1] = world.AnimalInfo{ID: 1, Pos: components.Pos(i, 0), Alive: true}
		ins.Refresh(src)
	}

	trail := ins.Trail()
	if len(trail) != MaxTrail {
		t.Fatalf("trail length = %d, want %d", len(trail), MaxTrail)
	}
	if last := trail[len(trail)-1]; last != components.Pos(MaxTrail+10, 0) {
		t.Errorf("newest trail point = %v", last)
	}
}
