package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetLabel Widget = iota
	WidgetBar
	WidgetDir
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"dir":   WidgetDir,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Hint is a parsed `inspect` struct tag:
//
//	`inspect:"bar,max:200"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
//
// An empty or unknown widget name picks a widget from the field's kind.
type Hint struct {
	Widget Widget
	Auto   bool    // no widget named
	Max    float32 // bar full scale, 1 when absent or not positive
	Format string  // fmt verb for labels
}

// ParseTag parses an inspect struct tag. Unknown options are ignored.
func ParseTag(tag string) Hint {
	h := Hint{Auto: true, Max: 1}
	name, opts, _ := strings.Cut(tag, ",")
	if w, ok := widgetNames[strings.TrimSpace(name)]; ok {
		h.Widget, h.Auto = w, false
	}
	for _, opt := range strings.Split(opts, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "max":
			if v, err := strconv.ParseFloat(val, 32); err == nil && v > 0 {
				h.Max = float32(v)
			}
		case "fmt":
			h.Format = val
		}
	}
	return h
}

// Field is one exported struct field prepared for drawing.
type Field struct {
	Name  string
	Value any
	Hint
}

// ExtractFields lists the exported, non-skipped fields of a struct (or
// pointer to one) in declaration order.
func ExtractFields(v any) []Field {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}

	t := rv.Type()
	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		h := ParseTag(sf.Tag.Get("inspect"))
		if h.Widget == WidgetSkip {
			continue
		}
		fv := rv.Field(i)
		if h.Auto && fv.Kind() == reflect.Bool {
			h.Widget = WidgetBool
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Hint: h})
	}
	return fields
}

// Text formats the field value, with two decimals for floats by default.
func (f Field) Text() string {
	if f.Format != "" {
		return fmt.Sprintf(f.Format, f.Value)
	}
	switch v := f.Value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(v)
	}
}

// Number returns the value as a float32 for numeric kinds.
func (f Field) Number() (float32, bool) {
	rv := reflect.ValueOf(f.Value)
	switch {
	case rv.CanInt():
		return float32(rv.Int()), true
	case rv.CanUint():
		return float32(rv.Uint()), true
	case rv.CanFloat():
		return float32(rv.Float()), true
	}
	return 0, false
}
