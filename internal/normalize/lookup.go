// Package normalize maps every accepted upstream season document layout onto season.Document.
// Renderers never see raw JSON.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Entity is one decoded JSON object.
type Entity = map[string]any

// Field is a logical field: the alternate keys it may appear under, in priority order,
// and the value returned when none is present.
type Field struct {
	Name    string
	Keys    []string
	Default any
}

// Lookup returns the first present value among the field's keys, else the field default.
// A key holding null or an empty string counts as absent.
func Lookup(entity Entity, f Field) any {
	if v, ok := lookup(entity, f); ok {
		return v
	}
	return f.Default
}

func lookup(entity Entity, f Field) (any, bool) {
	if entity == nil {
		return nil, false
	}
	for _, key := range f.Keys {
		v, ok := entity[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// Text returns the field as display text. Numbers are written without a trailing ".0".
func Text(entity Entity, f Field) string {
	def, _ := f.Default.(string)
	v, ok := lookup(entity, f)
	if !ok {
		return def
	}
	if s := toText(v); s != "" {
		return s
	}
	return def
}

// Int returns the field as an integer, or the default (0 unless set) when absent or non-numeric.
func Int(entity Entity, f Field) int {
	if n := OptionalInt(entity, f); n != nil {
		return *n
	}
	def, _ := f.Default.(int)
	return def
}

// OptionalInt returns the field as an integer pointer; nil when absent or non-numeric.
func OptionalInt(entity Entity, f Field) *int {
	v, ok := lookup(entity, f)
	if !ok {
		return nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil
	}
	return &n
}

// Bool returns the field as a boolean. Strings like "yes"/"true"/"1" count as true.
func Bool(entity Entity, f Field) bool {
	v, ok := lookup(entity, f)
	if !ok {
		def, _ := f.Default.(bool)
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true", "yes", "y":
			return true
		}
	}
	return false
}

// Object returns the field as a nested object, or nil.
func Object(entity Entity, f Field) Entity {
	v, ok := lookup(entity, f)
	if !ok {
		return nil
	}
	obj, _ := v.(map[string]any)
	return obj
}

// Objects returns the field as a list of objects; non-object items are skipped.
func Objects(entity Entity, f Field) []Entity {
	v, ok := lookup(entity, f)
	if !ok {
		return nil
	}
	list, _ := v.([]any)
	out := make([]Entity, 0, len(list))
	for _, item := range list {
		if obj, isObj := item.(map[string]any); isObj {
			out = append(out, obj)
		}
	}
	return out
}

// Strings returns the field as a list of text items. A single string becomes a one-item list;
// object items contribute their text/label/name.
func Strings(entity Entity, f Field) []string {
	v, ok := lookup(entity, f)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case string:
		return []string{strings.TrimSpace(list)}
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			var s string
			if obj, isObj := item.(map[string]any); isObj {
				s = Text(obj, fieldItemText)
			} else {
				s = toText(item)
			}
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	case string:
		return parseIntText(t)
	}
	return 0, false
}

// parseIntText accepts "12", "#12", "+2", "▲2", "▼1", "↑3".
func parseIntText(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	sign := 1
	switch {
	case strings.HasPrefix(s, "▲"), strings.HasPrefix(s, "↑"):
		s = strings.TrimLeft(s, "▲↑")
	case strings.HasPrefix(s, "▼"), strings.HasPrefix(s, "↓"):
		s = strings.TrimLeft(s, "▼↓")
		sign = -1
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return sign * n, true
}
