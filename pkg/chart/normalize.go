package chart

import (
	"math"
	"time"
)

// Normalize recursively converts a value into a form that any JSON
// encoder accepts: NaN and infinite floats become nil, times become
// ISO-8601 strings, and maps/slices are walked element by element.
// Everything leaving this package goes through it, so downstream
// encoding never degrades a chart to an empty structure.
func Normalize(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case time.Time:
		return val.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case Spec:
		out := make(Spec, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

func normalizeSpec(s Spec) Spec {
	return Normalize(s).(Spec)
}
