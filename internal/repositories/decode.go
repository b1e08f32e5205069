package repositories

import (
	"time"
)

// Loose-typed field readers used when mapping raw store documents into
// typed models. Absent or mistyped values read as zero; required fields are
// validated by the per-entity decode functions.

func fieldString(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}

func fieldInt(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func fieldFloat(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func fieldBool(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

func fieldTime(fields map[string]any, key string) time.Time {
	v, _ := fields[key].(time.Time)
	return v
}

func fieldMap(fields map[string]any, key string) map[string]any {
	v, _ := fields[key].(map[string]any)
	return v
}

func fieldStringSlice(fields map[string]any, key string) []string {
	raw, ok := fields[key].([]any)
	if !ok {
		if direct, ok := fields[key].([]string); ok {
			return direct
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
