package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one flat object from a dashboard endpoint. The engine never
// assumes a field list; callers name the fields they care about.
type Record map[string]interface{}

// Value returns the field as a string key. Absent, null and "" all come
// back as "", which the filters treat as N/A.
func (r Record) Value(field string) string {
	raw, ok := r[field]
	if !ok || raw == nil {
		return ""
	}

	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// IsEmpty reports whether the field is absent or empty.
func (r Record) IsEmpty(field string) bool {
	return r.Value(field) == ""
}

// Number returns the field as a float. ok is false when the field is
// absent or does not hold a number; numeric strings are parsed.
func (r Record) Number(field string) (float64, bool) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f, err == nil
	}
	return 0, false
}
