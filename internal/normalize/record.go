package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type fieldTable map[string][]string

// known returns every source key the table recognizes.
func (t fieldTable) known() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, aliases := range t {
		for _, a := range aliases {
			keys[a] = struct{}{}
		}
	}
	return keys
}

// record is a raw backend object read through a field table.
type record struct {
	raw    map[string]any
	fields fieldTable
}

func newRecord(raw map[string]any, fields fieldTable) record {
	return record{raw: raw, fields: fields}
}

// value returns the first non-blank value among the aliases of field.
func (r record) value(field string) (any, bool) {
	for _, key := range r.fields[field] {
		v, ok := r.raw[key]
		if !ok || blank(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func (r record) str(field string) string {
	v, _ := r.value(field)
	return toString(v)
}

func (r record) number(field string) float64 {
	v, _ := r.value(field)
	return toNumber(v)
}

// integer rounds the field and clamps it to [0, math.MaxInt32].
func (r record) integer(field string) int {
	f := math.Round(r.number(field))
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func (r record) timestamp(field string) time.Time {
	v, _ := r.value(field)
	return toTime(v)
}

func (r record) object(field string) (map[string]any, bool) {
	v, ok := r.value(field)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// extra collects keys the table does not know about.
func (r record) extra() map[string]any {
	known := r.fields.known()
	var out map[string]any
	for k, v := range r.raw {
		if _, ok := known[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return canonicalJSON(out)
}

func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// toNumber parses numbers and numeric strings. Anything unparsable,
// non-finite or negative reads as 0.
func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func toTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// canonicalJSON passes pass-through values through encoding/json so that
// repeated normalization sees identical Go types.
func canonicalJSON(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return m
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return m
	}
	return out
}
