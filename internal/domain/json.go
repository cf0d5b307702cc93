package domain

import "encoding/json"

// MarshalJSON writes the canonical fields followed by any pass-through
// fields that do not collide with them.
func (f Flight) MarshalJSON() ([]byte, error) {
	type plain Flight
	return marshalWithExtra(plain(f), f.Extra)
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	return marshalWithExtra(plain(b), b.Extra)
}

func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, taken := merged[k]; !taken {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}
