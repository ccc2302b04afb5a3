package query

import "fmt"

// Projection selects which fields of a rendered record are returned. The zero
// value keeps every field.
type Projection struct {
	fields  map[string]bool
	include bool
	keepID  bool
}

func newProjection(doc map[string]any) (Projection, error) {
	p := Projection{fields: make(map[string]bool), keepID: true}
	modeSet := false

	for key, raw := range doc {
		on, err := projectionFlag(raw)
		if err != nil {
			return Projection{}, err
		}

		if key == IDField {
			p.keepID = on
			continue
		}

		if modeSet && on != p.include {
			return Projection{}, fmt.Errorf("%w: cannot mix inclusion and exclusion in select", ErrInvalidQuery)
		}
		p.include = on
		modeSet = true
		p.fields[key] = true
	}

	// {"_id": 0} alone is an exclusion projection.
	if !modeSet && !p.keepID {
		p.include = false
	}
	if !modeSet && p.keepID {
		return Projection{}, nil
	}

	return p, nil
}

func projectionFlag(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("%w: select values must be 0, 1, true or false", ErrInvalidQuery)
	}
}

// IsZero reports whether the projection keeps every field.
func (p Projection) IsZero() bool {
	return p.fields == nil
}

// Apply returns the projected copy of record.
func (p Projection) Apply(record map[string]any) map[string]any {
	if p.IsZero() {
		return record
	}

	out := make(map[string]any, len(record))
	for key, value := range record {
		if key == IDField {
			if p.keepID {
				out[key] = value
			}
			continue
		}
		if p.fields[key] == p.include {
			out[key] = value
		}
	}
	return out
}
