package dto

import (
	"encoding/json"
	"fmt"

	"github.com/yukikurage/task-assignment-api/internal/query"
)

// Project renders v through its JSON form and keeps only the fields p selects.
// A zero projection returns v unchanged.
func Project(v any, p query.Projection) (any, error) {
	if p.IsZero() {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to render record: %w", err)
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to render record: %w", err)
	}

	return p.Apply(record), nil
}

// ProjectAll applies p to each element of items
func ProjectAll[T any](items []T, p query.Projection) (any, error) {
	if p.IsZero() {
		return items, nil
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		projected, err := Project(item, p)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}
	return out, nil
}
