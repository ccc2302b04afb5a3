package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// parseSort reads a sort document preserving key order, since the first key
// is the primary ordering.
func parseSort(raw string, fields FieldSet) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: sort must be a JSON object", ErrInvalidQuery)
	}

	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}

		dir, err := sortDirection(value)
		if err != nil {
			return nil, err
		}

		field, ok := fields[key]
		if !ok || field.Kind == KindMembership {
			continue
		}
		order = append(order, field.Column+" "+dir)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after sort object", ErrInvalidQuery)
	}

	return order, nil
}

func sortDirection(value any) (string, error) {
	switch v := value.(type) {
	case json.Number:
		switch v.String() {
		case "1":
			return "ASC", nil
		case "-1":
			return "DESC", nil
		}
	case string:
		switch strings.ToLower(v) {
		case "asc", "ascending":
			return "ASC", nil
		case "desc", "descending":
			return "DESC", nil
		}
	}
	return "", fmt.Errorf("%w: invalid sort direction %v", ErrInvalidQuery, value)
}
