package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
)

// ErrInvalidQuery is returned for any malformed list or projection parameter.
var ErrInvalidQuery = errors.New("invalid query parameters")

// ListQuery is a parsed list request ready to be applied to a store.
type ListQuery struct {
	Where  squirrel.Sqlizer
	Order  []string
	Select Projection
	Skip   int
	Limit  int
	Count  bool
}

// Parse reads where, sort, select, skip, limit and count from the request
// query string. where/sort/select must be JSON objects.
func Parse(values url.Values, fields FieldSet) (ListQuery, error) {
	var q ListQuery
	var err error

	if raw := values.Get("where"); raw != "" {
		doc, err := decodeObject(raw)
		if err != nil {
			return ListQuery{}, err
		}
		if q.Where, err = buildFilter(doc, fields); err != nil {
			return ListQuery{}, err
		}
	}

	if raw := values.Get("sort"); raw != "" {
		if q.Order, err = parseSort(raw, fields); err != nil {
			return ListQuery{}, err
		}
	}

	if q.Select, err = ParseSelect(values.Get("select")); err != nil {
		return ListQuery{}, err
	}

	if q.Skip, err = parseCount(values.Get("skip")); err != nil {
		return ListQuery{}, err
	}
	if q.Limit, err = parseCount(values.Get("limit")); err != nil {
		return ListQuery{}, err
	}

	q.Count = values.Get("count") == "true"

	return q, nil
}

// ParseSelect parses a projection document. An empty string yields the zero
// Projection, which keeps every field.
func ParseSelect(raw string) (Projection, error) {
	if raw == "" {
		return Projection{}, nil
	}
	doc, err := decodeObject(raw)
	if err != nil {
		return Projection{}, err
	}
	return newProjection(doc)
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidQuery, raw)
	}
	return n, nil
}
