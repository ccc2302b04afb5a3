package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/yukikurage/task-assignment-api/internal/utils"
)

// matchNothing stands in for conditions on fields the resource does not have.
var matchNothing = squirrel.Expr("1 = 0")

// buildFilter translates a document-store style filter into SQL conditions.
func buildFilter(doc map[string]any, fields FieldSet) (squirrel.Sqlizer, error) {
	and := squirrel.And{}

	for _, key := range sortedKeys(doc) {
		value := doc[key]

		switch key {
		case "$and", "$or":
			parts, err := buildClauses(key, value, fields)
			if err != nil {
				return nil, err
			}
			if key == "$and" {
				and = append(and, squirrel.And(parts))
			} else {
				and = append(and, squirrel.Or(parts))
			}
			continue
		}

		if strings.HasPrefix(key, "$") {
			return nil, fmt.Errorf("%w: unsupported operator %s", ErrInvalidQuery, key)
		}

		field, ok := fields[key]
		if !ok {
			and = append(and, matchNothing)
			continue
		}

		cond, err := fieldCondition(field, value)
		if err != nil {
			return nil, err
		}
		and = append(and, cond...)
	}

	return and, nil
}

func buildClauses(op string, value any, fields FieldSet) ([]squirrel.Sqlizer, error) {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("%w: %s expects a non-empty array", ErrInvalidQuery, op)
	}

	parts := make([]squirrel.Sqlizer, 0, len(items))
	for _, item := range items {
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects objects", ErrInvalidQuery, op)
		}
		cond, err := buildFilter(sub, fields)
		if err != nil {
			return nil, err
		}
		parts = append(parts, cond)
	}
	return parts, nil
}

func fieldCondition(field Field, value any) ([]squirrel.Sqlizer, error) {
	ops, isOperatorDoc := operatorDoc(value)
	if !isOperatorDoc {
		cond, err := compare(field, "$eq", value)
		if err != nil {
			return nil, err
		}
		return []squirrel.Sqlizer{cond}, nil
	}

	conds := make([]squirrel.Sqlizer, 0, len(ops))
	for _, op := range sortedKeys(ops) {
		cond, err := compare(field, op, ops[op])
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func operatorDoc(value any) (map[string]any, bool) {
	doc, ok := value.(map[string]any)
	if !ok || len(doc) == 0 {
		return nil, false
	}
	for k := range doc {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return doc, true
}

func compare(field Field, op string, raw any) (squirrel.Sqlizer, error) {
	var value any
	var err error

	switch op {
	case "$in", "$nin":
		value, err = convertList(field, raw)
	case "$eq", "$ne", "$gt", "$gte", "$lt", "$lte":
		value, err = convertScalar(field, raw)
	default:
		return nil, fmt.Errorf("%w: unsupported operator %s", ErrInvalidQuery, op)
	}
	if err != nil {
		return nil, err
	}

	if field.Kind == KindMembership {
		return membership(field, op, value)
	}

	col := field.Column
	switch op {
	case "$eq", "$in":
		return squirrel.Eq{col: value}, nil
	case "$ne", "$nin":
		return squirrel.NotEq{col: value}, nil
	case "$gt":
		return squirrel.Gt{col: value}, nil
	case "$gte":
		return squirrel.GtOrEq{col: value}, nil
	case "$lt":
		return squirrel.Lt{col: value}, nil
	default:
		return squirrel.LtOrEq{col: value}, nil
	}
}

// membership tests whether the record's list field contains the value(s).
func membership(field Field, op string, value any) (squirrel.Sqlizer, error) {
	negate := false
	switch op {
	case "$eq", "$in":
	case "$ne", "$nin":
		negate = true
	default:
		return nil, fmt.Errorf("%w: %s is not supported on list fields", ErrInvalidQuery, op)
	}

	inner, args, err := squirrel.Eq{field.Member: value}.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	in := "IN"
	if negate {
		in = "NOT IN"
	}
	return squirrel.Expr(fmt.Sprintf("%s %s (%s WHERE %s)", field.Column, in, field.Subquery, inner), args...), nil
}

func convertList(field Field, raw any) ([]any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: $in and $nin expect an array", ErrInvalidQuery)
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := convertScalar(field, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func convertScalar(field Field, raw any) (any, error) {
	switch raw.(type) {
	case []any, map[string]any:
		return nil, fmt.Errorf("%w: expected a scalar value", ErrInvalidQuery)
	}

	if field.Kind != KindTime {
		return raw, nil
	}

	switch v := raw.(type) {
	case string:
		t, err := utils.ParseTime(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return t, nil
	case int64:
		return utils.FromEpochMillis(v), nil
	case float64:
		return utils.FromEpochMillis(int64(v)), nil
	default:
		return nil, fmt.Errorf("%w: expected a timestamp", ErrInvalidQuery)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
