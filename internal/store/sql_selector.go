// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/models"
)

// dialect selects the JSON accessor syntax of the underlying database.
type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

var fieldPathPattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

// placeholders returns the squirrel placeholder format of d.
func (d dialect) placeholders() sq.PlaceholderFormat {
	if d == dialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// jsonField builds the expression reading the dotted path field from the
// body column. The path travels as a bind argument.
func (d dialect) jsonField(field string) (string, any, error) {
	if !fieldPathPattern.MatchString(field) {
		return "", nil, fmt.Errorf("%w: field %q", ErrInvalidSelector, field)
	}

	if d == dialectPostgres {
		return "body #>> ?::text[]", "{" + strings.ReplaceAll(field, ".", ",") + "}", nil
	}
	return "json_extract(body, ?)", "$." + field, nil
}

// matchExpr translates one field-equality predicate.
func (d dialect) matchExpr(m models.FieldMatch) (sq.Sqlizer, error) {
	if m.Field == models.KeyID {
		return sq.Eq{"id": m.Value}, nil
	}

	expr, path, err := d.jsonField(m.Field)
	if err != nil {
		return nil, err
	}

	if m.Value == nil {
		return sq.Expr(expr+" IS NULL", path), nil
	}

	value, err := d.literal(m.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidSelector, m.Field, err)
	}
	return sq.Expr(expr+" = ?", path, value), nil
}

// literal converts a selector scalar to the value the JSON accessor yields:
// SQLite's json_extract returns native values with booleans as 1/0, while
// PostgreSQL's #>> always returns text.
func (d dialect) literal(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		if d == dialectPostgres {
			return strconv.FormatBool(val), nil
		}
		if val {
			return 1, nil
		}
		return 0, nil
	case float64:
		if d == dialectPostgres {
			return strconv.FormatFloat(val, 'f', -1, 64), nil
		}
		return val, nil
	case int:
		if d == dialectPostgres {
			return strconv.Itoa(val), nil
		}
		return val, nil
	case int64:
		if d == dialectPostgres {
			return strconv.FormatInt(val, 10), nil
		}
		return val, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// selectorWhere translates a selector into a WHERE predicate. An empty
// selector matches nothing.
func selectorWhere(d dialect, sel models.Selector) (sq.Sqlizer, error) {
	or := make(sq.Or, 0, len(sel.Or))
	for _, clause := range sel.Or {
		and := make(sq.And, 0, len(clause))
		for _, m := range clause {
			expr, err := d.matchExpr(m)
			if err != nil {
				return nil, err
			}
			and = append(and, expr)
		}
		or = append(or, and)
	}
	return or, nil
}
