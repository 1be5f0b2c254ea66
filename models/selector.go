// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrMalformedSelector is returned when a selector document cannot be decoded.
var ErrMalformedSelector = errors.New("malformed selector")

// FieldMatch is a single field-equality predicate. Field is a dotted path.
type FieldMatch struct {
	Field string
	Value any
}

// Clause is a conjunction of field matches. Order is kept for reproducible
// encoding.
type Clause []FieldMatch

// Selector is a boolean OR of clauses, encoded as {"$or": [...]}.
type Selector struct {
	Or []Clause
}

// Empty reports whether the selector has no clauses.
func (s Selector) Empty() bool {
	return len(s.Or) == 0
}

// Matches reports whether doc satisfies at least one clause.
func (s Selector) Matches(doc Document) bool {
	for _, c := range s.Or {
		if c.Matches(doc) {
			return true
		}
	}
	return false
}

// Matches reports whether doc satisfies every predicate of the clause.
func (c Clause) Matches(doc Document) bool {
	for _, m := range c {
		v, ok := doc.Field(m.Field)
		if !ok || !reflect.DeepEqual(v, m.Value) {
			return false
		}
	}
	return true
}

// MarshalJSON writes clauses and their fields in insertion order.
func (s Selector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"$or":[`)
	for i, c := range s.Or {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// MarshalJSON writes the clause as an ordered JSON object.
func (c Clause) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("encode selector value for %s: %w", m.Field, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts {"$or": [{field: value, ...}, ...]} and keeps the
// field order of every clause.
func (s *Selector) UnmarshalJSON(b []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSelector, err)
	}
	if len(top) == 0 {
		*s = Selector{}
		return nil
	}
	rawOr, ok := top["$or"]
	if !ok || len(top) != 1 {
		return fmt.Errorf("%w: only a top-level $or is supported", ErrMalformedSelector)
	}

	var rawClauses []json.RawMessage
	if err := json.Unmarshal(rawOr, &rawClauses); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSelector, err)
	}

	out := Selector{Or: make([]Clause, 0, len(rawClauses))}
	for _, rc := range rawClauses {
		c, err := decodeClause(rc)
		if err != nil {
			return err
		}
		out.Or = append(out.Or, c)
	}
	*s = out
	return nil
}

func decodeClause(raw json.RawMessage) (Clause, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSelector, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: clause must be an object", ErrMalformedSelector)
	}

	var c Clause
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSelector, err)
		}
		key, _ := keyTok.(string)

		var v any
		if err = dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSelector, err)
		}
		switch v.(type) {
		case string, bool, float64, nil:
		default:
			return nil, fmt.Errorf("%w: field %q must be compared to a scalar", ErrMalformedSelector, key)
		}
		c = append(c, FieldMatch{Field: key, Value: v})
	}
	return c, nil
}
