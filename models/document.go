// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DesignDocPrefix marks internal design documents that never leave the store
// they were created in.
const DesignDocPrefix = "_design"

// Reserved document keys.
const (
	KeyID      = "_id"
	KeyRev     = "_rev"
	KeyDeleted = "_deleted"
)

// Document is a schemaless record identified by ID and revision. Fields holds
// every key except the reserved ones; on the wire all of them share a single
// flat JSON object.
type Document struct {
	ID      string
	Rev     string
	Deleted bool
	Fields  map[string]any
}

// IsDesign reports whether the document is an internal design document.
func (d Document) IsDesign() bool {
	return IsDesignID(d.ID)
}

// IsDesignID reports whether id belongs to a design document.
func IsDesignID(id string) bool {
	return strings.HasPrefix(id, DesignDocPrefix)
}

// Field resolves a dotted path such as "form.id" or "location.region"
// against the document fields.
func (d Document) Field(path string) (any, bool) {
	switch path {
	case KeyID:
		return d.ID, true
	case KeyRev:
		return d.Rev, true
	}

	var cur any = d.Fields
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// FormID returns the form.id field, or "" when the document is not a form
// response.
func (d Document) FormID() string {
	v, ok := d.Field("form.id")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// HasEmptyLocation reports whether the document carries no location or an
// empty one.
func (d Document) HasEmptyLocation() bool {
	v, ok := d.Field("location")
	if !ok || v == nil {
		return true
	}
	m, ok := v.(map[string]any)
	return ok && len(m) == 0
}

// MarshalJSON flattens the reserved keys and Fields into one object.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[KeyID] = d.ID
	if d.Rev != "" {
		out[KeyRev] = d.Rev
	}
	if d.Deleted {
		out[KeyDeleted] = true
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat object into the reserved keys and Fields.
func (d *Document) UnmarshalJSON(b []byte) error {
	raw := make(map[string]any)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	id, ok := raw[KeyID].(string)
	if !ok && raw[KeyID] != nil {
		return fmt.Errorf("document %s must be a string", KeyID)
	}
	rev, _ := raw[KeyRev].(string)
	deleted, _ := raw[KeyDeleted].(bool)

	delete(raw, KeyID)
	delete(raw, KeyRev)
	delete(raw, KeyDeleted)

	*d = Document{ID: id, Rev: rev, Deleted: deleted, Fields: raw}
	return nil
}

// BodyJSON encodes only Fields. Stores keep the reserved keys in their own
// columns.
func (d Document) BodyJSON() ([]byte, error) {
	if d.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.Fields)
}
