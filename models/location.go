// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LocationNode is one level of a location hierarchy, e.g. {region, north}.
type LocationNode struct {
	Level string `json:"level"`
	Value string `json:"value"`
}

// LocationConfig is an ordered path from the root of the location hierarchy
// down to the point a device is assigned to.
type LocationConfig struct {
	ShowLevels []string       `json:"showLevels,omitempty"`
	Value      []LocationNode `json:"value"`
}

// Deepest returns the last node of the path.
func (c LocationConfig) Deepest() (LocationNode, bool) {
	if len(c.Value) == 0 {
		return LocationNode{}, false
	}
	return c.Value[len(c.Value)-1], true
}

// Matches reports whether both configs point at the same deepest value.
func (c LocationConfig) Matches(other LocationConfig) bool {
	a, okA := c.Deepest()
	b, okB := other.Deepest()
	if okA != okB {
		return false
	}
	return a.Value == b.Value
}
