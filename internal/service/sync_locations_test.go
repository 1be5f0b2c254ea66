package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-field-sync/models"
)

func TestLocationsChanged(t *testing.T) {
	north := regionLoc("north")
	south := regionLoc("south")
	nested := models.LocationConfig{Value: []models.LocationNode{
		{Level: "country", Value: "kenya"},
		{Level: "region", Value: "north"},
	}}

	tests := []struct {
		name     string
		previous []models.LocationConfig
		current  []models.LocationConfig
		want     bool
	}{
		{name: "no record", previous: nil, current: []models.LocationConfig{north}, want: true},
		{name: "no record and no locations", previous: nil, current: nil, want: true},
		{name: "both empty", previous: []models.LocationConfig{}, current: []models.LocationConfig{}, want: false},
		{name: "same", previous: []models.LocationConfig{north}, current: []models.LocationConfig{north}, want: false},
		{name: "same deepest node, different path", previous: []models.LocationConfig{north}, current: []models.LocationConfig{nested}, want: false},
		{name: "order ignored", previous: []models.LocationConfig{north, south}, current: []models.LocationConfig{south, north}, want: false},
		{name: "location added", previous: []models.LocationConfig{north}, current: []models.LocationConfig{north, south}, want: true},
		{name: "location removed", previous: []models.LocationConfig{north, south}, current: []models.LocationConfig{north}, want: true},
		{name: "location replaced", previous: []models.LocationConfig{north}, current: []models.LocationConfig{south}, want: true},
		{name: "all removed", previous: []models.LocationConfig{north}, current: []models.LocationConfig{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocationsChanged(tt.previous, tt.current))
		})
	}
}

func TestLocationsChanged_DetectsBothDirections(t *testing.T) {
	a := []models.LocationConfig{regionLoc("north")}
	b := []models.LocationConfig{regionLoc("north"), regionLoc("south")}

	assert.True(t, LocationsChanged(a, b), "b has an element a does not cover")
	assert.True(t, LocationsChanged(b, a), "a lost an element b had")
}
