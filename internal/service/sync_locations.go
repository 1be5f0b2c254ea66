package service

import "github.com/MKhiriev/go-field-sync/models"

// LocationsChanged reports whether the device scope moved between two syncs.
// A nil previous set means nothing was recorded yet. Otherwise every location
// of each set needs a counterpart with the same deepest value in the other;
// checking both directions catches additions as well as removals.
func LocationsChanged(previous, current []models.LocationConfig) bool {
	if previous == nil {
		return true
	}
	return !coveredBy(previous, current) || !coveredBy(current, previous)
}

func coveredBy(locations, others []models.LocationConfig) bool {
	for _, loc := range locations {
		found := false
		for _, other := range others {
			if loc.Matches(other) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
