package service

import (
	"github.com/MKhiriev/go-field-sync/models"
)

// BuildSelector returns the pull filter for a device.
//
// Every form with pull enabled contributes either one unscoped clause or one
// clause per assigned location, keyed on the deepest node of the location.
// The profile form stays unscoped when disableLocationFiltering is set.
// Issue documents are added last: per location, the ones broadcast to every
// device there and the ones addressed to deviceID; with no locations, every
// client-context issue.
//
// The result depends only on the inputs and keeps insertion order.
func BuildSelector(formInfos []models.FormInfo, assignedLocations []models.LocationConfig, deviceID string, disableLocationFiltering bool) models.Selector {
	var sel models.Selector

	for _, form := range formInfos {
		if !form.PullEnabled() {
			continue
		}

		switch {
		case form.ID == models.UserProfileFormID && disableLocationFiltering:
			sel.Or = append(sel.Or, formClause(form.ID))
		case form.CouchdbSyncSettings.FilterByLocation && len(assignedLocations) > 0:
			for _, loc := range assignedLocations {
				node, ok := loc.Deepest()
				if !ok {
					continue
				}
				sel.Or = append(sel.Or, models.Clause{
					{Field: models.FieldFormID, Value: form.ID},
					{Field: locationField(node), Value: node.Value},
				})
			}
		default:
			sel.Or = append(sel.Or, formClause(form.ID))
		}
	}

	if len(assignedLocations) == 0 {
		sel.Or = append(sel.Or, models.Clause{
			{Field: models.FieldAppContext, Value: models.ClientAppContext},
			{Field: models.FieldType, Value: models.IssueType},
		})
		return sel
	}

	for _, loc := range assignedLocations {
		node, ok := loc.Deepest()
		if !ok {
			continue
		}
		sel.Or = append(sel.Or,
			models.Clause{
				{Field: models.FieldType, Value: models.IssueType},
				{Field: locationField(node), Value: node.Value},
				{Field: models.FieldSendToAll, Value: true},
			},
			models.Clause{
				{Field: models.FieldType, Value: models.IssueType},
				{Field: locationField(node), Value: node.Value},
				{Field: models.FieldSendToDevice, Value: deviceID},
			},
		)
	}

	return sel
}

func formClause(formID string) models.Clause {
	return models.Clause{{Field: models.FieldFormID, Value: formID}}
}

func locationField(node models.LocationNode) string {
	return "location." + node.Level
}
