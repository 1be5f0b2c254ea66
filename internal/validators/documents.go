package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-field-sync/models"
)

// Field name constants used to scope validation to a subset of fields.
const (
	// FieldID requires a non-empty _id outside the reserved namespace.
	// Design documents are allowed.
	FieldID = "_id"

	// FieldRev requires a well-formed revision with a positive generation.
	FieldRev = "_rev"

	// FieldOptionalRev checks _rev only when it is set. Local edits of new
	// documents carry no revision.
	FieldOptionalRev = "_rev?"

	// FieldDocs requires at least one document in a batch.
	FieldDocs = "docs"

	// FieldSyncLocations requires every location path to be complete.
	FieldSyncLocations = "syncLocations"

	// FieldAssignedIDs rejects blank assigned form response ids.
	FieldAssignedIDs = "assignedFormResponseIds"
)

// DocumentValidator implements [Validator] for documents, replicated
// batches and device registrations.
type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.Document, []models.Document, models.BulkDocsRequest and
// models.DeviceRegistration, as values or pointers.
func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Document:
		return v.validateDocument(ctx, value, fields...)
	case *models.Document:
		return v.validateDocument(ctx, *value, fields...)

	case []models.Document:
		return v.validateDocuments(ctx, value, fields...)

	case models.BulkDocsRequest:
		return v.validateDocuments(ctx, value.Docs, fields...)
	case *models.BulkDocsRequest:
		return v.validateDocuments(ctx, value.Docs, fields...)

	case models.DeviceRegistration:
		return v.validateRegistration(ctx, value, fields...)
	case *models.DeviceRegistration:
		return v.validateRegistration(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateDocument checks _id and _rev by default.
func (v *DocumentValidator) validateDocument(_ context.Context, doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldRev}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if doc.ID == "" {
				return ErrEmptyID
			}
			if strings.HasPrefix(doc.ID, "_") && !models.IsDesignID(doc.ID) {
				return fmt.Errorf("%w: %s", ErrReservedID, doc.ID)
			}
		case FieldRev:
			if !validRev(doc.Rev) {
				return fmt.Errorf("%w: %q", ErrInvalidRev, doc.Rev)
			}
		case FieldOptionalRev:
			if doc.Rev != "" && !validRev(doc.Rev) {
				return fmt.Errorf("%w: %q", ErrInvalidRev, doc.Rev)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateDocuments requires a non-empty batch and validates every document
// with fields. FieldDocs itself is not passed down.
func (v *DocumentValidator) validateDocuments(ctx context.Context, docs []models.Document, fields ...string) error {
	if len(docs) == 0 {
		return ErrEmptyDocuments
	}

	docFields := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != FieldDocs {
			docFields = append(docFields, f)
		}
	}

	for i, doc := range docs {
		if err := v.validateDocument(ctx, doc, docFields...); err != nil {
			return fmt.Errorf("document #%d: %w", i, err)
		}
	}
	return nil
}

func (v *DocumentValidator) validateRegistration(_ context.Context, reg models.DeviceRegistration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSyncLocations, FieldAssignedIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldSyncLocations:
			for i, loc := range reg.SyncLocations {
				if len(loc.Value) == 0 {
					return fmt.Errorf("location #%d: %w", i, ErrEmptyLocation)
				}
				for _, node := range loc.Value {
					if node.Level == "" || node.Value == "" {
						return fmt.Errorf("location #%d: %w", i, ErrInvalidLocation)
					}
				}
			}
		case FieldAssignedIDs:
			for _, id := range reg.AssignedFormResponseIDs {
				if strings.TrimSpace(id) == "" {
					return ErrEmptyAssignedIDs
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validRev(rev string) bool {
	_, suffix, ok := strings.Cut(rev, "-")
	return ok && suffix != "" && models.RevGeneration(rev) > 0
}
