package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

type serverDocumentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewServerDocumentRepository returns the PostgreSQL document store shared
// by all groups.
func NewServerDocumentRepository(db *DB, logger *logger.Logger) ServerDocumentRepository {
	logger.Debug().Msg("creating server document repository")
	return &serverDocumentRepository{db: db, logger: logger}
}

// ForGroup returns a document store restricted to the documents of groupID.
func (r *serverDocumentRepository) ForGroup(groupID string) DocumentRepository {
	return &documentRepository{
		db:          r.db,
		scope:       sq.Eq{"group_id": groupID},
		scopeValues: map[string]any{"group_id": groupID},
		logger:      r.logger,
	}
}
