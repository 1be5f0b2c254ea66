package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

var indexNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// RevSuffixGenerator produces the unique part of new revisions.
type RevSuffixGenerator interface {
	RevSuffix() string
}

type localDocumentRepository struct {
	*documentRepository
	revs RevSuffixGenerator
}

// NewLocalDocumentRepository returns the device-local document store.
func NewLocalDocumentRepository(db *DB, revs RevSuffixGenerator, logger *logger.Logger) LocalDocumentRepository {
	logger.Debug().Msg("creating local document repository")
	return &localDocumentRepository{
		documentRepository: &documentRepository{db: db, logger: logger},
		revs:               revs,
	}
}

// Put writes a local edit. doc.Rev must name the current revision, or be
// empty for a new document; otherwise [ErrDocumentConflict] is returned.
func (r *localDocumentRepository) Put(ctx context.Context, doc models.Document) (models.Document, error) {
	if doc.ID == "" {
		return models.Document{}, fmt.Errorf("%w: document id is required", ErrDocumentConflict)
	}

	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		current, found, err := r.currentRev(ctx, tx, doc.ID)
		if err != nil {
			return err
		}
		if (found && doc.Rev != current) || (!found && doc.Rev != "") {
			return fmt.Errorf("%w: %s has revision %q", ErrDocumentConflict, doc.ID, current)
		}

		doc.Rev = models.NextRev(current, r.revs.RevSuffix())
		return r.upsert(ctx, tx, doc)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localDocumentRepository.Put").Str("id", doc.ID).Msg("failed to put document")
		return models.Document{}, err
	}

	return doc, nil
}

// Reset removes every document. Sequences keep growing afterwards.
func (r *localDocumentRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents;`); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localDocumentRepository.Reset").Msg("failed to reset documents")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// EnsureIndex creates an expression index over the JSON paths of def.
func (r *localDocumentRepository) EnsureIndex(ctx context.Context, def models.IndexDefinition) error {
	if !indexNamePattern.MatchString(def.Name) || len(def.Fields) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidIndex, def.Name)
	}

	exprs := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		if !fieldPathPattern.MatchString(f) {
			return fmt.Errorf("%w: %q field %q", ErrInvalidIndex, def.Name, f)
		}
		// paths are validated above; index expressions cannot take bind arguments
		exprs = append(exprs, fmt.Sprintf("json_extract(body, '$.%s')", f))
	}

	stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s ON documents (%s);`, def.Name, strings.Join(exprs, ", "))
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localDocumentRepository.EnsureIndex").Str("index", def.Name).Msg("failed to create index")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Analyze refreshes the query planner statistics.
func (r *localDocumentRepository) Analyze(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `ANALYZE;`); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
