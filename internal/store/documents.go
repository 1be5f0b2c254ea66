// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// documentRepository implements the document store primitives on top of the
// documents table. scope restricts every statement to one partition of the
// table (a group on the server, everything on the device) and scopeValues
// supplies the matching column values for inserts.
type documentRepository struct {
	db          *DB
	scope       sq.Sqlizer
	scopeValues map[string]any
	logger      *logger.Logger
}

const documentsTable = "documents"

func (r *documentRepository) selectDocs(columns ...string) sq.SelectBuilder {
	q := r.db.builder().Select(columns...).From(documentsTable)
	if r.scope != nil {
		q = q.Where(r.scope)
	}
	return q
}

// Changes returns the changes after req.Since in sequence order. Every
// document appears at most once, at the sequence of its latest write.
//
// When the page is not full LastSeq jumps to the store's update sequence so
// that filtered-out writes are not read again.
func (r *documentRepository) Changes(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error) {
	log := logger.FromContext(ctx)

	updateSeq, err := r.updateSeq(ctx)
	if err != nil {
		return models.ChangesResponse{}, err
	}

	filter := sq.And{sq.LtOrEq{"seq": updateSeq}}
	if req.Selector != nil {
		where, err := selectorWhere(r.db.dialect, *req.Selector)
		if err != nil {
			return models.ChangesResponse{}, err
		}
		filter = append(filter, where)
	}
	if len(req.DocIDs) > 0 {
		filter = append(filter, sq.Eq{"id": req.DocIDs})
	}

	q := r.selectDocs("seq", "id", "rev", "deleted").
		Where(sq.Gt{"seq": req.Since}).
		Where(filter).
		OrderBy("seq")
	if req.Limit > 0 {
		q = q.Limit(uint64(req.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.Changes").Int64("since", int64(req.Since)).Msg("failed to query changes")
		return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	results := make([]models.Change, 0)
	for rows.Next() {
		var c models.Change
		if err = rows.Scan(&c.Seq, &c.ID, &c.Rev, &c.Deleted); err != nil {
			log.Err(err).Str("func", "documentRepository.Changes").Msg("failed to scan change row")
			return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		results = append(results, c)
	}
	if err = rows.Err(); err != nil {
		return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	resp := models.ChangesResponse{Results: results, LastSeq: max(updateSeq, req.Since)}
	if req.Limit > 0 && len(results) == req.Limit {
		resp.LastSeq = results[len(results)-1].Seq

		pending, err := r.count(ctx, "documentRepository.Changes", sq.Gt{"seq": resp.LastSeq}, filter)
		if err != nil {
			return models.ChangesResponse{}, err
		}
		resp.Pending = int(pending)
	}

	return resp, nil
}

// AllDocs lists live documents ordered by id starting at req.StartKey, or
// looks up req.Keys including deleted ones. Keys that do not exist produce
// no row.
func (r *documentRepository) AllDocs(ctx context.Context, req models.AllDocsRequest) (models.AllDocsResponse, error) {
	log := logger.FromContext(ctx)

	q := r.selectDocs("id", "rev", "deleted", "body").OrderBy("id")
	if len(req.Keys) > 0 {
		q = q.Where(sq.Eq{"id": req.Keys})
	} else {
		q = q.Where(sq.Eq{"deleted": false})
		if req.StartKey != "" {
			q = q.Where(sq.GtOrEq{"id": req.StartKey})
		}
		if req.Limit > 0 {
			q = q.Limit(uint64(req.Limit))
		}
	}

	docs, err := r.queryDocs(ctx, "documentRepository.AllDocs", q)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.AllDocs").Msg("failed to list documents")
		return models.AllDocsResponse{}, err
	}

	resp := models.AllDocsResponse{Rows: make([]models.AllDocsRow, 0, len(docs))}
	for i := range docs {
		row := models.AllDocsRow{
			ID:    docs[i].ID,
			Key:   docs[i].ID,
			Value: models.RevValue{Rev: docs[i].Rev, Deleted: docs[i].Deleted},
		}
		if req.IncludeDocs && !docs[i].Deleted {
			row.Doc = &docs[i]
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// Find returns live documents matching req.Selector ordered by id. The
// bookmark is the last id of the page and stays unchanged on an empty page.
func (r *documentRepository) Find(ctx context.Context, req models.FindRequest) (models.FindResponse, error) {
	where, err := selectorWhere(r.db.dialect, req.Selector)
	if err != nil {
		return models.FindResponse{}, err
	}

	q := r.selectDocs("id", "rev", "deleted", "body").
		Where(sq.Eq{"deleted": false}).
		Where(where).
		OrderBy("id")
	if req.Bookmark != "" {
		q = q.Where(sq.Gt{"id": req.Bookmark})
	}
	if req.Limit > 0 {
		q = q.Limit(uint64(req.Limit))
	}

	docs, err := r.queryDocs(ctx, "documentRepository.Find", q)
	if err != nil {
		return models.FindResponse{}, err
	}

	resp := models.FindResponse{Docs: docs, Bookmark: req.Bookmark}
	if len(docs) > 0 {
		resp.Bookmark = docs[len(docs)-1].ID
	}
	if len(req.Fields) > 0 {
		for i := range resp.Docs {
			resp.Docs[i] = project(resp.Docs[i], req.Fields)
		}
	}
	return resp, nil
}

// BulkGet reads the latest revision of each id, tombstones included. Missing
// ids are left out.
func (r *documentRepository) BulkGet(ctx context.Context, ids []string) ([]models.Document, error) {
	if len(ids) == 0 {
		return []models.Document{}, nil
	}

	q := r.selectDocs("id", "rev", "deleted", "body").
		Where(sq.Eq{"id": ids}).
		OrderBy("id")

	return r.queryDocs(ctx, "documentRepository.BulkGet", q)
}

// BulkDocs stores replicated revisions as they are. A revision is applied
// only when it beats the stored one, so replaying a batch is harmless.
// Documents without an id or revision are rejected one by one.
func (r *documentRepository) BulkDocs(ctx context.Context, docs []models.Document) ([]models.BulkResult, error) {
	log := logger.FromContext(ctx)
	results := make([]models.BulkResult, 0, len(docs))

	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		if err := r.lockScope(ctx, tx); err != nil {
			log.Err(err).Str("func", "documentRepository.BulkDocs").Msg("failed to lock group for writing")
			return err
		}

		for _, doc := range docs {
			if doc.ID == "" || doc.Rev == "" {
				results = append(results, models.BulkResult{ID: doc.ID, Error: "bad_request", Reason: "document id and revision are required"})
				continue
			}

			current, found, err := r.currentRev(ctx, tx, doc.ID)
			if err != nil {
				return err
			}
			if found && !models.RevWins(doc.Rev, current) {
				results = append(results, models.BulkResult{ID: doc.ID, Rev: doc.Rev})
				continue
			}

			if err = r.upsert(ctx, tx, doc); err != nil {
				log.Err(err).
					Str("func", "documentRepository.BulkDocs").
					Str("id", doc.ID).
					Msg("failed to write document")
				return err
			}
			results = append(results, models.BulkResult{ID: doc.ID, Rev: doc.Rev})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Info returns the live document count and the update sequence.
func (r *documentRepository) Info(ctx context.Context) (models.StoreInfo, error) {
	count, err := r.count(ctx, "documentRepository.Info", sq.Eq{"deleted": false})
	if err != nil {
		return models.StoreInfo{}, err
	}

	seq, err := r.updateSeq(ctx)
	if err != nil {
		return models.StoreInfo{}, err
	}

	return models.StoreInfo{DocCount: count, UpdateSeq: seq}, nil
}

// CountBySelector counts live documents matching sel.
func (r *documentRepository) CountBySelector(ctx context.Context, sel models.Selector) (int64, error) {
	where, err := selectorWhere(r.db.dialect, sel)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, "documentRepository.CountBySelector", sq.Eq{"deleted": false}, where)
}

func (r *documentRepository) updateSeq(ctx context.Context) (models.Seq, error) {
	query, args, err := r.selectDocs("COALESCE(MAX(seq), 0)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var seq models.Seq
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "documentRepository.updateSeq").Msg("failed to read update sequence")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	return seq, nil
}

func (r *documentRepository) count(ctx context.Context, fn string, preds ...sq.Sqlizer) (int64, error) {
	q := r.selectDocs("COUNT(*)")
	for _, p := range preds {
		q = q.Where(p)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to count documents")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	return n, nil
}

func (r *documentRepository) queryDocs(ctx context.Context, fn string, q sq.SelectBuilder) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var (
			doc  models.Document
			body []byte
		)
		if err = rows.Scan(&doc.ID, &doc.Rev, &doc.Deleted, &body); err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = decodeBody(body, &doc); err != nil {
			log.Err(err).Str("func", fn).Str("id", doc.ID).Msg("failed to decode document body")
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

// lockScope serialises writers of a server group. Without it a transaction
// holding lower sequences could commit after a later one, and a reader that
// already moved its checkpoint past the later one would never see them.
// SQLite allows a single writer, so there is nothing to lock.
func (r *documentRepository) lockScope(ctx context.Context, tx *sql.Tx) error {
	groupID, ok := r.scopeValues["group_id"]
	if r.db.dialect != dialectPostgres || !ok {
		return nil
	}
	if _, err := tx.ExecContext(ctx, lockGroupWrites, groupID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	return nil
}

func (r *documentRepository) currentRev(ctx context.Context, tx *sql.Tx, id string) (string, bool, error) {
	q := r.selectDocs("rev").Where(sq.Eq{"id": id})
	if r.db.dialect == dialectPostgres {
		q = q.Suffix("FOR UPDATE")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rev string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&rev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	return rev, true, nil
}

// upsert writes doc and moves it to a fresh sequence.
func (r *documentRepository) upsert(ctx context.Context, tx *sql.Tx, doc models.Document) error {
	body, err := doc.BodyJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingBody, err)
	}

	columns := make([]string, 0, len(r.scopeValues)+4)
	values := make([]any, 0, len(r.scopeValues)+4)
	for _, col := range slices.Sorted(maps.Keys(r.scopeValues)) {
		columns = append(columns, col)
		values = append(values, r.scopeValues[col])
	}
	columns = append(columns, "id", "rev", "deleted", "body")
	values = append(values, doc.ID, doc.Rev, doc.Deleted, string(body))

	ins := r.db.builder().Insert(documentsTable).Columns(columns...).Values(values...)
	if r.db.dialect == dialectPostgres {
		ins = ins.Suffix(`ON CONFLICT (group_id, id) DO UPDATE SET
			rev = EXCLUDED.rev,
			deleted = EXCLUDED.deleted,
			body = EXCLUDED.body,
			updated_at = NOW(),
			seq = nextval(pg_get_serial_sequence('documents', 'seq'))`)
	} else {
		// REPLACE deletes the old row, so AUTOINCREMENT hands out a new seq
		ins = ins.Options("OR REPLACE")
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	return nil
}

func decodeBody(body []byte, doc *models.Document) error {
	if len(body) == 0 {
		doc.Fields = map[string]any{}
		return nil
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingBody, err)
	}
	doc.Fields = fields
	return nil
}

// project keeps the reserved keys and the requested top-level fields.
func project(doc models.Document, fields []string) models.Document {
	out := models.Document{ID: doc.ID, Rev: doc.Rev, Deleted: doc.Deleted, Fields: map[string]any{}}
	for _, f := range fields {
		if v, ok := doc.Fields[f]; ok {
			out.Fields[f] = v
		}
	}
	return out
}
