package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type fixedRevs string

func (f fixedRevs) RevSuffix() string { return string(f) }

func newTestDB(t *testing.T, d dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{DB: conn, dialect: d, logger: logger.Nop()}
	if d == dialectPostgres {
		db.errorClassificator = NewPostgresErrorClassifier()
	}
	return db, mock
}

func newLocalRepo(t *testing.T) (*localDocumentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t, dialectSQLite)
	repo := NewLocalDocumentRepository(db, fixedRevs("abc"), logger.Nop()).(*localDocumentRepository)
	return repo, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

// ── Changes ───────────────────────────────────────────────────────────────────

func TestChanges_FullPageReportsPending(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT COALESCE(MAX(seq), 0) FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(10))
	mock.ExpectQuery(q("SELECT seq, id, rev, deleted FROM documents WHERE seq > ? AND (seq <= ?) ORDER BY seq LIMIT 2")).
		WithArgs(3, 10).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "id", "rev", "deleted"}).
			AddRow(4, "a", "1-a", false).
			AddRow(6, "b", "2-b", true))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM documents WHERE seq > ? AND (seq <= ?)")).
		WithArgs(6, 10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	resp, err := repo.Changes(context.Background(), models.ChangesRequest{Since: 3, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, []models.Change{
		{Seq: 4, ID: "a", Rev: "1-a"},
		{Seq: 6, ID: "b", Rev: "2-b", Deleted: true},
	}, resp.Results)
	assert.Equal(t, models.Seq(6), resp.LastSeq)
	assert.Equal(t, 3, resp.Pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChanges_ShortPageJumpsToUpdateSeq(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT COALESCE(MAX(seq), 0) FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(9))
	mock.ExpectQuery(q("SELECT seq, id, rev, deleted FROM documents WHERE seq > ? AND (seq <= ? AND ((json_extract(body, ?) = ?)) AND id IN (?,?)) ORDER BY seq LIMIT 5")).
		WithArgs(0, 9, "$.form.id", "household", "x", "y").
		WillReturnRows(sqlmock.NewRows([]string{"seq", "id", "rev", "deleted"}).AddRow(2, "x", "1-x", false))

	sel := models.Selector{Or: []models.Clause{{{Field: "form.id", Value: "household"}}}}
	resp, err := repo.Changes(context.Background(), models.ChangesRequest{Limit: 5, Selector: &sel, DocIDs: []string{"x", "y"}})
	require.NoError(t, err)

	assert.Len(t, resp.Results, 1)
	assert.Equal(t, models.Seq(9), resp.LastSeq)
	assert.Zero(t, resp.Pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChanges_SinceBeyondUpdateSeq(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT COALESCE(MAX(seq), 0) FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))
	mock.ExpectQuery(q("SELECT seq, id, rev, deleted FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "id", "rev", "deleted"}))

	resp, err := repo.Changes(context.Background(), models.ChangesRequest{Since: 42, Limit: 25})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, models.Seq(42), resp.LastSeq)
}

func TestChanges_QueryError(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT COALESCE(MAX(seq), 0) FROM documents")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Changes(context.Background(), models.ChangesRequest{Limit: 25})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── AllDocs / Find / BulkGet ──────────────────────────────────────────────────

func TestAllDocs_KeysIncludeTombstones(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT id, rev, deleted, body FROM documents WHERE id IN (?,?) ORDER BY id")).
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rev", "deleted", "body"}).
			AddRow("a", "1-a", false, `{"form":{"id":"household"}}`).
			AddRow("b", "3-b", true, `{}`))

	resp, err := repo.AllDocs(context.Background(), models.AllDocsRequest{Keys: []string{"a", "b"}, IncludeDocs: true})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	assert.Equal(t, models.RevValue{Rev: "1-a"}, resp.Rows[0].Value)
	require.NotNil(t, resp.Rows[0].Doc)
	assert.Equal(t, "household", resp.Rows[0].Doc.FormID())
	assert.Equal(t, models.RevValue{Rev: "3-b", Deleted: true}, resp.Rows[1].Value)
	assert.Nil(t, resp.Rows[1].Doc)
}

func TestAllDocs_Paging(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT id, rev, deleted, body FROM documents WHERE deleted = ? AND id >= ? ORDER BY id LIMIT 2")).
		WithArgs(false, "m").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rev", "deleted", "body"}).
			AddRow("m", "1-m", false, `{}`).
			AddRow("n", "1-n", false, `{}`))

	resp, err := repo.AllDocs(context.Background(), models.AllDocsRequest{StartKey: "m", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "n", resp.Rows[1].Key)
	assert.Nil(t, resp.Rows[0].Doc)
}

func TestFind_BookmarkAndProjection(t *testing.T) {
	repo, mock := newLocalRepo(t)

	sel := models.Selector{Or: []models.Clause{{{Field: "type", Value: "issue"}}}}

	mock.ExpectQuery(q("SELECT id, rev, deleted, body FROM documents WHERE deleted = ? AND ((json_extract(body, ?) = ?)) AND id > ? ORDER BY id LIMIT 2")).
		WithArgs(false, "$.type", "issue", "k").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rev", "deleted", "body"}).
			AddRow("p", "1-p", false, `{"type":"issue","title":"leak"}`))

	resp, err := repo.Find(context.Background(), models.FindRequest{Selector: sel, Fields: []string{"_id"}, Limit: 2, Bookmark: "k"})
	require.NoError(t, err)

	require.Len(t, resp.Docs, 1)
	assert.Equal(t, "p", resp.Bookmark)
	assert.Empty(t, resp.Docs[0].Fields)
}

func TestFind_EmptyPageKeepsBookmark(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT id, rev, deleted, body FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rev", "deleted", "body"}))

	resp, err := repo.Find(context.Background(), models.FindRequest{
		Selector: models.Selector{Or: []models.Clause{{{Field: "type", Value: "issue"}}}},
		Bookmark: "z",
	})
	require.NoError(t, err)
	assert.Equal(t, "z", resp.Bookmark)
	assert.Empty(t, resp.Docs)
}

func TestBulkGet_EmptyIDsSkipsQuery(t *testing.T) {
	repo, mock := newLocalRepo(t)

	docs, err := repo.BulkGet(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkGet_BadBody(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT id, rev, deleted, body FROM documents WHERE id IN (?)")).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rev", "deleted", "body"}).AddRow("a", "1-a", false, `{not json`))

	_, err := repo.BulkGet(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrDecodingBody)
}

// ── BulkDocs ──────────────────────────────────────────────────────────────────

func TestBulkDocs_AppliesWinnersOnly(t *testing.T) {
	repo, mock := newLocalRepo(t)

	docs := []models.Document{
		{ID: "new", Rev: "1-a", Fields: map[string]any{"v": 1.0}},
		{ID: "stale", Rev: "1-a"},
		{ID: "", Rev: "1-a"},
		{ID: "newer", Rev: "3-c"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE id = ?")).WithArgs("new").
		WillReturnRows(sqlmock.NewRows([]string{"rev"}))
	mock.ExpectExec(q("INSERT OR REPLACE INTO documents (id,rev,deleted,body) VALUES (?,?,?,?)")).
		WithArgs("new", "1-a", false, `{"v":1}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE id = ?")).WithArgs("stale").
		WillReturnRows(sqlmock.NewRows([]string{"rev"}).AddRow("2-b"))
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE id = ?")).WithArgs("newer").
		WillReturnRows(sqlmock.NewRows([]string{"rev"}).AddRow("2-b"))
	mock.ExpectExec(q("INSERT OR REPLACE INTO documents")).
		WithArgs("newer", "3-c", false, `{}`).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	results, err := repo.BulkDocs(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, results, 4)
	assert.True(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.Equal(t, "bad_request", results[2].Error)
	assert.True(t, results[3].OK())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkDocs_WriteErrorRollsBack(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"rev"}))
	mock.ExpectExec(q("INSERT OR REPLACE INTO documents")).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := repo.BulkDocs(context.Background(), []models.Document{{ID: "a", Rev: "1-a"}})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkDocs_ServerUpsertIsGroupScoped(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewServerDocumentRepository(db, logger.Nop()).ForGroup("g1")

	mock.ExpectBegin()
	mock.ExpectExec(q("SELECT pg_advisory_xact_lock(hashtextextended($1, 0));")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE group_id = $1 AND id = $2 FOR UPDATE")).
		WithArgs("g1", "a").
		WillReturnRows(sqlmock.NewRows([]string{"rev"}))
	mock.ExpectExec(q("INSERT INTO documents (group_id,id,rev,deleted,body) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (group_id, id) DO UPDATE SET")).
		WithArgs("g1", "a", "1-a", false, `{}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	results, err := repo.BulkDocs(context.Background(), []models.Document{{ID: "a", Rev: "1-a"}})
	require.NoError(t, err)
	assert.Equal(t, []models.BulkResult{{ID: "a", Rev: "1-a"}}, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two writers of one group: the second batch only draws sequences once the
// first has committed, and it re-reads the revision the first one stored.
func TestBulkDocs_ServerWritersOfOneGroupAreSerialised(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewServerDocumentRepository(db, logger.Nop()).ForGroup("g1")

	lock := q("SELECT pg_advisory_xact_lock(hashtextextended($1, 0));")
	read := q("SELECT rev FROM documents WHERE group_id = $1 AND id = $2 FOR UPDATE")
	write := q("INSERT INTO documents (group_id,id,rev,deleted,body)")

	// first writer stores 2-b
	mock.ExpectBegin()
	mock.ExpectExec(lock).WithArgs("g1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(read).WithArgs("g1", "a").WillReturnRows(sqlmock.NewRows([]string{"rev"}).AddRow("1-a"))
	mock.ExpectExec(write).WithArgs("g1", "a", "2-b", false, `{}`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// second writer offers the losing 2-a and must see 2-b
	mock.ExpectBegin()
	mock.ExpectExec(lock).WithArgs("g1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(read).WithArgs("g1", "a").WillReturnRows(sqlmock.NewRows([]string{"rev"}).AddRow("2-b"))
	mock.ExpectCommit()

	_, err := repo.BulkDocs(context.Background(), []models.Document{{ID: "a", Rev: "2-b"}})
	require.NoError(t, err)
	results, err := repo.BulkDocs(context.Background(), []models.Document{{ID: "a", Rev: "2-a"}})
	require.NoError(t, err)

	assert.Equal(t, []models.BulkResult{{ID: "a", Rev: "2-a"}}, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkDocs_ServerLockFailureWritesNothing(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewServerDocumentRepository(db, logger.Nop()).ForGroup("g1")

	mock.ExpectBegin()
	mock.ExpectExec(q("SELECT pg_advisory_xact_lock(hashtextextended($1, 0));")).
		WithArgs("g1").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	results, err := repo.BulkDocs(context.Background(), []models.Document{{ID: "a", Rev: "1-a"}})
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.Nil(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Info / Count ──────────────────────────────────────────────────────────────

func TestInfo(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM documents WHERE deleted = ?")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(q("SELECT COALESCE(MAX(seq), 0) FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(12))

	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StoreInfo{DocCount: 7, UpdateSeq: 12}, info)
}

func TestCountBySelector_ServerScope(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := &documentRepository{db: db, scope: sq.Eq{"group_id": "g1"}, logger: logger.Nop()}

	mock.ExpectQuery(q("SELECT COUNT(*) FROM documents WHERE group_id = $1 AND deleted = $2 AND ((body #>> $3::text[] = $4))")).
		WithArgs("g1", false, "{form,id}", "household").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountBySelector(context.Background(), models.Selector{Or: []models.Clause{{{Field: "form.id", Value: "household"}}}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

// ── Local edits ───────────────────────────────────────────────────────────────

func TestPut_NewDocumentGetsFirstRevision(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE id = ?")).WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"rev"}))
	mock.ExpectExec(q("INSERT OR REPLACE INTO documents")).
		WithArgs("a", "1-abc", false, `{"type":"issue"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	doc, err := repo.Put(context.Background(), models.Document{ID: "a", Fields: map[string]any{"type": "issue"}})
	require.NoError(t, err)
	assert.Equal(t, "1-abc", doc.Rev)
}

func TestPut_Conflict(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT rev FROM documents WHERE id = ?")).WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"rev"}).AddRow("2-x"))
	mock.ExpectRollback()

	_, err := repo.Put(context.Background(), models.Document{ID: "a", Rev: "1-x"})
	assert.ErrorIs(t, err, ErrDocumentConflict)
}

func TestEnsureIndex(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectExec(q("CREATE INDEX IF NOT EXISTS idx_by_form ON documents (json_extract(body, '$.form.id'), json_extract(body, '$.location.region'));")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.EnsureIndex(context.Background(), models.IndexDefinition{Name: "by_form", Fields: []string{"form.id", "location.region"}})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.EnsureIndex(context.Background(), models.IndexDefinition{Name: "bad name"}), ErrInvalidIndex)
	assert.ErrorIs(t, repo.EnsureIndex(context.Background(), models.IndexDefinition{Name: "x", Fields: []string{"a'b"}}), ErrInvalidIndex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReset(t *testing.T) {
	repo, mock := newLocalRepo(t)

	mock.ExpectExec(q("DELETE FROM documents;")).WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, repo.Reset(context.Background()))

	mock.ExpectExec(q("DELETE FROM documents;")).WillReturnError(sql.ErrConnDone)
	assert.ErrorIs(t, repo.Reset(context.Background()), ErrExecutingStatement)
}
