package models

// Seq is a position in a store's change feed. Sequences only grow.
type Seq int64

// Direction of a replication.
type Direction string

const (
	DirectionPush Direction = "push"
	DirectionPull Direction = "pull"
)

// Valid reports whether d names a known direction.
func (d Direction) Valid() bool {
	return d == DirectionPush || d == DirectionPull
}

// Change is one entry of a change feed. Only the latest change of a document
// is reported.
type Change struct {
	Seq     Seq    `json:"seq"`
	ID      string `json:"id"`
	Rev     string `json:"rev"`
	Deleted bool   `json:"deleted,omitempty"`
}

// ChangesRequest reads the change feed after Since.
type ChangesRequest struct {
	Since    Seq       `json:"since"`
	Limit    int       `json:"limit,omitempty"`
	Selector *Selector `json:"selector,omitempty"`
	DocIDs   []string  `json:"doc_ids,omitempty"`
}

// ChangesResponse is one page of the change feed.
type ChangesResponse struct {
	Results []Change `json:"results"`
	LastSeq Seq      `json:"last_seq"`
	Pending int      `json:"pending"`
}

// AllDocsRequest lists documents ordered by id. When Keys is set only those
// ids are looked up and paging fields are ignored. StartKey is inclusive.
type AllDocsRequest struct {
	StartKey    string   `json:"startkey,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Keys        []string `json:"keys,omitempty"`
	IncludeDocs bool     `json:"include_docs,omitempty"`
}

// RevValue is the value of an all-docs row.
type RevValue struct {
	Rev     string `json:"rev"`
	Deleted bool   `json:"deleted,omitempty"`
}

// AllDocsRow is a single row of an all-docs listing.
type AllDocsRow struct {
	ID    string    `json:"id"`
	Key   string    `json:"key"`
	Value RevValue  `json:"value"`
	Doc   *Document `json:"doc,omitempty"`
}

// AllDocsResponse is one page of an all-docs listing.
type AllDocsResponse struct {
	Rows []AllDocsRow `json:"rows"`
}

// FindRequest queries documents matching Selector, paged by an opaque
// bookmark.
type FindRequest struct {
	Selector Selector `json:"selector"`
	Fields   []string `json:"fields,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Bookmark string   `json:"bookmark,omitempty"`
}

// FindResponse is one page of a find query.
type FindResponse struct {
	Docs     []Document `json:"docs"`
	Bookmark string     `json:"bookmark"`
}

// BulkResult reports the outcome of one document in a bulk write.
type BulkResult struct {
	ID     string `json:"id"`
	Rev    string `json:"rev,omitempty"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// OK reports whether the write succeeded.
func (r BulkResult) OK() bool {
	return r.Error == ""
}

// StoreInfo summarises a document store.
type StoreInfo struct {
	DocCount  int64 `json:"doc_count"`
	UpdateSeq Seq   `json:"update_seq"`
}

// BulkGetRef names one document of a bulk read.
type BulkGetRef struct {
	ID string `json:"id"`
}

// BulkGetRequest reads the current revision of every listed document.
type BulkGetRequest struct {
	Docs []BulkGetRef `json:"docs"`
}

// BulkGetDoc holds either the document or the reason it could not be read.
type BulkGetDoc struct {
	OK    *Document   `json:"ok,omitempty"`
	Error *BulkResult `json:"error,omitempty"`
}

// BulkGetResult groups the answers for one requested id.
type BulkGetResult struct {
	ID   string       `json:"id"`
	Docs []BulkGetDoc `json:"docs"`
}

// BulkGetResponse is the answer to a [BulkGetRequest].
type BulkGetResponse struct {
	Results []BulkGetResult `json:"results"`
}

// Documents returns the documents that were found, in request order.
func (r BulkGetResponse) Documents() []Document {
	docs := make([]Document, 0, len(r.Results))
	for _, res := range r.Results {
		for _, d := range res.Docs {
			if d.OK != nil {
				docs = append(docs, *d.OK)
			}
		}
	}
	return docs
}

// BulkDocsRequest writes documents with their revisions as given. NewEdits is
// always false for replication writes.
type BulkDocsRequest struct {
	Docs     []Document `json:"docs"`
	NewEdits bool       `json:"new_edits"`
}
