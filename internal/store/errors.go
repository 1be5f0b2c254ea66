package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when a document lookup by id finds
	// nothing.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentConflict is returned by a local edit whose base revision is
	// no longer the current one.
	ErrDocumentConflict = errors.New("document update conflict")

	// ErrDeviceNotFound is returned when no device is registered under the
	// requested group and id.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDeviceAlreadyExists is returned when a registration reuses a device
	// id within a group.
	ErrDeviceAlreadyExists = errors.New("device already exists")

	// ErrInvalidSelector is returned when a selector field path cannot be
	// translated into SQL.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidIndex is returned when an index definition has an unusable
	// name or field list.
	ErrInvalidIndex = errors.New("invalid index definition")

	// ErrVariableNotFound is returned when a variables key is absent.
	ErrVariableNotFound = errors.New("variable not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values from a result
	// row fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrDecodingBody is returned when a stored JSON body cannot be decoded.
	ErrDecodingBody = errors.New("failed to decode document body")
)
