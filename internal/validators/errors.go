package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID          = errors.New("document _id is required")
	ErrReservedID       = errors.New("document _id uses a reserved prefix")
	ErrInvalidRev       = errors.New("document _rev must look like N-suffix")
	ErrEmptyDocuments   = errors.New("documents list cannot be empty")
	ErrEmptyLocation    = errors.New("location has no nodes")
	ErrInvalidLocation  = errors.New("location node needs a level and a value")
	ErrEmptyAssignedIDs = errors.New("assigned form response id cannot be empty")
)
