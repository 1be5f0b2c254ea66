package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers for trace ids, document ids
// and revision suffixes.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// RevSuffix returns a 32 character hex string used after the generation
// number of a revision.
func (g *UUIDGenerator) RevSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
