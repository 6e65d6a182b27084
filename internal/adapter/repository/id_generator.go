package repository

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/iho/pocketledger/internal/usecase"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// UUIDGenerator generates random UUIDv4 IDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate generates a new UUID.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// NewIDGenerator picks a generator by scheme name; anything but "uuid" gets ULIDs.
func NewIDGenerator(scheme string) usecase.IDGenerator {
	if scheme == "uuid" {
		return NewUUIDGenerator()
	}
	return NewULIDGenerator()
}
