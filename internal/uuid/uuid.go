// Package uuid generates identifiers for checks and combatants behind an
// interface so tests can supply fixed IDs.
package uuid

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"github.com/google/uuid"
)

// Generator is an interface for generating IDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator using Google's UUID package
type GoogleUUIDGenerator struct {
	prefix string
}

// New generates a new random UUID string, prefixed when configured
func (g *GoogleUUIDGenerator) New() string {
	return g.prefix + uuid.NewString()
}

// NewGoogleUUIDGenerator creates a generator of bare UUIDs
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// NewPrefixedGenerator creates a generator of IDs like "chk_<uuid>"
func NewPrefixedGenerator(prefix string) *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{prefix: prefix + "_"}
}
