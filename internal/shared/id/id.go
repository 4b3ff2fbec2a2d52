// Package id provides stable advisory identifiers for catalog records.
//
// Identifiers are derived from a seeded, non-cryptographic hash of a
// case-folded key, so the same key always yields the same 16 bytes:
//   - Deterministic: Identical across runs and processes
//   - Case-insensitive: "Weapons/Rifle" and "weapons/rifle" collide on purpose
//   - Advisory: Not unique under adversarial input, never use for security
package id

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// ============================================================================
// Stable Identifiers
// ============================================================================

// Hasher derives stable identifiers from string keys
type Hasher struct {
	seed uint64
}

// NewHasher creates a hasher mixing seed into every identifier
func NewHasher(seed uint64) *Hasher {
	return &Hasher{seed: seed}
}

// DefaultHasher returns the hasher used for record identifiers
func DefaultHasher() *Hasher {
	return NewHasher(0)
}

// Stable returns the identifier for key. An empty key yields uuid.Nil.
func (h *Hasher) Stable(key string) uuid.UUID {
	if key == "" {
		return uuid.Nil
	}

	folded := Fold(key)

	// The folded key seeds a second digest, mirroring a seeded byte generator
	seed := xxhash.Sum64String(folded) ^ h.seed

	var out [16]byte
	binary.BigEndian.PutUint64(out[:8], seed)

	d := xxhash.NewWithSeed(seed)
	_, _ = d.WriteString(folded)
	binary.BigEndian.PutUint64(out[8:], d.Sum64())

	return uuid.UUID(out)
}

// Stable returns the identifier for key using the default hasher
func Stable(key string) uuid.UUID {
	return DefaultHasher().Stable(key)
}

// ============================================================================
// Key Normalization
// ============================================================================

// Fold case-folds key independent of any locale
func Fold(key string) string {
	// Casers carry state, build one per call
	return cases.Fold().String(key)
}
