// Package random provides seed generation for dice sources.
//
// Seeds come from crypto/rand so that live rolls are unpredictable, while a
// caller-provided seed makes a roll replayable.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedSource records where a seed came from.
type SeedSource string

const (
	// SeedSourceGenerated marks a seed drawn from crypto/rand.
	SeedSourceGenerated SeedSource = "generated"
	// SeedSourceProvided marks a seed supplied by the caller for replay.
	SeedSourceProvided SeedSource = "provided"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the provided seed when present and otherwise asks
// generate for a fresh one. A nil generate defaults to NewSeed.
func ResolveSeed(provided *int64, generate func() (int64, error)) (int64, SeedSource, error) {
	if provided != nil {
		return *provided, SeedSourceProvided, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	seed, err := generate()
	if err != nil {
		return 0, "", fmt.Errorf("resolve seed: %w", err)
	}
	return seed, SeedSourceGenerated, nil
}
