package types

import "math"

// ============================================================================
// Engine Limits and Defaults
// ============================================================================

const (
	// DefaultGrowthIncrement is the number of slots an indexed store grows by
	// when it runs out of capacity.
	DefaultGrowthIncrement = 64

	// MaxTagLen is the number of visible characters kept from a diagnostic tag.
	MaxTagLen = 15

	// MaxChainEntries is the hard limit for linked and associative stores.
	// Chain entries are addressed by int32 arena references.
	MaxChainEntries = math.MaxInt32

	// MaxIndexedSlots is the hard limit for the slot array of an indexed store.
	MaxIndexedSlots = math.MaxInt32
)
