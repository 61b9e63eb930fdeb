package list

import (
	"fmt"

	"github.com/joshuapare/listkit/pkg/types"
)

// Config selects the store kind of a new list and its kind-scoped options.
// It is read once by New; later changes have no effect on the list.
type Config struct {
	// Kind selects exactly one of types.Indexed, types.Linked or
	// types.Associative. Required.
	Kind types.StoreKind

	// GrowthIncrement is the number of slots an indexed store grows by when
	// full. Indexed only; must be positive.
	// Default (NewConfig): types.DefaultGrowthIncrement
	GrowthIncrement int

	// InitialSize pre-reserves entries in a linked store. Linked only; advisory.
	InitialSize int

	// Tag is a short diagnostic label, normalised to at most
	// types.MaxTagLen visible characters.
	Tag string

	// ShiftOnRemove compacts an indexed store on removal instead of leaving
	// a hole. Removal becomes O(N); the store is never fragmented.
	ShiftOnRemove bool

	// InsertAtTail makes Insert and Push append to the end of a linked or
	// associative chain instead of prepending. Insert becomes O(N).
	InsertAtTail bool

	// UseFragFlag makes IsFragmented read an incrementally maintained flag
	// (O(1)) instead of scanning every slot (O(capacity)). Indexed only.
	UseFragFlag bool

	// MaxEntries caps the number of entries (and indexed slots). Growth past
	// the cap fails with an allocation error. 0 means the store limit.
	MaxEntries int

	// Engine owns tracing and registration for the list.
	// Default: the process-wide engine (see Init).
	Engine *Engine
}

// NewConfig returns the default configuration for kind.
func NewConfig(kind types.StoreKind) Config {
	cfg := Config{Kind: kind}
	if kind == types.Indexed {
		cfg.GrowthIncrement = types.DefaultGrowthIncrement
	}
	return cfg
}

// validate rejects kind selections and option combinations that do not apply.
func (c *Config) validate() error {
	if !c.Kind.Valid() {
		return invalidConfig("store kind %s: exactly one of indexed, linked, associative required", c.Kind)
	}
	if c.MaxEntries < 0 {
		return invalidConfig("max entries %d is negative", c.MaxEntries)
	}

	indexed := c.Kind == types.Indexed
	switch {
	case indexed && c.GrowthIncrement <= 0:
		return invalidConfig("growth increment %d must be positive", c.GrowthIncrement)
	case !indexed && c.GrowthIncrement != 0:
		return invalidConfig("growth increment applies to indexed lists only")
	case !indexed && c.ShiftOnRemove:
		return invalidConfig("shift on remove applies to indexed lists only")
	case !indexed && c.UseFragFlag:
		return invalidConfig("fragmentation flag applies to indexed lists only")
	case indexed && c.InsertAtTail:
		return invalidConfig("insert at tail applies to linked and associative lists only")
	case c.Kind != types.Linked && c.InitialSize != 0:
		return invalidConfig("initial size applies to linked lists only")
	case c.InitialSize < 0:
		return invalidConfig("initial size %d is negative", c.InitialSize)
	}
	return nil
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), types.ErrInvalidArgument)
}
