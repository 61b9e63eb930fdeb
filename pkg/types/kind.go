package types

import (
	"fmt"
	"math/bits"
)

// StoreKind selects the backing strategy of a list. Kinds are distinct bits so
// that a configuration naming several kinds at once can be detected and rejected.
type StoreKind uint8

const (
	// Indexed is a growable slot array with O(1) positional access.
	Indexed StoreKind = 1 << iota
	// Linked is a singly linked chain with compaction-free removal.
	Linked
	// Associative is a singly linked chain of key-tagged entries.
	Associative
)

// Valid reports whether exactly one known kind is selected.
func (k StoreKind) Valid() bool {
	return bits.OnesCount8(uint8(k)) == 1 && k&^(Indexed|Linked|Associative) == 0
}

func (k StoreKind) String() string {
	switch k {
	case Indexed:
		return "indexed"
	case Linked:
		return "linked"
	case Associative:
		return "associative"
	case 0:
		return "none"
	default:
		return fmt.Sprintf("StoreKind(%#x)", uint8(k))
	}
}

// StoreKinds lists every valid kind in reporting order.
var StoreKinds = [...]StoreKind{Indexed, Linked, Associative}
