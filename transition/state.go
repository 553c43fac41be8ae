package transition

import (
	"fmt"

	"github.com/milk9111/firebattle/encounter"
)

// State is the progress of a three-step sequencer. StateBegin is both the
// initial value and the value a sequencer returns to once it is ended, so the
// same manager can run the next encounter without teardown.
type State uint8

const (
	StateBegin State = iota
	StateRun
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateBegin:
		return "begin"
	case StateRun:
		return "run"
	case StateEnd:
		return "end"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Variant selects which concrete animation a dispatcher routes to. The zero
// value means no phase has begun yet.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantWild
	VariantTrainer
)

func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantWild:
		return "wild"
	case VariantTrainer:
		return "trainer"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// VariantFor maps an encounter type to its animation variant: wild encounters
// get the wild variant, every other type the trainer variant.
func VariantFor(t encounter.Type) Variant {
	if t == encounter.Wild {
		return VariantWild
	}
	return VariantTrainer
}

func unknownVariant(kind string, v Variant) string {
	return fmt.Sprintf("transition: %s dispatched with no active variant (%s)", kind, v)
}
