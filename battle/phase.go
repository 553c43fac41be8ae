package battle

import (
	"fmt"

	"github.com/milk9111/firebattle/encounter"
)

// PhaseKind is one of the four top-level stages of an encounter.
type PhaseKind uint8

const (
	PhaseBegin PhaseKind = iota
	PhaseTransition
	PhaseBattle
	PhaseCloser
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseBegin:
		return "begin"
	case PhaseTransition:
		return "transition"
	case PhaseBattle:
		return "battle"
	case PhaseCloser:
		return "closer"
	default:
		return fmt.Sprintf("phase(%d)", uint8(k))
	}
}

// Phase is the orchestrator state. Winner is only meaningful for PhaseCloser
// and is nil when the encounter ended without one.
type Phase struct {
	Kind   PhaseKind
	Winner *encounter.ParticipantID
}

func (p Phase) String() string {
	if p.Kind != PhaseCloser {
		return p.Kind.String()
	}
	if p.Winner == nil {
		return "closer(none)"
	}
	return "closer(" + p.Winner.String() + ")"
}
