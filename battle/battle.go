package battle

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/input"
)

// Battle is the combat engine driven during PhaseBattle. The manager never
// looks inside it beyond this surface.
type Battle interface {
	Begin()
	Update(rng *rand.Rand, delta float64, moves encounter.MoveCatalog, items encounter.ItemCatalog)
	Finished() bool
	Winner() (encounter.ParticipantID, bool)
}

// Commander is implemented by engines that accept the local player's menu
// choices.
type Commander interface {
	Command(id encounter.ParticipantID, action encounter.Action)
}

// Reporter is implemented by engines that narrate turns. Messages drains the
// lines produced since the last call.
type Reporter interface {
	Messages() []string
}

// Field is implemented by engines that expose the active combatants so the
// status panels can track HP and switches.
type Field interface {
	Active(id encounter.ParticipantID) (encounter.Combatant, bool)
}

// Result is implemented by engines that can report the local party after the
// encounter for the save write-back.
type Result interface {
	Party(id encounter.ParticipantID) (encounter.Party, bool)
}

// EngineFactory builds the engine for one encounter.
type EngineFactory func(save *encounter.Save, entry encounter.Entry) (Battle, error)

// PlayerGui is the local player's input surface during PhaseBattle.
type PlayerGui interface {
	Reset()
	Start()
	Update(in *input.Input, delta float64)
	Draw(screen *ebiten.Image)
	Actions() []encounter.Action
}

type moveSetter interface {
	SetMoves(names []string)
}
