package transition

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/text"
)

// CloserManager runs the way out of a battle and routes to the closer that
// matches the encounter type.
type CloserManager struct {
	state   State
	current Variant

	wild    *WildCloser
	trainer *TrainerCloser
}

func NewCloserManager(res *Resources) *CloserManager {
	return &CloserManager{
		wild:    NewWildCloser(),
		trainer: NewTrainerCloser(res),
	}
}

func (m *CloserManager) State() State {
	return m.state
}

func (m *CloserManager) Current() Variant {
	return m.current
}

// Trainer exposes the trainer closer so callers can inspect its slide.
func (m *CloserManager) Trainer() *TrainerCloser {
	return m.trainer
}

// Begin selects the closer, resets it and spawns it. A nil winner means the
// encounter ended abnormally and the dialogue is simply hidden.
func (m *CloserManager) Begin(battleType encounter.Type, local encounter.ParticipantID, localName string, winner *encounter.ParticipantID, trainer *encounter.TrainerEntry, msg *text.MessageBox) {
	m.state = StateRun
	m.current = VariantFor(battleType)
	switch m.current {
	case VariantWild:
		m.wild.Reset()
		m.wild.Spawn(winner, msg)
	case VariantTrainer:
		m.trainer.Reset()
		m.trainer.Spawn(local, localName, winner, trainer, msg)
	default:
		panic(unknownVariant("closer begin", m.current))
	}
}

func (m *CloserManager) End() {
	m.state = StateBegin
}

func (m *CloserManager) Update(in *input.Input, delta float64, msg *text.MessageBox) {
	if m.state != StateRun {
		panic("transition: closer manager updated outside of run (state " + m.state.String() + ")")
	}
	if m.finishedUpdate(in, delta, msg) {
		m.state = StateEnd
	}
}

func (m *CloserManager) finishedUpdate(in *input.Input, delta float64, msg *text.MessageBox) bool {
	switch m.current {
	case VariantWild:
		m.wild.Update(delta)
		return m.wild.Finished()
	case VariantTrainer:
		m.trainer.Update(in, delta, msg)
		return m.trainer.Finished()
	default:
		panic(unknownVariant("closer update", m.current))
	}
}

// WorldActive is true while the closer runs and its variant has switched the
// world back on.
func (m *CloserManager) WorldActive() bool {
	if m.state != StateRun {
		return false
	}
	switch m.current {
	case VariantWild:
		return m.wild.WorldActive()
	case VariantTrainer:
		return m.trainer.WorldActive()
	default:
		panic(unknownVariant("closer world", m.current))
	}
}

func (m *CloserManager) Finished() bool {
	switch m.current {
	case VariantWild:
		return m.wild.Finished()
	case VariantTrainer:
		return m.trainer.Finished()
	default:
		panic(unknownVariant("closer finished", m.current))
	}
}

// Reset rewinds the manager and its selected closer.
func (m *CloserManager) Reset() {
	m.state = StateBegin
	switch m.current {
	case VariantWild:
		m.wild.Reset()
	case VariantTrainer:
		m.trainer.Reset()
	}
}

// Draw draws the overlay that sits above the world.
func (m *CloserManager) Draw(screen *ebiten.Image) {
	switch m.current {
	case VariantWild:
		m.wild.Draw(screen)
	case VariantTrainer:
		m.trainer.Draw(screen)
	default:
		panic(unknownVariant("closer draw", m.current))
	}
}

// DrawBattle draws closer sprites that belong to the battle scene.
func (m *CloserManager) DrawBattle(screen *ebiten.Image) {
	switch m.current {
	case VariantWild:
	case VariantTrainer:
		m.trainer.DrawBattle(screen)
	default:
		panic(unknownVariant("closer draw battle", m.current))
	}
}
