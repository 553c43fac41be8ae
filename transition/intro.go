package transition

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gui"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/text"
)

// IntroductionManager holds one instance of every introduction and routes to
// the one selected when the transition began.
type IntroductionManager struct {
	current Variant

	wild    *WildIntroduction
	trainer *TrainerIntroduction
}

func NewIntroductionManager(res *Resources) *IntroductionManager {
	return &IntroductionManager{
		wild:    NewWildIntroduction(res),
		trainer: NewTrainerIntroduction(res),
	}
}

// Current is the selected variant, VariantNone before the first Begin.
func (m *IntroductionManager) Current() Variant {
	return m.current
}

// Begin selects the variant for battleType, resets it and spawns it.
func (m *IntroductionManager) Begin(battleType encounter.Type, local, opponent encounter.Combatant, trainer *encounter.TrainerEntry, msg *text.MessageBox) {
	m.current = VariantFor(battleType)
	switch m.current {
	case VariantWild:
		m.wild.Reset()
		m.wild.Spawn(local, opponent, msg)
	case VariantTrainer:
		m.trainer.Reset()
		m.trainer.Spawn(local, opponent, trainer, msg)
	default:
		panic(unknownVariant("introduction begin", m.current))
	}
}

func (m *IntroductionManager) Update(in *input.Input, delta float64, g *gui.BattleGui, msg *text.MessageBox) {
	switch m.current {
	case VariantWild:
		m.wild.Update(in, delta, g, msg)
	case VariantTrainer:
		m.trainer.Update(in, delta, g, msg)
	default:
		panic(unknownVariant("introduction update", m.current))
	}
}

func (m *IntroductionManager) Finished() bool {
	switch m.current {
	case VariantWild:
		return m.wild.Finished()
	case VariantTrainer:
		return m.trainer.Finished()
	default:
		panic(unknownVariant("introduction finished", m.current))
	}
}

// Reset resets the selected variant, if any.
func (m *IntroductionManager) Reset() {
	switch m.current {
	case VariantWild:
		m.wild.Reset()
	case VariantTrainer:
		m.trainer.Reset()
	}
}

func (m *IntroductionManager) Draw(screen *ebiten.Image, g *gui.BattleGui) {
	switch m.current {
	case VariantWild:
		m.wild.Draw(screen, g)
	case VariantTrainer:
		m.trainer.Draw(screen, g)
	default:
		panic(unknownVariant("introduction draw", m.current))
	}
}
