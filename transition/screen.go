package transition

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gui"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/text"
)

// ScreenManager sequences the way into a battle: the wipe over the world,
// then the introduction. Once the introduction finishes the manager sits in
// StateEnd until End is called.
type ScreenManager struct {
	state State

	wipe  *VerticalClose
	intro *IntroductionManager
}

func NewScreenManager(res *Resources) *ScreenManager {
	return &ScreenManager{
		wipe:  NewVerticalClose(),
		intro: NewIntroductionManager(res),
	}
}

func (m *ScreenManager) State() State {
	return m.state
}

// Introduction exposes the introduction dispatcher.
func (m *ScreenManager) Introduction() *IntroductionManager {
	return m.intro
}

func (m *ScreenManager) Begin(battleType encounter.Type, local, opponent encounter.Combatant, trainer *encounter.TrainerEntry, msg *text.MessageBox) {
	m.state = StateRun
	m.wipe.Spawn()
	m.intro.Begin(battleType, local, opponent, trainer, msg)
}

func (m *ScreenManager) Update(in *input.Input, delta float64, g *gui.BattleGui, msg *text.MessageBox) {
	if m.state != StateRun {
		panic("transition: screen manager updated outside of run (state " + m.state.String() + ")")
	}
	if !m.wipe.Finished() {
		m.wipe.Update(delta)
		return
	}
	m.intro.Update(in, delta, g, msg)
	if m.intro.Finished() {
		m.state = StateEnd
	}
}

// End returns the manager to StateBegin. The introduction itself is reset by
// the next Begin.
func (m *ScreenManager) End() {
	m.state = StateBegin
	m.wipe.Despawn()
}

// Reset abandons whatever the manager was doing: the wipe is despawned and the
// introduction rewound.
func (m *ScreenManager) Reset() {
	m.state = StateBegin
	m.wipe.Despawn()
	m.intro.Reset()
}

// Wipe exposes the vertical close run before the introduction.
func (m *ScreenManager) Wipe() *VerticalClose {
	return m.wipe
}

func (m *ScreenManager) Draw(screen *ebiten.Image, g *gui.BattleGui) {
	if m.state == StateBegin {
		return
	}
	if !m.wipe.Finished() {
		m.wipe.Draw(screen)
		return
	}
	g.DrawBackground(screen)
	m.intro.Draw(screen, g)
}
