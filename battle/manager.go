package battle

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/audio"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gui"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/text"
	"github.com/milk9111/firebattle/transition"
	"github.com/rs/zerolog/log"
)

const (
	// maxFreeTransitions bounds how many zero-duration phase changes a single
	// Update may chain.
	maxFreeTransitions = 8

	messageWait = 0.75
)

// Options configures a Manager. NewBattle is required.
type Options struct {
	Resources  *transition.Resources
	NewBattle  EngineFactory
	Player     PlayerGui
	Background *ebiten.Image

	Moves encounter.MoveCatalog
	Items encounter.ItemCatalog

	// TextSpeed is the dialogue reveal rate in characters per second.
	TextSpeed float64
	// Debug enables the end-battle escape key.
	Debug bool
	Seed  uint64
}

// Manager is the battle phase orchestrator. One manager is created with the
// game and reused for every encounter.
type Manager struct {
	// Finished is set once an encounter is over, either through the closer or
	// through End. The game loop polls it.
	Finished bool

	opts  Options
	phase Phase

	gui    *gui.BattleGui
	player PlayerGui
	screen *transition.ScreenManager
	closer *transition.CloserManager

	engine   Battle
	save     *encounter.Save
	entry    encounter.Entry
	local    encounter.Combatant
	opponent encounter.Combatant

	rng *rand.Rand

	// resume is the track to go back to once the battle track was started.
	resume  string
	swapped bool
}

func New(opts Options) *Manager {
	if opts.NewBattle == nil {
		panic("battle: Options.NewBattle is required")
	}
	if opts.Player == nil {
		opts.Player = gui.NewActionMenu()
	}

	m := &Manager{
		opts:   opts,
		gui:    gui.NewBattleGui(opts.Background),
		player: opts.Player,
		screen: transition.NewScreenManager(opts.Resources),
		closer: transition.NewCloserManager(opts.Resources),
	}
	if opts.TextSpeed > 0 {
		m.gui.Text.SetSpeed(opts.TextSpeed)
	}
	m.Seed(opts.Seed)
	return m
}

// Begin starts a new encounter. It returns false, leaving the manager exactly
// as it was, when either side has nobody able to fight or the engine cannot
// be built.
func (m *Manager) Begin(save *encounter.Save, entry encounter.Entry) bool {
	if save == nil || len(save.Party) == 0 || len(entry.Party) == 0 || !save.Party.Ready() {
		log.Debug().Str("component", "battle").Str("opponent", entry.ID.String()).Msg("rejected encounter: empty or fainted roster")
		return false
	}
	opponent, ok := entry.ActiveCombatant()
	if !ok {
		log.Debug().Str("component", "battle").Str("opponent", entry.ID.String()).Msg("rejected encounter: opponent cannot fight")
		return false
	}
	local, _ := save.Lead()

	engine, err := m.opts.NewBattle(save, entry)
	if err != nil {
		log.Warn().Str("component", "battle").Str("opponent", entry.ID.String()).Err(err).Msg("could not create battle")
		return false
	}

	m.Finished = false
	m.phase = Phase{}
	m.closer.Reset()
	m.engine = engine
	m.save = save
	m.entry = entry
	m.local = local
	m.opponent = opponent

	m.gui.Player.Set(local, m.species(local.Species, true))
	m.gui.Opponent.Set(opponent, m.species(opponent.Species, false))
	m.setMoves(local)

	log.Info().
		Str("component", "battle").
		Str("opponent", entry.ID.String()).
		Stringer("type", entry.Type).
		Msg("encounter started")
	return true
}

// Update advances the encounter by one frame, chaining zero-duration phase
// changes so that a phase with nothing to show never costs a frame.
func (m *Manager) Update(in *input.Input, delta float64) {
	if in == nil {
		in = &input.Input{}
	}
	if m.opts.Debug && in.DebugEnd {
		log.Debug().Str("component", "battle").Msg("debug end")
		m.End()
		return
	}
	if m.engine == nil || m.Finished {
		return
	}

	for range maxFreeTransitions {
		from := m.phase.Kind
		if !m.step(in, delta) {
			return
		}
		// The press that closed the introduction must not reach the
		// player gui it just opened.
		if from == PhaseTransition && m.phase.Kind == PhaseBattle {
			in = &input.Input{}
		}
	}
	log.Error().
		Str("component", "battle").
		Stringer("phase", m.phase).
		Int("limit", maxFreeTransitions).
		Msg("free transition limit reached")
}

// step runs the current phase once and reports whether it changed state in a
// way that should be followed up within the same frame.
func (m *Manager) step(in *input.Input, delta float64) bool {
	switch m.phase.Kind {
	case PhaseBegin:
		m.player.Reset()
		m.gui.Reset()
		m.closer.Reset()
		m.setPhase(Phase{Kind: PhaseTransition})
		m.screen.Reset()
		m.startMusic()
		m.engine.Begin()
		return true

	case PhaseTransition:
		switch m.screen.State() {
		case transition.StateBegin:
			m.screen.Begin(m.entry.Type, m.local, m.opponent, m.entry.Trainer, m.gui.Text)
			return true
		case transition.StateRun:
			m.screen.Update(in, delta, m.gui, m.gui.Text)
			return false
		default:
			m.screen.End()
			m.setPhase(Phase{Kind: PhaseBattle})
			m.player.Start()
			return true
		}

	case PhaseBattle:
		m.updateBattle(in, delta)
		return false

	case PhaseCloser:
		switch m.closer.State() {
		case transition.StateBegin:
			m.closer.Begin(m.entry.Type, m.save.ID, m.save.Name, m.phase.Winner, m.entry.Trainer, m.gui.Text)
			return true
		case transition.StateRun:
			m.closer.Update(in, delta, m.gui.Text)
			return false
		default:
			m.closer.End()
			m.setPhase(Phase{})
			m.Finished = true
			m.restoreMusic()
			log.Info().Str("component", "battle").Str("opponent", m.entry.ID.String()).Msg("encounter finished")
			return false
		}
	}
	panic("battle: unknown phase " + m.phase.String())
}

func (m *Manager) updateBattle(in *input.Input, delta float64) {
	if !m.engine.Finished() {
		m.engine.Update(m.rng, delta, m.opts.Moves, m.opts.Items)
	}
	m.syncField()
	m.narrate()

	box := m.gui.Text
	if box.Alive() {
		box.Update(in, delta)
		if box.Finished() {
			box.Despawn()
		}
	} else {
		m.player.Update(in, delta)
		actions := m.player.Actions()
		if cmd, ok := m.engine.(Commander); ok {
			for _, a := range actions {
				cmd.Command(m.save.ID, a)
			}
		}
	}

	// Narration is drained before the closer takes the dialogue surface.
	if m.engine.Finished() && !box.Alive() {
		var winner *encounter.ParticipantID
		if id, ok := m.engine.Winner(); ok {
			winner = &id
		}
		m.setPhase(Phase{Kind: PhaseCloser, Winner: winner})
	}
}

func (m *Manager) narrate() {
	r, ok := m.engine.(Reporter)
	if !ok {
		return
	}
	lines := r.Messages()
	if len(lines) == 0 {
		return
	}
	box := m.gui.Text
	if !box.Alive() {
		box.Clear()
	}
	for _, line := range lines {
		box.Push(text.Timed(messageWait, line))
	}
	if !box.Alive() {
		box.Spawn()
	}
}

func (m *Manager) syncField() {
	f, ok := m.engine.(Field)
	if !ok {
		return
	}
	if c, ok := f.Active(m.save.ID); ok {
		if sameMember(c, m.gui.Player.Combatant) {
			m.gui.Player.Combatant = c
		} else {
			m.gui.Player.Set(c, m.species(c.Species, true))
			m.setMoves(c)
		}
	}
	if c, ok := f.Active(m.entry.ID); ok {
		if sameMember(c, m.gui.Opponent.Combatant) {
			m.gui.Opponent.Combatant = c
		} else {
			m.gui.Opponent.Set(c, m.species(c.Species, false))
		}
	}
}

func sameMember(a, b encounter.Combatant) bool {
	return a.Species == b.Species && a.Name == b.Name
}

// End aborts the encounter immediately. The phase returns to PhaseBegin and
// Finished is set.
func (m *Manager) End() {
	m.Finished = true
	switch m.phase.Kind {
	case PhaseTransition:
		m.screen.End()
	case PhaseBattle:
		m.engine = nil
	case PhaseCloser:
		m.closer.End()
	}
	m.setPhase(Phase{})
	m.restoreMusic()
}

// BattleMusic is the track played during entry: the trainer's own theme when
// it has one, otherwise the track for the encounter type.
func BattleMusic(entry encounter.Entry) string {
	if entry.Trainer != nil && entry.Trainer.Music != "" {
		return entry.Trainer.Music
	}
	switch entry.Type {
	case encounter.Trainer:
		return audio.MusicBattleTrainer
	case encounter.GymLeader:
		return audio.MusicBattleGym
	default:
		return audio.MusicBattleWild
	}
}

func (m *Manager) startMusic() {
	res := m.opts.Resources
	if !m.swapped {
		m.resume = res.CurrentMusic()
	}
	m.swapped = true
	res.PlayMusic(BattleMusic(m.entry))
}

func (m *Manager) restoreMusic() {
	if !m.swapped {
		return
	}
	m.swapped = false
	m.opts.Resources.PlayMusic(m.resume)
}

// WorldActive reports whether the map should be drawn and simulated behind
// the battle.
func (m *Manager) WorldActive() bool {
	return m.phase.Kind == PhaseTransition || m.closer.WorldActive()
}

// Winner is the engine's winner, if an engine is attached and has one.
func (m *Manager) Winner() (encounter.ParticipantID, bool) {
	if m.engine == nil {
		return "", false
	}
	return m.engine.Winner()
}

func (m *Manager) Phase() Phase {
	return m.phase
}

// Closer exposes the closer dispatcher.
func (m *Manager) Closer() *transition.CloserManager {
	return m.closer
}

// Gui exposes the battle screen shared by every phase.
func (m *Manager) Gui() *gui.BattleGui {
	return m.gui
}

// Transcript is every dialogue page shown so far, oldest first.
func (m *Manager) Transcript() []string {
	return m.gui.Text.Transcript()
}

// SetCatalogs swaps the move and item tables used from the next engine
// update on, e.g. after prefab data was reloaded.
func (m *Manager) SetCatalogs(moves encounter.MoveCatalog, items encounter.ItemCatalog) {
	m.opts.Moves = moves
	m.opts.Items = items
}

// Seed reseeds the random source handed to the engine.
func (m *Manager) Seed(seed uint64) {
	m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// UpdateData writes the outcome of the last encounter into save: the party's
// HP as the engine left it and, for a win over a trainer, the reward, the
// defeat record and the badge. A trainer already on the defeat record pays
// nothing again. It reports whether the local player won.
func (m *Manager) UpdateData(winner encounter.ParticipantID, save *encounter.Save) bool {
	if save == nil {
		return false
	}
	if r, ok := m.engine.(Result); ok {
		if party, ok := r.Party(save.ID); ok {
			for i := range save.Party {
				if i < len(party) {
					save.Party[i].HP = party[i].HP
				}
			}
		}
	}
	if winner != save.ID {
		return false
	}

	trainer := m.entry.Trainer
	if trainer == nil || !m.entry.ID.IsTrainer() {
		return true
	}
	npc := m.entry.ID.NPC()
	if save.Defeated[npc] {
		log.Debug().Str("component", "battle").Str("trainer", npc).Msg("reward already granted")
		return true
	}
	if save.Defeated == nil {
		save.Defeated = make(map[string]bool)
	}
	save.Money += trainer.Worth
	save.Defeated[npc] = true
	for _, other := range trainer.Disable {
		save.Defeated[other] = true
	}
	if trainer.Badge != "" && !save.HasBadge(trainer.Badge) {
		save.Badges = append(save.Badges, trainer.Badge)
	}
	log.Info().
		Str("component", "battle").
		Str("trainer", npc).
		Uint32("worth", trainer.Worth).
		Strs("disabled", trainer.Disable).
		Msg("trainer defeated")
	return true
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.engine == nil {
		return
	}
	switch m.phase.Kind {
	case PhaseTransition:
		m.screen.Draw(screen, m.gui)
	case PhaseBattle:
		m.gui.Draw(screen)
		if !m.gui.Text.Alive() {
			m.player.Draw(screen)
		}
	case PhaseCloser:
		switch m.closer.State() {
		case transition.StateBegin:
			m.gui.Draw(screen)
		case transition.StateRun:
			if !m.WorldActive() {
				m.gui.DrawField(screen)
				m.closer.DrawBattle(screen)
				m.gui.Text.Draw(screen)
			}
			m.closer.Draw(screen)
		}
	}
}

func (m *Manager) setPhase(p Phase) {
	if p.Kind != m.phase.Kind {
		log.Debug().Str("component", "battle").Stringer("from", m.phase).Stringer("to", p).Msg("phase")
	}
	m.phase = p
}

func (m *Manager) setMoves(c encounter.Combatant) {
	ms, ok := m.player.(moveSetter)
	if !ok {
		return
	}
	names := make([]string, 0, len(c.Moves))
	for _, id := range c.Moves {
		names = append(names, m.opts.Moves.Lookup(id).Name)
	}
	ms.SetMoves(names)
}

func (m *Manager) species(id int, back bool) *ebiten.Image {
	res := m.opts.Resources
	if res == nil || res.Textures == nil {
		return nil
	}
	return res.Textures.Species(id, back)
}
