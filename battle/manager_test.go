package battle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/audio"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/transition"
)

const frame = 0.125

var (
	idle    = &input.Input{}
	confirm = &input.Input{ConfirmPressed: true}
)

type fakeEngine struct {
	begun    int
	updates  int
	finished bool
	winner   encounter.ParticipantID
	won      bool
	commands []encounter.Action
	messages []string
	party    encounter.Party
}

func (f *fakeEngine) Begin() { f.begun++ }

func (f *fakeEngine) Update(rng *rand.Rand, delta float64, moves encounter.MoveCatalog, items encounter.ItemCatalog) {
	f.updates++
}

func (f *fakeEngine) Finished() bool { return f.finished }

func (f *fakeEngine) Winner() (encounter.ParticipantID, bool) { return f.winner, f.won }

func (f *fakeEngine) Command(id encounter.ParticipantID, a encounter.Action) {
	f.commands = append(f.commands, a)
}

func (f *fakeEngine) Messages() []string {
	out := f.messages
	f.messages = nil
	return out
}

func (f *fakeEngine) Party(id encounter.ParticipantID) (encounter.Party, bool) {
	if f.party == nil {
		return nil, false
	}
	return f.party, true
}

func (f *fakeEngine) decide(winner encounter.ParticipantID) {
	f.finished = true
	f.winner = winner
	f.won = true
}

type fakePlayer struct {
	resets   int
	starts   int
	updates  int
	confirms int
	queued   []encounter.Action
}

func (p *fakePlayer) Reset()                    { p.resets++ }
func (p *fakePlayer) Start()                    { p.starts++ }
func (p *fakePlayer) Draw(screen *ebiten.Image) {}

func (p *fakePlayer) Update(in *input.Input, delta float64) {
	p.updates++
	if in.ConfirmPressed {
		p.confirms++
	}
}

func (p *fakePlayer) Actions() []encounter.Action {
	out := p.queued
	p.queued = nil
	return out
}

type fakeMusic struct {
	current string
	played  []string
}

func (f *fakeMusic) PlayMusic(track string) error {
	f.current = track
	f.played = append(f.played, track)
	return nil
}

func (f *fakeMusic) CurrentMusic() string { return f.current }

type fixture struct {
	m       *Manager
	engine  *fakeEngine
	player  *fakePlayer
	music   *fakeMusic
	built   int
	save    *encounter.Save
	trainer encounter.Entry
	wild    encounter.Entry
}

func newFixture(t *testing.T, debug bool) *fixture {
	t.Helper()
	f := &fixture{
		engine: &fakeEngine{},
		player: &fakePlayer{},
		music:  &fakeMusic{current: "route_1"},
		save: &encounter.Save{
			ID:    encounter.PlayerID,
			Name:  "Red",
			Party: encounter.Party{{Species: 7, Name: "Squirtle", Level: 5, HP: 20, MaxHP: 20}},
		},
		trainer: encounter.Entry{
			ID:   encounter.TrainerID("bob"),
			Type: encounter.Trainer,
			Party: encounter.Party{
				{Species: 16, Name: "Pidgey", Level: 3, HP: 12, MaxHP: 12},
			},
			Trainer: &encounter.TrainerEntry{
				Name:           "Bob",
				Badge:          "boulder",
				VictoryMessage: [][]string{{"You're strong!"}},
				Worth:          500,
			},
		},
		wild: encounter.Entry{
			ID:    encounter.WildID,
			Type:  encounter.Wild,
			Party: encounter.Party{{Species: 16, Name: "Pidgey", Level: 3, HP: 12, MaxHP: 12}},
		},
	}
	f.m = New(Options{
		Resources: &transition.Resources{Music: f.music},
		Player:    f.player,
		Debug:     debug,
		NewBattle: func(save *encounter.Save, entry encounter.Entry) (Battle, error) {
			f.built++
			return f.engine, nil
		},
	})
	return f
}

// runUntil drives the manager, alternating confirm and idle frames, until
// done reports true.
func (f *fixture) runUntil(t *testing.T, what string, done func() bool) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if done() {
			return
		}
		in := idle
		if i%2 == 0 {
			in = confirm
		}
		f.m.Update(in, frame)
	}
	t.Fatalf("timed out waiting for %s (phase %v)", what, f.m.Phase())
}

func TestBeginThenTransition(t *testing.T) {
	f := newFixture(t, false)
	if !f.m.Begin(f.save, f.wild) {
		t.Fatalf("begin rejected a valid encounter")
	}
	if f.m.Phase().Kind != PhaseBegin || f.m.Finished {
		t.Fatalf("phase = %v, finished = %v", f.m.Phase(), f.m.Finished)
	}

	f.m.Update(idle, frame)
	if f.m.Phase().Kind != PhaseTransition {
		t.Fatalf("phase after one update = %v, want transition", f.m.Phase())
	}
	if f.engine.begun != 1 || f.player.resets != 1 {
		t.Fatalf("begin entry actions: engine begun %d, player resets %d", f.engine.begun, f.player.resets)
	}
	if !f.m.WorldActive() {
		t.Fatalf("the world is visible during the transition")
	}
}

func TestBeginRejects(t *testing.T) {
	tests := []struct {
		name  string
		save  func(*encounter.Save) *encounter.Save
		entry func(encounter.Entry) encounter.Entry
	}{
		{"nil save", func(*encounter.Save) *encounter.Save { return nil }, nil},
		{"empty local party", func(s *encounter.Save) *encounter.Save { s.Party = nil; return s }, nil},
		{"fainted local party", func(s *encounter.Save) *encounter.Save { s.Party[0].HP = 0; return s }, nil},
		{"empty opponent party", nil, func(e encounter.Entry) encounter.Entry { e.Party = nil; return e }},
		{"fainted opponent party", nil, func(e encounter.Entry) encounter.Entry {
			e.Party = encounter.Party{{Name: "Pidgey"}}
			return e
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			if !f.m.Begin(f.save, f.wild) {
				t.Fatalf("setup encounter rejected")
			}
			f.m.Update(idle, frame)
			before := f.m.Phase()
			built := f.built

			save := &encounter.Save{ID: encounter.PlayerID, Party: f.save.Party.Clone()}
			if tt.save != nil {
				save = tt.save(save)
			}
			entry := f.wild
			entry.Party = entry.Party.Clone()
			if tt.entry != nil {
				entry = tt.entry(entry)
			}

			if f.m.Begin(save, entry) {
				t.Fatalf("begin accepted an invalid encounter")
			}
			if f.m.Phase() != before || f.m.Finished {
				t.Fatalf("rejected begin mutated state: phase %v -> %v", before, f.m.Phase())
			}
			if f.built != built {
				t.Fatalf("rejected begin built an engine")
			}
		})
	}
}

func TestBeginRejectsEngineError(t *testing.T) {
	f := newFixture(t, false)
	f.m.opts.NewBattle = func(*encounter.Save, encounter.Entry) (Battle, error) {
		return nil, errors.New("boom")
	}
	if f.m.Begin(f.save, f.wild) {
		t.Fatalf("begin should fail when the engine cannot be built")
	}
	if _, ok := f.m.Winner(); ok {
		t.Fatalf("no engine should be attached")
	}
}

func TestUpdateBeforeBeginIsNoop(t *testing.T) {
	f := newFixture(t, false)
	f.m.Update(confirm, frame)
	if f.m.Phase().Kind != PhaseBegin || f.player.resets != 0 {
		t.Fatalf("update without an encounter must do nothing")
	}
}

func TestTrainerVictoryEndToEnd(t *testing.T) {
	f := newFixture(t, false)
	if !f.m.Begin(f.save, f.trainer) {
		t.Fatalf("begin rejected")
	}
	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })
	if f.player.starts != 1 {
		t.Fatalf("player gui started %d times, want 1", f.player.starts)
	}
	if f.m.WorldActive() {
		t.Fatalf("the world is hidden during the battle")
	}

	f.engine.decide(encounter.PlayerID)
	f.m.Update(idle, frame)
	if p := f.m.Phase(); p.Kind != PhaseCloser || p.Winner == nil || *p.Winner != encounter.PlayerID {
		t.Fatalf("phase = %v, want closer(player)", p)
	}

	f.m.Update(idle, frame)
	closer := f.m.Closer()
	if closer.Current() != transition.VariantTrainer {
		t.Fatalf("closer variant = %v", closer.Current())
	}
	box := f.m.Gui().Text
	want := []string{"Player defeated Bob!", "You're strong!", "Red got $500"}
	for i, line := range want {
		if got := box.PageLines(i)[0]; got != line {
			t.Fatalf("page %d = %q, want %q", i, got, line)
		}
	}
	if got := box.PageLines(2)[1]; got != "for winning!" {
		t.Fatalf("reward second line = %q", got)
	}

	sawWorld := false
	f.runUntil(t, "closer to finish", func() bool {
		if box.Alive() && f.m.WorldActive() {
			t.Fatalf("world active while the dialogue is still open")
		}
		if f.m.WorldActive() {
			sawWorld = true
		}
		return f.m.Finished
	})
	if !sawWorld {
		t.Fatalf("world never became active during the closer")
	}
	if f.m.Phase().Kind != PhaseBegin {
		t.Fatalf("phase after closer = %v", f.m.Phase())
	}
	if w, ok := f.m.Winner(); !ok || w != encounter.PlayerID {
		t.Fatalf("winner = %q, %v", w, ok)
	}

	// A finished manager stays put until the next Begin.
	f.m.Update(confirm, frame)
	if f.m.Phase().Kind != PhaseBegin || f.engine.begun != 1 {
		t.Fatalf("finished manager restarted the encounter")
	}
}

func TestEndMidBattle(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.wild)
	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })

	f.m.End()
	if !f.m.Finished {
		t.Fatalf("end must set finished")
	}
	if f.m.Phase().Kind != PhaseBegin {
		t.Fatalf("phase after end = %v", f.m.Phase())
	}
	if f.m.engine != nil {
		t.Fatalf("end mid-battle must clear the engine")
	}
	if _, ok := f.m.Winner(); ok {
		t.Fatalf("a cleared engine has no winner")
	}
}

func TestEndDuringTransition(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.wild)
	f.m.Update(idle, frame)

	f.m.End()
	if !f.m.Finished || f.m.WorldActive() {
		t.Fatalf("end should finish the encounter and hide nothing behind it")
	}
	if f.m.screen.State() != transition.StateBegin {
		t.Fatalf("screen manager state = %v", f.m.screen.State())
	}
}

func TestDebugEnd(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  bool
	}{
		{"debug build", true, true},
		{"release build", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.debug)
			f.m.Begin(f.save, f.wild)
			f.m.Update(&input.Input{DebugEnd: true}, frame)
			if f.m.Finished != tt.want {
				t.Fatalf("finished = %v, want %v", f.m.Finished, tt.want)
			}
		})
	}
}

func TestCommandsAndNarration(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.wild)
	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })

	f.player.queued = []encounter.Action{{Kind: encounter.ActionMove, Move: 1}}
	f.m.Update(idle, frame)
	if len(f.engine.commands) != 1 || f.engine.commands[0].Move != 1 {
		t.Fatalf("commands = %+v", f.engine.commands)
	}

	f.engine.messages = []string{"SQUIRTLE used Tackle!"}
	f.engine.decide(encounter.PlayerID)
	f.m.Update(idle, frame)
	box := f.m.Gui().Text
	if !box.Alive() {
		t.Fatalf("engine narration should be shown")
	}
	if f.m.Phase().Kind != PhaseBattle {
		t.Fatalf("the closer must wait for the narration to drain")
	}

	updates := f.player.updates
	f.runUntil(t, "closer", func() bool { return f.m.Phase().Kind == PhaseCloser })
	if f.player.updates != updates {
		t.Fatalf("player gui updated while narration was shown")
	}
}

func TestUpdateData(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.trainer)
	f.engine.party = encounter.Party{{Species: 7, Name: "Squirtle", Level: 5, HP: 9, MaxHP: 20}}

	if f.m.UpdateData(f.trainer.ID, f.save) {
		t.Fatalf("a loss is not a win")
	}
	if f.save.Money != 0 || f.save.Party[0].HP != 9 {
		t.Fatalf("a loss writes back HP only: money %d hp %d", f.save.Money, f.save.Party[0].HP)
	}

	if !f.m.UpdateData(encounter.PlayerID, f.save) {
		t.Fatalf("expected a win")
	}
	if f.save.Money != 500 || !f.save.Defeated["bob"] || !f.save.HasBadge("boulder") {
		t.Fatalf("reward not applied: %+v", f.save)
	}

	f.m.UpdateData(encounter.PlayerID, f.save)
	if len(f.save.Badges) != 1 {
		t.Fatalf("badge granted twice")
	}
}

func TestUpdateDataRewardsOnce(t *testing.T) {
	tests := []struct {
		name      string
		defeated  map[string]bool
		wantMoney uint32
	}{
		{"first win", nil, 500},
		{"already beaten", map[string]bool{"bob": true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.save.Defeated = tt.defeated
			f.m.Begin(f.save, f.trainer)

			for range 3 {
				if !f.m.UpdateData(encounter.PlayerID, f.save) {
					t.Fatalf("expected a win")
				}
			}
			if f.save.Money != tt.wantMoney {
				t.Fatalf("money = %d, want %d", f.save.Money, tt.wantMoney)
			}
			if !f.save.Defeated["bob"] {
				t.Fatalf("the trainer must be on the defeat record")
			}
		})
	}
}

func TestUpdateDataDisablesListedTrainers(t *testing.T) {
	f := newFixture(t, false)
	f.trainer.Trainer.Disable = []string{"jr_trainer_ben", "lass_amy"}
	f.m.Begin(f.save, f.trainer)

	f.m.UpdateData(f.trainer.ID, f.save)
	if f.save.Defeated["jr_trainer_ben"] {
		t.Fatalf("a loss must not disable anybody")
	}

	f.m.UpdateData(encounter.PlayerID, f.save)
	for _, npc := range []string{"bob", "jr_trainer_ben", "lass_amy"} {
		if !f.save.Defeated[npc] {
			t.Errorf("%s should be disabled after the win", npc)
		}
	}
	if f.save.Money != 500 {
		t.Fatalf("disabled trainers pay nothing: money %d", f.save.Money)
	}
}

func TestBeginDuringCloserStartsClean(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.trainer)
	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })
	f.engine.decide(encounter.PlayerID)
	f.runUntil(t, "world behind the closer", func() bool {
		return f.m.Phase().Kind == PhaseCloser && f.m.WorldActive()
	})

	f.engine = &fakeEngine{}
	if !f.m.Begin(f.save, f.trainer) {
		t.Fatalf("begin rejected")
	}
	if f.m.WorldActive() || f.m.Closer().State() != transition.StateBegin {
		t.Fatalf("a new encounter must not inherit the previous closer")
	}

	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })
	if f.m.WorldActive() {
		t.Fatalf("the world is hidden during the new battle")
	}

	f.engine.decide(encounter.PlayerID)
	f.m.Update(idle, frame)
	f.m.Update(idle, frame)
	if f.m.Closer().State() != transition.StateRun || f.m.WorldActive() {
		t.Fatalf("the new closer should open on its dialogue")
	}
	if got := f.m.Gui().Text.PageLines(1)[0]; got != "You're strong!" {
		t.Fatalf("victory page = %q", got)
	}
}

func TestEndDuringCloser(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.trainer)
	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })
	f.engine.decide(encounter.PlayerID)
	f.runUntil(t, "closer", func() bool {
		return f.m.Closer().State() == transition.StateRun
	})

	f.m.End()
	if !f.m.Finished || f.m.Phase().Kind != PhaseBegin {
		t.Fatalf("end should finish the encounter: phase %v", f.m.Phase())
	}
	if f.m.Closer().State() != transition.StateBegin || f.m.WorldActive() {
		t.Fatalf("end must rewind the closer")
	}
	if f.music.current != "route_1" {
		t.Fatalf("music after end = %q, want the world track back", f.music.current)
	}
}

func TestStartFrameGetsNoInput(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.wild)
	for i := 0; i < 1000 && f.m.Phase().Kind != PhaseBattle; i++ {
		f.m.Update(confirm, frame)
	}
	if f.m.Phase().Kind != PhaseBattle {
		t.Fatalf("never reached the battle phase")
	}
	if f.player.updates != 1 {
		t.Fatalf("player gui updated %d times on its first frame, want 1", f.player.updates)
	}
	if f.player.confirms != 0 {
		t.Fatalf("the press that closed the introduction reached the player gui")
	}

	f.m.Update(confirm, frame)
	if f.player.confirms != 1 {
		t.Fatalf("later presses must reach the player gui")
	}
}

func TestBattleMusic(t *testing.T) {
	tests := []struct {
		name  string
		entry encounter.Entry
		want  string
	}{
		{"wild", encounter.Entry{Type: encounter.Wild}, audio.MusicBattleWild},
		{"trainer", encounter.Entry{Type: encounter.Trainer, Trainer: &encounter.TrainerEntry{}}, audio.MusicBattleTrainer},
		{"gym leader", encounter.Entry{Type: encounter.GymLeader, Trainer: &encounter.TrainerEntry{}}, audio.MusicBattleGym},
		{"own theme", encounter.Entry{Type: encounter.Trainer, Trainer: &encounter.TrainerEntry{Music: "rival"}}, "rival"},
	}
	for _, tt := range tests {
		if got := BattleMusic(tt.entry); got != tt.want {
			t.Errorf("%s: BattleMusic = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMusicFollowsEncounter(t *testing.T) {
	f := newFixture(t, false)
	f.m.Begin(f.save, f.trainer)
	if len(f.music.played) != 0 {
		t.Fatalf("music must not change before the first update")
	}

	f.m.Update(idle, frame)
	if f.music.current != audio.MusicBattleTrainer {
		t.Fatalf("music during the transition = %q", f.music.current)
	}

	f.runUntil(t, "battle phase", func() bool { return f.m.Phase().Kind == PhaseBattle })
	f.engine.decide(encounter.PlayerID)
	f.runUntil(t, "closer to finish", func() bool {
		if !f.m.Finished && f.music.current != audio.MusicBattleTrainer {
			t.Fatalf("battle track replaced early by %q", f.music.current)
		}
		return f.m.Finished
	})
	if f.music.current != "route_1" {
		t.Fatalf("music after the closer = %q, want route_1", f.music.current)
	}
	want := []string{audio.MusicBattleTrainer, "route_1"}
	if len(f.music.played) != len(want) {
		t.Fatalf("played = %v, want %v", f.music.played, want)
	}
	for i := range want {
		if f.music.played[i] != want[i] {
			t.Fatalf("played = %v, want %v", f.music.played, want)
		}
	}
}
