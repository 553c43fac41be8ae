package engine

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/firebattle/encounter"
)

const damageSrc = `
damage := 0
if power > 0 {
	base := ((2 * level / 5 + 2) * power * (level + 10) / (target_level + 10)) / 50 + 2
	damage = base * (85 + roll) / 100
	if damage < 1 {
		damage = 1
	}
}
`

var testMoves = encounter.MoveCatalog{
	"tackle": {ID: "tackle", Name: "Tackle", Power: 40, Accuracy: 100},
	"growl":  {ID: "growl", Name: "Growl"},
}

func mustCompile(t *testing.T) *Script {
	t.Helper()
	s, err := Compile([]byte(damageSrc))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return s
}

func newSave() *encounter.Save {
	return &encounter.Save{
		ID:   encounter.PlayerID,
		Name: "Red",
		Party: encounter.Party{
			{Species: 7, Name: "Squirtle", Level: 5, HP: 20, MaxHP: 20, Moves: []string{"tackle"}},
		},
	}
}

func rng() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestDamageScript(t *testing.T) {
	s := mustCompile(t)
	tests := []struct {
		name string
		in   DamageInput
		want int
	}{
		{"low roll", DamageInput{Level: 5, Power: 40, TargetLevel: 3, Roll: 0}, 4},
		{"high roll", DamageInput{Level: 5, Power: 40, TargetLevel: 3, Roll: 15}, 5},
		{"status move", DamageInput{Level: 5, Power: 0, TargetLevel: 3, Roll: 15}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Damage(tt.in)
			if err != nil {
				t.Fatalf("damage: %v", err)
			}
			if got != tt.want {
				t.Fatalf("damage = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile([]byte("damage := ")); err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, err := Compile([]byte("x := 1")); err == nil {
		t.Fatalf("expected an error for a script without damage")
	}
}

func TestDeclare(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"integer inputs", 0, ""},
		{"unconvertible value", make(chan int), "engine: declare level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := declare(tengo.NewScript([]byte("damage := level")), scriptInputs, tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("declare: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWildBattleWon(t *testing.T) {
	entry := encounter.Entry{
		ID:    encounter.WildID,
		Type:  encounter.Wild,
		Party: encounter.Party{{Species: 16, Name: "Pidgey", Level: 3, HP: 4, MaxHP: 12, Moves: []string{"tackle"}}},
	}
	e, err := New(mustCompile(t), newSave(), entry)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r := rng()

	e.Command(encounter.PlayerID, encounter.Action{Kind: encounter.ActionMove})
	e.Update(r, 0.1, testMoves, nil)
	if e.Finished() {
		t.Fatalf("an engine that has not begun must not resolve turns")
	}

	e.Begin()
	e.Update(r, 0.1, testMoves, nil)
	if !e.Finished() {
		t.Fatalf("pidgey should have fainted")
	}
	winner, ok := e.Winner()
	if !ok || winner != encounter.PlayerID {
		t.Fatalf("winner = %q, %v", winner, ok)
	}

	msgs := e.Messages()
	want := []string{"SQUIRTLE used Tackle!", "Wild PIDGEY fainted!"}
	if strings.Join(msgs, "|") != strings.Join(want, "|") {
		t.Fatalf("messages = %q, want %q", msgs, want)
	}
	if len(e.Messages()) != 0 {
		t.Fatalf("messages should drain")
	}

	party, ok := e.Party(encounter.WildID)
	if !ok || party[0].HP != 0 {
		t.Fatalf("opponent party not updated: %+v", party)
	}
	if entry.Party[0].HP != 4 {
		t.Fatalf("the caller's party must not be mutated")
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		kind     encounter.Type
		finished bool
		message  string
	}{
		{"wild", encounter.Wild, true, "Got away safely!"},
		{"trainer", encounter.Trainer, false, "No! There's no running from a trainer battle!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := encounter.Entry{
				ID:    encounter.TrainerID("joey"),
				Type:  tt.kind,
				Party: encounter.Party{{Species: 19, Name: "Rattata", Level: 4, HP: 15, MaxHP: 15}},
			}
			e, err := New(mustCompile(t), newSave(), entry)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			e.Begin()
			e.Command(encounter.PlayerID, encounter.Action{Kind: encounter.ActionRun})
			e.Update(rng(), 0.1, testMoves, nil)

			if e.Finished() != tt.finished {
				t.Fatalf("finished = %v, want %v", e.Finished(), tt.finished)
			}
			if _, ok := e.Winner(); ok {
				t.Fatalf("running never produces a winner")
			}
			msgs := e.Messages()
			if len(msgs) != 1 || msgs[0] != tt.message {
				t.Fatalf("messages = %q", msgs)
			}
		})
	}
}

func TestTrainerSendsOutNext(t *testing.T) {
	entry := encounter.Entry{
		ID:      encounter.TrainerID("bob"),
		Type:    encounter.GymLeader,
		Trainer: &encounter.TrainerEntry{Name: "Bob", Prefix: "Leader"},
		Party: encounter.Party{
			{Species: 16, Name: "Pidgey", Level: 3, HP: 1, MaxHP: 12},
			{Species: 19, Name: "Rattata", Level: 3, HP: 10, MaxHP: 10},
		},
	}
	e, err := New(mustCompile(t), newSave(), entry)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e.Begin()
	e.Command(encounter.PlayerID, encounter.Action{Kind: encounter.ActionMove})
	e.Update(rng(), 0.1, testMoves, nil)

	if e.Finished() {
		t.Fatalf("trainer still has a combatant")
	}
	msgs := e.Messages()
	if got := msgs[len(msgs)-1]; got != "Leader Bob sent out RATTATA!" {
		t.Fatalf("last message = %q", got)
	}
	active, ok := e.Active(entry.ID)
	if !ok || active.Name != "Rattata" {
		t.Fatalf("active = %+v", active)
	}
}

func TestTurnDelayAndCommands(t *testing.T) {
	entry := encounter.Entry{
		ID:    encounter.WildID,
		Type:  encounter.Wild,
		Party: encounter.Party{{Species: 16, Name: "Pidgey", Level: 9, HP: 200, MaxHP: 200, Moves: []string{"growl"}}},
	}
	e, err := New(mustCompile(t), newSave(), entry)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e.Begin()
	r := rng()

	e.Command(encounter.WildID, encounter.Action{Kind: encounter.ActionRun})
	e.Update(r, 0.1, testMoves, nil)
	if e.Finished() || len(e.Messages()) != 0 {
		t.Fatalf("commands for the opponent must be ignored")
	}

	e.Command(encounter.PlayerID, encounter.Action{Kind: encounter.ActionMove})
	e.Update(r, 0.1, testMoves, nil)
	msgs := e.Messages()
	if len(msgs) != 2 || !strings.HasPrefix(msgs[0], "Wild PIDGEY used Growl!") {
		t.Fatalf("the higher level combatant should move first, got %q", msgs)
	}

	e.Command(encounter.PlayerID, encounter.Action{Kind: encounter.ActionRun})
	e.Update(r, 0.125, testMoves, nil)
	if e.Finished() {
		t.Fatalf("the next turn must wait out the turn delay")
	}
	e.Update(r, 0.125, testMoves, nil)
	e.Update(r, 0.125, testMoves, nil)
	if !e.Finished() {
		t.Fatalf("run should resolve after the delay")
	}
}

func TestNewRejectsFaintedParties(t *testing.T) {
	save := newSave()
	save.Party[0].HP = 0
	entry := encounter.Entry{ID: encounter.WildID, Party: encounter.Party{{Name: "Pidgey", HP: 5}}}
	if _, err := New(mustCompile(t), save, entry); err == nil {
		t.Fatalf("expected an error for a fainted local party")
	}
	if _, err := New(mustCompile(t), newSave(), encounter.Entry{ID: encounter.WildID}); err == nil {
		t.Fatalf("expected an error for an empty opponent party")
	}
}
