// Package engine is a small reference combat engine for the battle manager.
// It resolves one exchange of moves per player command with a scripted damage
// formula and narrates the result.
package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/firebattle/encounter"
	"github.com/rs/zerolog/log"
)

// TurnDelay is the pause after a resolved turn before the next command is
// taken.
const TurnDelay = 0.25

type side struct {
	id     encounter.ParticipantID
	party  encounter.Party
	active int
}

func (s *side) current() *encounter.Combatant {
	return &s.party[s.active]
}

// Scripted implements the battle manager's engine surface.
type Scripted struct {
	script *Script

	wild    bool
	trainer string

	local    side
	opponent side

	begun    bool
	finished bool
	winner   encounter.ParticipantID
	won      bool

	delay    float64
	pending  *encounter.Action
	messages []string
}

// New builds an engine for one encounter. The parties are cloned; the save
// is only updated through the manager's write-back.
func New(script *Script, save *encounter.Save, entry encounter.Entry) (*Scripted, error) {
	if script == nil {
		return nil, fmt.Errorf("engine: no damage script")
	}
	if save == nil {
		return nil, fmt.Errorf("engine: no save")
	}
	li, ok := save.Party.FirstReady()
	if !ok {
		return nil, fmt.Errorf("engine: %s has nobody able to fight", save.ID)
	}
	oi, ok := entry.Party.FirstReady()
	if entry.Active >= 0 && entry.Active < len(entry.Party) && !entry.Party[entry.Active].Fainted() {
		oi, ok = entry.Active, true
	}
	if !ok {
		return nil, fmt.Errorf("engine: %s has nobody able to fight", entry.ID)
	}

	e := &Scripted{
		script:   script.clone(),
		wild:     entry.Type == encounter.Wild,
		local:    side{id: save.ID, party: save.Party.Clone(), active: li},
		opponent: side{id: entry.ID, party: entry.Party.Clone(), active: oi},
	}
	if entry.Trainer != nil {
		e.trainer = entry.Trainer.DisplayName()
	}
	return e, nil
}

func (e *Scripted) Begin() {
	e.begun = true
}

func (e *Scripted) Finished() bool {
	return e.finished
}

func (e *Scripted) Winner() (encounter.ParticipantID, bool) {
	return e.winner, e.won
}

// Command queues the local player's choice for the next turn. Commands for
// any other participant are ignored.
func (e *Scripted) Command(id encounter.ParticipantID, action encounter.Action) {
	if id != e.local.id || e.finished {
		return
	}
	a := action
	e.pending = &a
}

// Messages drains the narration produced since the last call.
func (e *Scripted) Messages() []string {
	out := e.messages
	e.messages = nil
	return out
}

func (e *Scripted) Active(id encounter.ParticipantID) (encounter.Combatant, bool) {
	switch id {
	case e.local.id:
		return *e.local.current(), true
	case e.opponent.id:
		return *e.opponent.current(), true
	}
	return encounter.Combatant{}, false
}

func (e *Scripted) Party(id encounter.ParticipantID) (encounter.Party, bool) {
	switch id {
	case e.local.id:
		return e.local.party.Clone(), true
	case e.opponent.id:
		return e.opponent.party.Clone(), true
	}
	return nil, false
}

func (e *Scripted) Update(rng *rand.Rand, delta float64, moves encounter.MoveCatalog, items encounter.ItemCatalog) {
	if !e.begun || e.finished {
		return
	}
	if e.delay > 0 {
		e.delay -= delta
		return
	}
	if e.pending == nil {
		return
	}
	action := *e.pending
	e.pending = nil
	e.delay = TurnDelay

	switch action.Kind {
	case encounter.ActionRun:
		e.run()
	case encounter.ActionMove:
		e.turn(rng, moves, action.Move)
	}
}

func (e *Scripted) run() {
	if !e.wild {
		e.say("No! There's no running from a trainer battle!")
		return
	}
	e.say("Got away safely!")
	e.finished = true
	log.Debug().Str("component", "engine").Msg("local player ran")
}

func (e *Scripted) turn(rng *rand.Rand, moves encounter.MoveCatalog, index int) {
	local := e.local.current()
	if index < 0 || index >= len(local.Moves) {
		log.Warn().Str("component", "engine").Int("move", index).Str("combatant", local.Name).Msg("invalid move index")
		return
	}
	localMove := moves.Lookup(local.Moves[index])

	strikes := []strike{{attacker: &e.local, defender: &e.opponent, move: localMove}}
	if move, ok := e.chooseMove(rng, moves); ok {
		reply := strike{attacker: &e.opponent, defender: &e.local, move: move}
		if e.opponent.current().Level > local.Level {
			strikes = append([]strike{reply}, strikes...)
		} else {
			strikes = append(strikes, reply)
		}
	}

	// A faint ends the turn; a replacement does not act on the turn it enters.
	for _, st := range strikes {
		if e.attack(rng, st.attacker, st.defender, st.move) {
			return
		}
	}
}

type strike struct {
	attacker *side
	defender *side
	move     encounter.Move
}

// chooseMove picks a random move for the opponent.
func (e *Scripted) chooseMove(rng *rand.Rand, moves encounter.MoveCatalog) (encounter.Move, bool) {
	known := e.opponent.current().Moves
	if len(known) == 0 {
		return encounter.Move{}, false
	}
	return moves.Lookup(known[rng.IntN(len(known))]), true
}

// attack resolves one move and reports whether the defender fainted.
func (e *Scripted) attack(rng *rand.Rand, attacker, defender *side, move encounter.Move) bool {
	user := attacker.current()
	target := defender.current()
	e.say(fmt.Sprintf("%s used %s!", e.label(attacker, user), move.Name))

	if move.Accuracy > 0 && rng.IntN(100) >= move.Accuracy {
		e.say(fmt.Sprintf("%s's attack missed!", user.DisplayName()))
		return false
	}

	damage, err := e.script.Damage(DamageInput{
		Level:       user.Level,
		Power:       move.Power,
		TargetLevel: target.Level,
		Roll:        rng.IntN(16),
	})
	if err != nil {
		log.Warn().Str("component", "engine").Str("move", move.ID).Err(err).Msg("damage script failed")
		return false
	}
	target.HP -= damage
	if target.HP < 0 {
		target.HP = 0
	}
	if !target.Fainted() {
		return false
	}

	e.say(fmt.Sprintf("%s fainted!", e.label(defender, target)))
	e.replace(defender, attacker)
	return true
}

// replace sends out the next member of a side whose active combatant fainted,
// or decides the battle when there is none.
func (e *Scripted) replace(fainted, other *side) {
	next, ok := fainted.party.FirstReady()
	if !ok {
		e.finished = true
		e.winner = other.id
		e.won = true
		log.Debug().Str("component", "engine").Str("winner", other.id.String()).Msg("battle decided")
		return
	}
	fainted.active = next
	c := fainted.current()
	switch {
	case fainted == &e.local:
		e.say(fmt.Sprintf("Go! %s!", c.Name))
	case e.trainer != "":
		e.say(fmt.Sprintf("%s sent out %s!", e.trainer, c.DisplayName()))
	default:
		e.say(fmt.Sprintf("%s appeared!", c.DisplayName()))
	}
}

func (e *Scripted) label(s *side, c *encounter.Combatant) string {
	switch {
	case s == &e.local:
		return c.DisplayName()
	case e.wild:
		return "Wild " + c.DisplayName()
	default:
		return "Foe " + c.DisplayName()
	}
}

func (e *Scripted) say(line string) {
	e.messages = append(e.messages, line)
}
