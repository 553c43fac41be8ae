package encounter

// TrainerEntry is the trainer record attached to a non-wild encounter.
type TrainerEntry struct {
	Name           string
	Prefix         string
	Sprite         string
	Badge          string
	VictoryMessage [][]string
	Worth          uint32
	// Music overrides the battle track picked from the encounter type.
	Music string
	// Disable lists npcs that no longer battle once this trainer is beaten.
	Disable []string
}

// DisplayName is "PREFIX NAME", or just the name when no prefix is set.
func (t *TrainerEntry) DisplayName() string {
	if t == nil {
		return ""
	}
	if t.Prefix == "" {
		return t.Name
	}
	return t.Prefix + " " + t.Name
}

// Entry is what the world hands the battle manager to start an encounter.
type Entry struct {
	ID      ParticipantID
	Type    Type
	Party   Party
	Trainer *TrainerEntry
	Active  int
}

// ActiveCombatant returns the opponent's lead, falling back to the first
// member that can fight.
func (e Entry) ActiveCombatant() (Combatant, bool) {
	if e.Active >= 0 && e.Active < len(e.Party) && !e.Party[e.Active].Fainted() {
		return e.Party[e.Active], true
	}
	i, ok := e.Party.FirstReady()
	if !ok {
		return Combatant{}, false
	}
	return e.Party[i], true
}
