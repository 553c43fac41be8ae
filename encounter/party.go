package encounter

import "strings"

// Combatant is one member of a party as the presentation layer sees it.
type Combatant struct {
	Species int      `yaml:"species"`
	Name    string   `yaml:"name"`
	Level   int      `yaml:"level"`
	HP      int      `yaml:"hp"`
	MaxHP   int      `yaml:"max_hp"`
	Moves   []string `yaml:"moves"`
}

func (c Combatant) Fainted() bool {
	return c.HP <= 0
}

// DisplayName is the upper-case name used in battle dialogue.
func (c Combatant) DisplayName() string {
	return strings.ToUpper(c.Name)
}

// Party is an ordered roster. Index 0 leads unless an entry says otherwise.
type Party []Combatant

// Ready reports whether at least one member can still fight.
func (p Party) Ready() bool {
	for _, c := range p {
		if !c.Fainted() {
			return true
		}
	}
	return false
}

// FirstReady returns the index of the first member that has not fainted.
func (p Party) FirstReady() (int, bool) {
	for i, c := range p {
		if !c.Fainted() {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy that can be mutated by an engine without touching the
// caller's roster.
func (p Party) Clone() Party {
	if p == nil {
		return nil
	}
	out := make(Party, len(p))
	for i, c := range p {
		c.Moves = append([]string(nil), c.Moves...)
		out[i] = c
	}
	return out
}
