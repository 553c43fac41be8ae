package encounter

// Save is the slice of player save data the battle layer reads and, once an
// encounter is over, writes back.
type Save struct {
	ID       ParticipantID
	Name     string
	Party    Party
	Bag      map[string]int
	Money    uint32
	Badges   []string
	Defeated map[string]bool
}

// Lead returns the first combatant able to fight.
func (s *Save) Lead() (Combatant, bool) {
	if s == nil {
		return Combatant{}, false
	}
	i, ok := s.Party.FirstReady()
	if !ok {
		return Combatant{}, false
	}
	return s.Party[i], true
}

// HasBadge reports whether the badge is already owned.
func (s *Save) HasBadge(badge string) bool {
	for _, b := range s.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
