package encounter

import "strings"

// ParticipantID identifies one side of an encounter. It is opaque to the
// presentation layer; only equality matters.
type ParticipantID string

const (
	PlayerID ParticipantID = "player"
	WildID   ParticipantID = "wild"
)

const trainerPrefix = "trainer:"

// TrainerID builds the participant id used for an npc trainer.
func TrainerID(npc string) ParticipantID {
	return ParticipantID(trainerPrefix + npc)
}

// IsTrainer reports whether the id belongs to an npc trainer.
func (id ParticipantID) IsTrainer() bool {
	return strings.HasPrefix(string(id), trainerPrefix)
}

// NPC returns the npc name of a trainer id, or "" for any other id.
func (id ParticipantID) NPC() string {
	if !id.IsTrainer() {
		return ""
	}
	return strings.TrimPrefix(string(id), trainerPrefix)
}

func (id ParticipantID) String() string {
	return string(id)
}

// Type is the kind of encounter. It decides which introduction and closer
// variants run.
type Type uint8

const (
	Wild Type = iota
	Trainer
	GymLeader
)

func (t Type) String() string {
	switch t {
	case Wild:
		return "wild"
	case Trainer:
		return "trainer"
	case GymLeader:
		return "gym_leader"
	default:
		return "unknown"
	}
}

// ParseType maps an authored type name to a Type. Unknown names are wild.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trainer":
		return Trainer
	case "gym_leader", "gymleader", "gym":
		return GymLeader
	default:
		return Wild
	}
}
