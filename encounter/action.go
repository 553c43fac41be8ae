package encounter

// ActionKind is what the local player chose in the battle menu.
type ActionKind uint8

const (
	ActionMove ActionKind = iota
	ActionRun
)

// Action is a single player command forwarded to the combat engine.
type Action struct {
	Kind ActionKind
	Move int
}
