package transition

import (
	"github.com/milk9111/firebattle/gui"
	"github.com/milk9111/firebattle/text"
)

// Completable can report whether its sequence reached a terminal state.
// Finished must be idempotent and free of side effects.
type Completable interface {
	Finished() bool
}

// Resettable returns to its initial state. Reset must be safe to call from
// any internal state and must never leave the unit finished.
type Resettable interface {
	Reset()
}

// Entity is something that can be shown and hidden.
type Entity interface {
	Spawn()
	Despawn()
	Alive() bool
}

var (
	_ Entity = (*VerticalClose)(nil)
	_ Entity = (*text.MessageBox)(nil)
	_ Entity = (*gui.ActiveRenderer)(nil)

	_ Completable = (*VerticalClose)(nil)
	_ Completable = (*WildIntroduction)(nil)
	_ Completable = (*TrainerIntroduction)(nil)
	_ Completable = (*WildCloser)(nil)
	_ Completable = (*TrainerCloser)(nil)

	_ Resettable = (*VerticalClose)(nil)
	_ Resettable = (*WildIntroduction)(nil)
	_ Resettable = (*TrainerIntroduction)(nil)
	_ Resettable = (*WildCloser)(nil)
	_ Resettable = (*TrainerCloser)(nil)
)
