package world

import (
	"github.com/milk9111/firebattle/input"
	"github.com/rs/zerolog/log"
)

// WalkSpeed is in tiles per second.
const WalkSpeed = 4.0

type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "down"
}

func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 1
}

// ParseDirection reads a facing prop. Unknown values face down.
func ParseDirection(s string) Direction {
	for _, d := range []Direction{Up, Left, Right} {
		if d.String() == s {
			return d
		}
	}
	return Down
}

func directionOf(in *input.Input) (Direction, bool) {
	switch {
	case in.MoveX < 0:
		return Left, true
	case in.MoveX > 0:
		return Right, true
	case in.MoveY < 0:
		return Up, true
	case in.MoveY > 0:
		return Down, true
	}
	return Down, false
}

// walkerState is implemented by each concrete walker state.
type walkerState interface {
	Enter(w *Walker)
	HandleInput(w *Walker, in *input.Input, blocked func(x, y int) bool)
	// Advance moves the walker along and reports whether it arrived on a new
	// tile this frame.
	Advance(w *Walker, delta float64) bool
	Name() string
}

var (
	stateIdle    walkerState = idleState{}
	stateWalking walkerState = walkingState{}
)

// Walker is the player on the overworld grid.
type Walker struct {
	X, Y   int
	Facing Direction

	state    walkerState
	progress float64
}

func NewWalker(x, y int) *Walker {
	w := &Walker{X: x, Y: y}
	w.setState(stateIdle)
	return w
}

func (w *Walker) setState(s walkerState) {
	w.state = s
	w.state.Enter(w)
}

// Update handles input and movement for one frame. It reports whether a step
// onto a new tile completed.
func (w *Walker) Update(in *input.Input, delta float64, blocked func(x, y int) bool) bool {
	w.state.HandleInput(w, in, blocked)
	return w.state.Advance(w, delta)
}

// Walking reports whether a step is in progress.
func (w *Walker) Walking() bool {
	return w.state == stateWalking
}

// Front is the tile the walker faces.
func (w *Walker) Front() (int, int) {
	dx, dy := w.Facing.Delta()
	return w.X + dx, w.Y + dy
}

// Position is the walker's position in screen units, including a partial step.
func (w *Walker) Position() (float64, float64) {
	dx, dy := 0, 0
	if w.Walking() {
		dx, dy = w.Facing.Delta()
	}
	return (float64(w.X) + float64(dx)*w.progress) * TileSize,
		(float64(w.Y) + float64(dy)*w.progress) * TileSize
}

// Place moves the walker to x,y and stops any step in progress.
func (w *Walker) Place(x, y int) {
	w.X, w.Y = x, y
	w.setState(stateIdle)
}

type idleState struct{}

func (idleState) Name() string { return "idle" }
func (idleState) Enter(w *Walker) {
	w.progress = 0
}
func (idleState) HandleInput(w *Walker, in *input.Input, blocked func(x, y int) bool) {
	d, ok := directionOf(in)
	if !ok {
		return
	}
	w.Facing = d
	if x, y := w.Front(); blocked(x, y) {
		return
	}
	w.setState(stateWalking)
}
func (idleState) Advance(w *Walker, delta float64) bool {
	return false
}

type walkingState struct{}

func (walkingState) Name() string { return "walking" }
func (walkingState) Enter(w *Walker) {
	log.Trace().Str("component", "world").Stringer("facing", w.Facing).Int("x", w.X).Int("y", w.Y).Msg("step")
}
func (walkingState) HandleInput(w *Walker, in *input.Input, blocked func(x, y int) bool) {}
func (walkingState) Advance(w *Walker, delta float64) bool {
	w.progress += delta * WalkSpeed
	if w.progress < 1 {
		return false
	}
	w.X, w.Y = w.Front()
	w.setState(stateIdle)
	return true
}
