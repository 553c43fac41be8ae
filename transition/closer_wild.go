package transition

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gfx"
	"github.com/milk9111/firebattle/text"
)

const closerFadeRate = 4.5

// WildCloser fades the battle screen to black, flags the world visible, then
// fades back out over the world.
type WildCloser struct {
	alpha float64
	world bool
}

func NewWildCloser() *WildCloser {
	return &WildCloser{}
}

// Spawn hides the dialogue; a wild encounter has nothing to say on the way
// out.
func (w *WildCloser) Spawn(winner *encounter.ParticipantID, msg *text.MessageBox) {
	msg.Despawn()
}

func (w *WildCloser) Update(delta float64) {
	if w.world {
		w.alpha -= closerFadeRate * delta
	} else {
		w.alpha += closerFadeRate * delta
	}
	if w.alpha >= 1 {
		w.world = true
	}
}

func (w *WildCloser) WorldActive() bool {
	return w.world
}

// Finished requires the fade back to the world to complete, not merely the
// switch to it.
func (w *WildCloser) Finished() bool {
	return w.alpha <= 0 && w.world
}

func (w *WildCloser) Reset() {
	w.alpha = 0
	w.world = false
}

func (w *WildCloser) Draw(screen *ebiten.Image) {
	gfx.FillScreen(screen, color.NRGBA{}, w.alpha)
}
