package transition

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/gfx"
)

const (
	wipeSpeed      = 120.0
	wipeFastAfter  = 24.0
	wipeFastFactor = 4.0
)

// VerticalClose closes two black bars over the world from the top and bottom
// edges. It runs before the introduction while the world is still drawn.
type VerticalClose struct {
	alive  bool
	offset float64
}

func NewVerticalClose() *VerticalClose {
	return &VerticalClose{}
}

func (v *VerticalClose) Spawn() {
	v.Reset()
	v.alive = true
}

func (v *VerticalClose) Despawn() {
	v.alive = false
	v.offset = 0
}

func (v *VerticalClose) Alive() bool {
	return v.alive
}

func (v *VerticalClose) Reset() {
	v.offset = 0
}

func (v *VerticalClose) Update(delta float64) {
	if !v.alive || v.Finished() {
		return
	}
	speed := wipeSpeed
	if v.offset >= wipeFastAfter {
		speed *= wipeFastFactor
	}
	v.offset += speed * delta
	v.offset = min(v.offset, common.BaseHeight/2)
}

// Finished reports whether the bars meet in the middle of the screen.
func (v *VerticalClose) Finished() bool {
	return v.offset >= common.BaseHeight/2
}

func (v *VerticalClose) Draw(screen *ebiten.Image) {
	if !v.alive {
		return
	}
	black := color.Black
	gfx.FillRect(screen, 0, 0, common.BaseWidth, v.offset, black)
	gfx.FillRect(screen, 0, common.BaseHeight-v.offset, common.BaseWidth, math.Ceil(v.offset), black)
}
