package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gfx"
)

// Side is which half of the field a renderer belongs to.
type Side uint8

const (
	SideOpponent Side = iota
	SidePlayer
)

const (
	panelSlide = 120.0
	panelSpeed = 240.0
	panelW     = 104.0
	panelH     = 30.0
)

var (
	panelColor = color.NRGBA{R: 0xf8, G: 0xf8, B: 0xd8, A: 0xff}
	hpBack     = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	hpGood     = color.NRGBA{R: 0x70, G: 0xf8, B: 0xa8, A: 0xff}
	hpLow      = color.NRGBA{R: 0xf8, G: 0x58, B: 0x38, A: 0xff}
)

// ActiveRenderer shows one active combatant: its sprite and a status panel
// that slides in when the renderer spawns.
type ActiveRenderer struct {
	Side      Side
	Texture   *ebiten.Image
	Combatant encounter.Combatant

	alive bool
	panel float64
}

func NewActiveRenderer(side Side) *ActiveRenderer {
	return &ActiveRenderer{Side: side, panel: panelSlide}
}

// Set replaces the combatant shown without changing spawn state.
func (r *ActiveRenderer) Set(c encounter.Combatant, tex *ebiten.Image) {
	r.Combatant = c
	r.Texture = tex
}

func (r *ActiveRenderer) Spawn() {
	r.alive = true
	r.panel = panelSlide
}

func (r *ActiveRenderer) Despawn() {
	r.alive = false
}

func (r *ActiveRenderer) Alive() bool {
	return r.alive
}

func (r *ActiveRenderer) Reset() {
	r.alive = false
	r.panel = panelSlide
}

// Offset advances the panel slide and reports whether it is in place. A
// renderer that has not spawned is never in place.
func (r *ActiveRenderer) Offset(delta float64) bool {
	if !r.alive {
		return false
	}
	return common.Approach(&r.panel, 0, panelSpeed, delta)
}

// PanelOffset is the remaining slide distance of the status panel.
func (r *ActiveRenderer) PanelOffset() float64 {
	return r.panel
}

// Draw draws the sprite with its bottom edge at y.
func (r *ActiveRenderer) Draw(screen *ebiten.Image, x, y float64) {
	if !r.alive {
		return
	}
	gfx.DrawBottom(screen, r.Texture, x, y)
}

func (r *ActiveRenderer) DrawPanel(screen *ebiten.Image, face ebtext.Face) {
	if !r.alive || screen == nil {
		return
	}

	var x, y float64
	switch r.Side {
	case SideOpponent:
		x, y = 8-r.panel, 8
	default:
		x, y = common.BaseWidth-panelW-8+r.panel, 74
	}
	gfx.FillRect(screen, x, y, panelW, panelH, panelColor)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x+4, y+2)
	op.ColorScale.ScaleWithColor(color.Black)
	ebtext.Draw(screen, fmt.Sprintf("%s Lv%d", r.Combatant.DisplayName(), r.Combatant.Level), face, op)

	ratio := 0.0
	if r.Combatant.MaxHP > 0 {
		ratio = common.Clamp01(float64(r.Combatant.HP) / float64(r.Combatant.MaxHP))
	}
	fill := hpGood
	if ratio < 0.25 {
		fill = hpLow
	}
	gfx.FillRect(screen, x+4, y+20, panelW-8, 4, hpBack)
	gfx.FillRect(screen, x+4, y+20, (panelW-8)*ratio, 4, fill)
}
