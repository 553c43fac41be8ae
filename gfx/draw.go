package gfx

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/firebattle/common"
)

// DrawBottom draws tex with its bottom edge at y. A nil texture is skipped so
// a sprite that failed to load just isn't shown.
func DrawBottom(screen, tex *ebiten.Image, x, y float64) {
	if screen == nil || tex == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y-float64(tex.Bounds().Dy()))
	screen.DrawImage(tex, op)
}

// DrawFrame draws one cell of a sprite sheet at (x, y).
func DrawFrame(screen, sheet *ebiten.Image, src image.Rectangle, x, y float64) {
	if screen == nil || sheet == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(sheet.SubImage(src).(*ebiten.Image), op)
}

// FillScreen covers the battle screen with c at the given alpha in [0, 1].
func FillScreen(screen *ebiten.Image, c color.NRGBA, alpha float64) {
	if screen == nil {
		return
	}
	c.A = uint8(common.Clamp01(alpha) * 255)
	if c.A == 0 {
		return
	}
	vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, c, false)
}

// FillRect draws a solid rectangle in battle screen units.
func FillRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	if screen == nil {
		return
	}
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}
