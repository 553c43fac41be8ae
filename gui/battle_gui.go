package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/firebattle/text"
	"golang.org/x/image/font/basicfont"
)

// Resting positions of the two active sprites.
const (
	OpponentX      = 144.0
	OpponentBottom = 74.0
	PlayerX        = 40.0
	PlayerBottom   = 113.0
)

var backgroundColor = color.NRGBA{R: 0xf8, G: 0xf8, B: 0xf0, A: 0xff}

// BattleGui is the battle screen shared by every phase: background, both
// active renderers and the dialogue box.
type BattleGui struct {
	Background *ebiten.Image
	Opponent   *ActiveRenderer
	Player     *ActiveRenderer
	Text       *text.MessageBox

	face ebtext.Face
}

func NewBattleGui(background *ebiten.Image) *BattleGui {
	return &BattleGui{
		Background: background,
		Opponent:   NewActiveRenderer(SideOpponent),
		Player:     NewActiveRenderer(SidePlayer),
		Text:       text.NewMessageBox(),
	}
}

// Reset clears everything a previous encounter left on screen.
func (g *BattleGui) Reset() {
	g.Opponent.Reset()
	g.Player.Reset()
	g.Text.Clear()
	g.Text.Despawn()
}

// Face is the font used by panels and menus.
func (g *BattleGui) Face() ebtext.Face {
	if g.face == nil {
		g.face = ebtext.NewGoXFace(basicfont.Face7x13)
	}
	return g.face
}

func (g *BattleGui) DrawBackground(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	if g.Background == nil {
		screen.Fill(backgroundColor)
		return
	}
	screen.DrawImage(g.Background, nil)
}

func (g *BattleGui) DrawPanels(screen *ebiten.Image) {
	g.Opponent.DrawPanel(screen, g.Face())
	g.Player.DrawPanel(screen, g.Face())
}

// DrawField renders the settled battle scene without the dialogue box.
func (g *BattleGui) DrawField(screen *ebiten.Image) {
	g.DrawBackground(screen)
	g.Opponent.Draw(screen, OpponentX, OpponentBottom)
	g.Player.Draw(screen, PlayerX, PlayerBottom)
	g.DrawPanels(screen)
}

func (g *BattleGui) Draw(screen *ebiten.Image) {
	g.DrawField(screen)
	g.Text.Draw(screen)
}
