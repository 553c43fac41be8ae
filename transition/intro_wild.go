package transition

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gfx"
	"github.com/milk9111/firebattle/gui"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/text"
)

const (
	introSlideSpeed = 240.0

	playerCounterEnd  = 104.0
	playerCounterRate = 180.0

	goPageWait = 0.5

	playerSheetCell = 64
)

// WildIntroduction slides the field in, announces the opponent, then throws
// the player's lead out.
type WildIntroduction struct {
	res *Resources

	alive    bool
	finished bool

	// offset is the remaining opener slide; sprites converge as it drops to 0.
	offset float64
	// counter drives the player's throw animation up to playerCounterEnd.
	counter float64
	// finishedPanel is set once the battle GUI reports the player's status
	// panel in place. It is tracked apart from the text and counter state.
	finishedPanel bool

	// hideOpponent keeps the opponent sprite hidden until its renderer spawns,
	// for introductions where a trainer stands in its place.
	hideOpponent bool

	local    encounter.Combatant
	opponent encounter.Combatant
}

func NewWildIntroduction(res *Resources) *WildIntroduction {
	w := &WildIntroduction{res: res}
	w.Reset()
	return w
}

func (w *WildIntroduction) Spawn(local, opponent encounter.Combatant, msg *text.MessageBox) {
	w.setup(local, opponent)
	msg.Clear()
	msg.Push(text.Lines(fmt.Sprintf("Wild %s appeared!", opponent.DisplayName())))
	w.pushGo(msg)
	msg.Spawn()
}

func (w *WildIntroduction) setup(local, opponent encounter.Combatant) {
	w.alive = true
	w.finished = false
	w.local = local
	w.opponent = opponent
}

func (w *WildIntroduction) pushGo(msg *text.MessageBox) {
	msg.Push(text.Timed(goPageWait, fmt.Sprintf("Go! %s!", w.local.Name)))
}

func (w *WildIntroduction) Despawn() {
	w.alive = false
	w.finished = false
}

func (w *WildIntroduction) Alive() bool {
	return w.alive
}

func (w *WildIntroduction) Update(in *input.Input, delta float64, g *gui.BattleGui, msg *text.MessageBox) {
	if !w.alive {
		return
	}
	if !common.Approach(&w.offset, 0, introSlideSpeed, delta) {
		return
	}

	msg.Update(in, delta)
	w.updateGui(delta, g, msg)

	if msg.Page()+1 != msg.Pages() {
		return
	}
	if w.counter < playerCounterEnd {
		common.Approach(&w.counter, playerCounterEnd, playerCounterRate, delta)
	} else if msg.Finished() {
		msg.Despawn()
		w.finished = true
	}
}

func (w *WildIntroduction) updateGui(delta float64, g *gui.BattleGui, msg *text.MessageBox) {
	// The alive guard makes the cry fire once, however many frames are spent
	// on the triggering page.
	if msg.CanContinue() && msg.Page() >= msg.Pages()-2 && !g.Opponent.Alive() {
		g.Opponent.Spawn()
		w.res.playCry(w.opponent.Species, "opponent")
	}

	if w.counter >= playerCounterEnd && !g.Player.Alive() {
		g.Player.Spawn()
		w.res.playCry(w.local.Species, "player")
	}

	g.Opponent.Offset(delta)
	if g.Player.Offset(delta) {
		w.finishedPanel = true
	}
}

// Finished requires all three of: dialogue dismissed, throw animation done,
// and the player's status panel in place.
func (w *WildIntroduction) Finished() bool {
	return w.finished && w.counter >= playerCounterEnd && w.finishedPanel
}

func (w *WildIntroduction) Reset() {
	w.finished = false
	w.offset = common.BaseWidth
	w.counter = 0
	w.finishedPanel = false
	w.hideOpponent = false
}

func (w *WildIntroduction) Draw(screen *ebiten.Image, g *gui.BattleGui) {
	if !w.hideOpponent || g.Opponent.Alive() {
		gfx.DrawBottom(screen, g.Opponent.Texture, gui.OpponentX-w.offset, gui.OpponentBottom)
	}
	w.drawPlayer(screen, g)
	g.DrawPanels(screen)
	g.Text.Draw(screen)
}

func (w *WildIntroduction) drawPlayer(screen *ebiten.Image, g *gui.BattleGui) {
	if w.counter >= playerCounterEnd {
		gfx.DrawBottom(screen, g.Player.Texture, gui.PlayerX+w.offset, gui.PlayerBottom)
		return
	}

	row := 0
	switch {
	case w.counter >= 78:
		row = 4
	case w.counter >= 60:
		row = 3
	case w.counter >= 42:
		row = 2
	case w.counter > 0:
		row = 1
	}
	src := image.Rect(0, row*playerSheetCell, playerSheetCell, (row+1)*playerSheetCell)
	gfx.DrawFrame(screen, w.res.playerSheet(), src, gui.PlayerX+1+w.offset-w.counter, 49)
}
