package transition

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/gfx"
	"github.com/milk9111/firebattle/gui"
	"github.com/milk9111/firebattle/input"
	"github.com/milk9111/firebattle/text"
)

const trainerLeaveSpeed = 300.0

// TrainerIntroduction shows the opposing trainer, who steps aside once they
// send out their lead; the reveal itself is the wild introduction.
type TrainerIntroduction struct {
	wild *WildIntroduction

	texture *ebiten.Image
	leaving float64
}

func NewTrainerIntroduction(res *Resources) *TrainerIntroduction {
	return &TrainerIntroduction{wild: NewWildIntroduction(res)}
}

func (t *TrainerIntroduction) Spawn(local, opponent encounter.Combatant, trainer *encounter.TrainerEntry, msg *text.MessageBox) {
	t.wild.setup(local, opponent)
	t.wild.hideOpponent = true

	name := "Trainer"
	sprite := ""
	if trainer != nil {
		name = trainer.DisplayName()
		sprite = trainer.Sprite
	}
	t.texture = t.wild.res.trainer(sprite)

	msg.Clear()
	msg.Push(text.Lines(fmt.Sprintf("%s would like to battle!", name)))
	msg.Push(text.Lines(fmt.Sprintf("%s sent out %s!", name, opponent.DisplayName())))
	t.wild.pushGo(msg)
	msg.Spawn()
}

func (t *TrainerIntroduction) Despawn() {
	t.wild.Despawn()
}

func (t *TrainerIntroduction) Alive() bool {
	return t.wild.Alive()
}

func (t *TrainerIntroduction) Update(in *input.Input, delta float64, g *gui.BattleGui, msg *text.MessageBox) {
	t.wild.Update(in, delta, g, msg)
	if msg.Page() >= 1 {
		common.Approach(&t.leaving, common.BaseWidth, trainerLeaveSpeed, delta)
	}
}

func (t *TrainerIntroduction) Finished() bool {
	return t.wild.Finished()
}

func (t *TrainerIntroduction) Reset() {
	t.wild.Reset()
	t.texture = nil
	t.leaving = 0
}

func (t *TrainerIntroduction) Draw(screen *ebiten.Image, g *gui.BattleGui) {
	if t.leaving < common.BaseWidth {
		gfx.DrawBottom(screen, t.texture, gui.OpponentX-t.wild.offset+t.leaving, gui.OpponentBottom)
	}
	t.wild.Draw(screen, g)
}
