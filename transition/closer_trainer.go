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

const (
	trainerRestX      = 172.0
	trainerSlideSpeed = 300.0
)

// TrainerCloser plays the defeat and reward dialogue while the beaten
// trainer walks back in, then hands over to the wild fade.
type TrainerCloser struct {
	wild WildCloser
	res  *Resources

	texture *ebiten.Image
	offset  float64
}

func NewTrainerCloser(res *Resources) *TrainerCloser {
	t := &TrainerCloser{res: res}
	t.Reset()
	return t
}

// VictoryPages is the dialogue shown after beating a trainer: the defeat line,
// the trainer's victory lines verbatim, then the reward.
func VictoryPages(localName string, trainer *encounter.TrainerEntry) []text.Page {
	pages := make([]text.Page, 0, len(trainer.VictoryMessage)+2)
	pages = append(pages, text.Lines(fmt.Sprintf("Player defeated %s!", trainer.DisplayName())))
	for _, message := range trainer.VictoryMessage {
		pages = append(pages, text.Lines(append([]string(nil), message...)...))
	}
	pages = append(pages, text.Lines(
		fmt.Sprintf("%s got $%d", localName, trainer.Worth),
		"for winning!",
	))
	return pages
}

func (t *TrainerCloser) Spawn(local encounter.ParticipantID, localName string, winner *encounter.ParticipantID, trainer *encounter.TrainerEntry, msg *text.MessageBox) {
	switch {
	case winner == nil:
		msg.Despawn()
	case *winner == local && trainer != nil:
		t.texture = t.res.trainer(trainer.Sprite)
		msg.Clear()
		for _, p := range VictoryPages(localName, trainer) {
			msg.Push(p)
		}
		msg.Spawn()
	default:
		msg.Despawn()
	}
}

func (t *TrainerCloser) Update(in *input.Input, delta float64, msg *text.MessageBox) {
	if !msg.Alive() {
		t.wild.Update(delta)
		return
	}
	msg.Update(in, delta)
	if msg.Page() >= 1 && t.offset > trainerRestX {
		common.Approach(&t.offset, trainerRestX, trainerSlideSpeed, delta)
	}
	if msg.Finished() {
		msg.Despawn()
	}
}

// Offset is the trainer sprite's current x position.
func (t *TrainerCloser) Offset() float64 {
	return t.offset
}

func (t *TrainerCloser) WorldActive() bool {
	return t.wild.WorldActive()
}

func (t *TrainerCloser) Finished() bool {
	return t.wild.Finished()
}

func (t *TrainerCloser) Reset() {
	t.wild.Reset()
	t.texture = nil
	t.offset = common.BaseWidth
}

func (t *TrainerCloser) Draw(screen *ebiten.Image) {
	t.wild.Draw(screen)
}

func (t *TrainerCloser) DrawBattle(screen *ebiten.Image) {
	gfx.DrawBottom(screen, t.texture, t.offset, gui.OpponentBottom)
}
