package gui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/firebattle/encounter"
	"github.com/milk9111/firebattle/input"
	"golang.org/x/image/font/basicfont"
)

const cursorMark = "> "

// ActionMenu is the local player's battle menu: one button per move plus RUN.
// Mouse input goes through ebitenui; keyboard input moves a cursor over the
// same entries, and the entry under the cursor is drawn highlighted.
type ActionMenu struct {
	ui      *ebitenui.UI
	face    ebtext.Face
	moves   []string
	cursor  int
	active  bool
	pending []encounter.Action

	// dirty marks the widget tree stale; it is rebuilt on the next Draw.
	dirty bool
}

func NewActionMenu() *ActionMenu {
	return &ActionMenu{face: ebtext.NewGoXFace(basicfont.Face7x13), dirty: true}
}

// SetMoves replaces the move buttons.
func (m *ActionMenu) SetMoves(names []string) {
	m.moves = append([]string(nil), names...)
	m.moveCursor(0)
}

func (m *ActionMenu) Reset() {
	m.active = false
	m.pending = nil
	m.moveCursor(0)
}

// Cursor is the highlighted entry; len(moves) is RUN.
func (m *ActionMenu) Cursor() int {
	return m.cursor
}

// Labels are the button captions as drawn, the highlighted one marked.
func (m *ActionMenu) Labels() []string {
	labels := append(append([]string(nil), m.moves...), "RUN")
	for i := range labels {
		if i == m.cursor {
			labels[i] = cursorMark + labels[i]
		}
	}
	return labels
}

func (m *ActionMenu) moveCursor(index int) {
	m.cursor = index
	m.dirty = true
}

func (m *ActionMenu) Start() {
	m.active = true
}

func (m *ActionMenu) entries() int {
	return len(m.moves) + 1
}

func (m *ActionMenu) submit(index int) {
	if !m.active {
		return
	}
	if index >= len(m.moves) {
		m.pending = append(m.pending, encounter.Action{Kind: encounter.ActionRun})
		return
	}
	m.pending = append(m.pending, encounter.Action{Kind: encounter.ActionMove, Move: index})
}

func (m *ActionMenu) Update(in *input.Input, delta float64) {
	if !m.active {
		return
	}
	if in != nil {
		n := m.entries()
		switch {
		case in.Left || in.Up:
			m.moveCursor((m.cursor + n - 1) % n)
		case in.Right || in.Down:
			m.moveCursor((m.cursor + 1) % n)
		case in.ConfirmPressed:
			m.submit(m.cursor)
		}
	}
	if m.ui != nil {
		m.ui.Update()
	}
}

func (m *ActionMenu) Draw(screen *ebiten.Image) {
	if !m.active || screen == nil {
		return
	}
	if m.dirty || m.ui == nil {
		m.rebuild()
	}
	m.ui.Draw(screen)
}

// Actions drains the commands chosen since the last call.
func (m *ActionMenu) Actions() []encounter.Action {
	out := m.pending
	m.pending = nil
	return out
}

func (m *ActionMenu) rebuild() {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x28, G: 0x30, B: 0x48, A: 0xf0})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x48, G: 0x50, B: 0x70, A: 0xff})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x70, G: 0x78, B: 0x98, A: 0xff})
	btnSelected := imageui.NewNineSliceColor(color.NRGBA{R: 0xc8, G: 0x90, B: 0x30, A: 0xff})
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 4, Right: 4}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)

	for i, label := range m.Labels() {
		index := i
		idle := btnImg
		if index == m.cursor {
			idle = btnSelected
		}
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &m.face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				m.moveCursor(index)
				m.submit(index)
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	m.ui = &ebitenui.UI{Container: root}
	m.dirty = false
}
