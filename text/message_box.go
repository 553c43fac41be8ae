package text

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/firebattle/common"
	"github.com/milk9111/firebattle/input"
	"golang.org/x/image/font/basicfont"
)

const (
	DefaultSpeed = 30.0
	heldSpeedup  = 3.0

	boxHeight   = 48.0
	lineSpacing = 14.0
	padding     = 8.0
)

var boxColor = color.NRGBA{R: 0x28, G: 0x30, B: 0x48, A: 0xf0}

// MessageBox is the battle dialogue surface. It is shared by every phase of an
// encounter; only the phase that currently owns it may write to it.
type MessageBox struct {
	pages []Page
	page  int

	chars float64
	wait  float64

	alive    bool
	finished bool

	speed      float64
	transcript []string

	face ebtext.Face
}

func NewMessageBox() *MessageBox {
	return &MessageBox{speed: DefaultSpeed}
}

// SetSpeed sets the reveal rate in characters per second.
func (m *MessageBox) SetSpeed(cps float64) {
	if cps <= 0 {
		cps = DefaultSpeed
	}
	m.speed = cps
}

func (m *MessageBox) Push(p Page) {
	m.pages = append(m.pages, p)
}

// Clear drops all pages and rewinds progress.
func (m *MessageBox) Clear() {
	m.pages = nil
	m.Reset()
}

// Reset rewinds to the first page without touching the page list.
func (m *MessageBox) Reset() {
	m.page = 0
	m.chars = 0
	m.wait = 0
	m.finished = false
}

func (m *MessageBox) Spawn() {
	m.alive = true
	m.finished = false
	m.record()
}

func (m *MessageBox) Despawn() {
	m.alive = false
	m.finished = false
}

func (m *MessageBox) Alive() bool {
	return m.alive
}

// Page is the index of the page currently shown.
func (m *MessageBox) Page() int {
	return m.page
}

// Pages is the number of queued pages.
func (m *MessageBox) Pages() int {
	return len(m.pages)
}

// PageLines returns the lines of page i, or nil when out of range.
func (m *MessageBox) PageLines(i int) []string {
	if i < 0 || i >= len(m.pages) {
		return nil
	}
	return m.pages[i].Lines
}

// CanContinue reports whether the current page is fully revealed.
func (m *MessageBox) CanContinue() bool {
	if !m.alive || len(m.pages) == 0 {
		return false
	}
	return m.chars >= float64(m.pages[m.page].length())
}

// Finished reports whether the last page has been dismissed.
func (m *MessageBox) Finished() bool {
	return m.finished
}

// Transcript returns every page shown since the box was created, one string
// per page.
func (m *MessageBox) Transcript() []string {
	return append([]string(nil), m.transcript...)
}

func (m *MessageBox) Update(in *input.Input, delta float64) {
	if !m.alive || m.finished || len(m.pages) == 0 {
		return
	}
	if in == nil {
		in = &input.Input{}
	}

	current := m.pages[m.page]
	total := float64(current.length())
	if m.chars < total {
		if in.ConfirmPressed {
			m.chars = total
			return
		}
		rate := m.speed
		if in.ConfirmHeld {
			rate *= heldSpeedup
		}
		m.chars += rate * delta
		if m.chars > total {
			m.chars = total
		}
		return
	}

	if current.Timed {
		m.wait += delta
		if m.wait >= current.Wait {
			m.advance()
		}
		return
	}
	if in.ConfirmPressed {
		m.advance()
	}
}

func (m *MessageBox) advance() {
	if m.page+1 >= len(m.pages) {
		m.finished = true
		return
	}
	m.page++
	m.chars = 0
	m.wait = 0
	m.record()
}

func (m *MessageBox) record() {
	if m.page < len(m.pages) {
		m.transcript = append(m.transcript, strings.Join(m.pages[m.page].Lines, " "))
	}
}

// Draw renders the box along the bottom of the battle screen.
func (m *MessageBox) Draw(screen *ebiten.Image) {
	if !m.alive || len(m.pages) == 0 || screen == nil {
		return
	}
	if m.face == nil {
		m.face = ebtext.NewGoXFace(basicfont.Face7x13)
	}

	top := float32(common.BaseHeight - boxHeight)
	vector.FillRect(screen, 0, top, common.BaseWidth, boxHeight, boxColor, false)

	remaining := int(m.chars)
	for i, line := range m.pages[m.page].Lines {
		runes := []rune(line)
		if remaining < len(runes) {
			runes = runes[:remaining]
		}
		remaining -= len(runes)

		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(padding, float64(top)+padding+float64(i)*lineSpacing)
		op.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, string(runes), m.face, op)

		if remaining <= 0 {
			break
		}
	}
}
