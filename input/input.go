package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the per-frame input snapshot the battle layer consumes. It is
// filled by Update from ebiten and can be built by hand in tests.
type Input struct {
	// ConfirmPressed is true on the frame the confirm key/button was pressed.
	ConfirmPressed bool
	// CancelPressed is true on the frame the cancel key/button was pressed.
	CancelPressed bool
	// Up/Down/Left/Right are single-frame menu navigation signals.
	Up    bool
	Down  bool
	Left  bool
	Right bool
	// ConfirmHeld speeds up text reveal while held.
	ConfirmHeld bool
	// MoveX/MoveY are the held direction on the overworld, -1, 0 or 1.
	MoveX int
	MoveY int
	// Pause toggles the pause menu.
	Pause bool

	// DebugEnd is the F1 escape hatch that aborts a running battle.
	DebugEnd bool
	// DebugCopy copies the dialogue transcript (F2).
	DebugCopy bool
}

func New() *Input {
	return &Input{}
}

// Update polls keyboard and the first gamepad.
func (i *Input) Update() {
	var gpConfirm, gpConfirmHeld, gpCancel, gpUp, gpDown, gpLeft, gpRight bool

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 {
		gid := ids[0]

		// A / B on the standard mapping.
		gpConfirm = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpConfirmHeld = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpCancel = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)

		gpUp = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftTop)
		gpDown = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftBottom)
		gpLeft = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
		gpRight = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftRight)
	}

	i.ConfirmPressed = inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) || gpConfirm
	i.ConfirmHeld = ebiten.IsKeyPressed(ebiten.KeyX) || ebiten.IsKeyPressed(ebiten.KeyEnter) || gpConfirmHeld
	i.CancelPressed = inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || gpCancel

	i.Up = inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || gpUp
	i.Down = inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || gpDown
	i.Left = inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || gpLeft
	i.Right = inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || gpRight

	i.MoveX, i.MoveY = 0, 0
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || gpHeld(ids, ebiten.StandardGamepadButtonLeftLeft):
		i.MoveX = -1
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight) || gpHeld(ids, ebiten.StandardGamepadButtonLeftRight):
		i.MoveX = 1
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp) || gpHeld(ids, ebiten.StandardGamepadButtonLeftTop):
		i.MoveY = -1
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown) || gpHeld(ids, ebiten.StandardGamepadButtonLeftBottom):
		i.MoveY = 1
	}

	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.DebugEnd = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	i.DebugCopy = inpututil.IsKeyJustPressed(ebiten.KeyF2)
}

// Clear drops every signal, e.g. after a frame consumed a confirm press.
func (i *Input) Clear() {
	*i = Input{}
}

func gpHeld(ids []ebiten.GamepadID, b ebiten.StandardGamepadButton) bool {
	return len(ids) > 0 && ebiten.IsStandardGamepadButtonPressed(ids[0], b)
}
