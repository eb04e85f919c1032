package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/skul/controller"
)

// stickDeadzone is the left stick magnitude below which the axis reads as zero.
const stickDeadzone = 0.3

// Keyboard reads A/D or the arrow keys and Space, plus the first standard gamepad's
// left stick and bottom face button.
type Keyboard struct {
	prevDir int
}

var _ controller.InputSource = (*Keyboard)(nil)

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Sample polls the devices. Call it once per ebiten Update.
func (k *Keyboard) Sample() controller.Input {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpReleased := inpututil.IsKeyJustReleased(ebiten.KeySpace)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if leftX < -stickDeadzone || leftX > stickDeadzone {
				moveX = leftX
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
				moveX = -1
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
				moveX = 1
			}
			jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			jumpHeld = jumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			jumpReleased = jumpReleased || inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightBottom)
		}
	}

	dir := 0
	switch {
	case moveX > 0:
		dir = 1
	case moveX < 0:
		dir = -1
	}
	pressed := dir != 0 && dir != k.prevDir
	k.prevDir = dir

	return controller.Input{
		Horizontal:        moveX,
		HorizontalPressed: pressed,
		JumpPressed:       jumpPressed,
		JumpHeld:          jumpHeld,
		JumpReleased:      jumpReleased && !jumpHeld,
	}
}
