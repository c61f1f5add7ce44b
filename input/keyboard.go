package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/reacher/ecs/component"
)

// KeyboardSource reads bound keys and the mouse cursor from ebiten. It must
// be polled from within the ebiten update loop.
type KeyboardSource struct {
	bindings Bindings
	held     []ebiten.Key
	width    int
	height   int
	cursor   mgl64.Vec2
	inside   bool
}

// NewKeyboardSource creates a source for a window of the given logical size.
func NewKeyboardSource(bindings Bindings, width, height int) *KeyboardSource {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &KeyboardSource{bindings: bindings, width: width, height: height}
}

func (k *KeyboardSource) Poll() error {
	k.held = inpututil.AppendPressedKeys(k.held[:0])
	x, y := ebiten.CursorPosition()
	k.setCursor(x, y, ebiten.IsFocused())
	return nil
}

func (k *KeyboardSource) setCursor(x, y int, focused bool) {
	k.cursor = mgl64.Vec2{float64(x), float64(y)}
	k.inside = focused && x >= 0 && y >= 0 && x < k.width && y < k.height
}

func (k *KeyboardSource) Pressed(a component.Action) bool {
	for _, key := range k.bindings[a] {
		if slices.Contains(k.held, key) {
			return true
		}
	}
	return false
}

// CursorPosition reports the cursor in window pixels; ok is false while the
// cursor is outside the window or the window is unfocused.
func (k *KeyboardSource) CursorPosition() (mgl64.Vec2, bool) {
	return k.cursor, k.inside
}
