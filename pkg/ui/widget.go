package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is anything the Toolbar can lay out.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// SetPosition moves the widget's top-left corner.
	SetPosition(x, y float64)
	Size() (w, h float64)
}

// clickLatch turns a held mouse button into a single click.
type clickLatch struct {
	held bool
}

// pressed reports true once per press made while the cursor is over the widget.
func (l *clickLatch) pressed(over bool) bool {
	if over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if l.held {
			return false
		}
		l.held = true
		return true
	}
	l.held = false
	return false
}

func cursorIn(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}
