package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles Value on click, the label to its right is part of the target.
type Checkbox struct {
	Label    string
	Value    bool
	X, Y     float64
	Box      float64
	OnChange func(bool)
	latch    clickLatch
}

func NewCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	return &Checkbox{
		Label:    label,
		Value:    value,
		Box:      16,
		OnChange: onChange,
	}
}

func (c *Checkbox) Update() {
	w, h := c.Size()
	if !c.latch.pressed(cursorIn(c.X, c.Y, w, h)) {
		return
	}
	c.Value = !c.Value
	if c.OnChange != nil {
		c.OnChange(c.Value)
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Box), float32(c.Box),
		2,
		color.RGBA{R: 60, G: 60, B: 60, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+3), float32(c.Y+3),
			float32(c.Box-6), float32(c.Box-6),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Box)+padding, int(c.Y))
}

func (c *Checkbox) SetPosition(x, y float64) { c.X, c.Y = x, y }

func (c *Checkbox) Size() (w, h float64) {
	return c.Box + float64(padding+len(c.Label)*charWidth), c.Box
}
