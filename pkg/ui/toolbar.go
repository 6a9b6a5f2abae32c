package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	padding   = 6
	charWidth = 6 // ebitenutil debug font
)

// Toolbar lays its widgets out left to right on a translucent strip.
type Toolbar struct {
	X, Y    float64
	Widgets []Widget
	BGColor color.RGBA
}

func NewToolbar(x, y float64, widgets ...Widget) *Toolbar {
	t := &Toolbar{
		X:       x,
		Y:       y,
		BGColor: color.RGBA{R: 220, G: 220, B: 220, A: 200},
	}
	t.Add(widgets...)
	return t
}

// Add appends widgets after the existing ones.
func (t *Toolbar) Add(widgets ...Widget) {
	x := t.X + padding
	for _, w := range t.Widgets {
		ww, _ := w.Size()
		x += ww + padding
	}
	for _, w := range widgets {
		w.SetPosition(x, t.Y+padding)
		ww, _ := w.Size()
		x += ww + padding
		t.Widgets = append(t.Widgets, w)
	}
}

func (t *Toolbar) Update() {
	for _, w := range t.Widgets {
		w.Update()
	}
}

func (t *Toolbar) Draw(screen *ebiten.Image) {
	width, height := t.Size()
	vector.FillRect(screen, float32(t.X), float32(t.Y), float32(width), float32(height), t.BGColor, false)
	for _, w := range t.Widgets {
		w.Draw(screen)
	}
}

// Size is the strip enclosing every widget plus padding.
func (t *Toolbar) Size() (w, h float64) {
	w = padding
	for _, widget := range t.Widgets {
		ww, wh := widget.Size()
		w += ww + padding
		h = max(h, wh)
	}
	return w, h + 2*padding
}
