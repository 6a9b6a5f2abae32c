package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per click.
type Button struct {
	Label         string
	X, Y          float64
	Width, Height float64
	OnClick       func()
	latch         clickLatch

	// Styling
	BGColor     color.RGBA
	HoverColor  color.RGBA
	BorderColor color.RGBA
}

// NewButton sizes the button to fit its label in the debug font.
func NewButton(label string, onClick func()) *Button {
	return &Button{
		Label:       label,
		Width:       float64(len(label)*charWidth + 2*padding),
		Height:      20,
		OnClick:     onClick,
		BGColor:     color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor:  color.RGBA{R: 100, G: 150, B: 220, A: 255},
		BorderColor: color.RGBA{R: 60, G: 60, B: 60, A: 255},
	}
}

func (b *Button) Update() {
	if b.latch.pressed(b.hovered()) && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hovered() {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 2, b.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X)+padding, int(b.Y)+2)
}

func (b *Button) SetPosition(x, y float64) { b.X, b.Y = x, y }

func (b *Button) Size() (w, h float64) { return b.Width, b.Height }

func (b *Button) hovered() bool {
	return cursorIn(b.X, b.Y, b.Width, b.Height)
}
