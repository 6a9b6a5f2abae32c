// Package render turns flock state into drawable geometry. It has no graphics
// dependency so both the window and the terminal hosts share it.
package render

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// finAngle is the angle between the heading and each side point of the arrowhead.
const finAngle = 3 * math.Pi / 4

// TriangleIndices splits the Outline quad into two triangles sharing the tip
// and the tail notch. The shape is concave, a fan from any other vertex would
// cover the notch.
var TriangleIndices = []uint16{0, 1, 2, 0, 2, 3}

// Outline returns the arrowhead of a fish in world coordinates:
// tip, first fin, tail notch, second fin. size is the distance from the
// centre to the tip and to each fin, the notch sits at half of it.
func Outline(a flock.Agent, size float64) [4]geometry.Vector2D {
	at := func(theta, l float64) geometry.Vector2D {
		return a.Position.Add(geometry.FromHeading(theta).Mul(l))
	}
	return [4]geometry.Vector2D{
		at(a.Heading, size),
		at(a.Heading+finAngle, size),
		at(a.Heading+math.Pi, size/2),
		at(a.Heading-finAngle, size),
	}
}

// ToScreen maps a world point to pixel coordinates of a 2*Width x 2*Height
// window: the world origin is the window centre and world y points up.
func ToScreen(p geometry.Vector2D, d flock.Domain) (x, y float64) {
	return p.X + d.Width, d.Height - p.Y
}
