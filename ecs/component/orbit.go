package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultOrbitSpeed is one revolution every 16 seconds.
const DefaultOrbitSpeed = math.Pi / 8

// Orbit moves its entity on a circle about Target. Offset is the position
// relative to Target at Angle 0. Angle grows without bound.
type Orbit struct {
	Target mgl64.Vec3
	Offset mgl64.Vec3
	Angle  float64
	Speed  float64
}

var OrbitComponent = NewComponent[Orbit]()
