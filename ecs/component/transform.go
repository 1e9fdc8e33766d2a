package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pixelsampler/common"
)

type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

var TransformComponent = NewComponent[Transform]()

// NewTransform places an unrotated, unscaled transform at (x, y, z).
func NewTransform(x, y, z float64) Transform {
	return Transform{
		Translation: mgl64.Vec3{x, y, z},
		Rotation:    mgl64.QuatIdent(),
		Scale:       common.Vec3One,
	}
}

// LookAt rotates t so its forward axis (-Z) points at target, keeping up as the up reference.
// When target coincides with the translation the rotation is left untouched.
func (t *Transform) LookAt(target, up mgl64.Vec3) {
	if q, ok := common.LookRotation(t.Translation, target, up); ok {
		t.Rotation = q
	}
}

// Forward is the world-space direction of the local -Z axis.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(common.Vec3Forward)
}

// Up is the world-space direction of the local +Y axis.
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(common.Vec3Up)
}

// EffectiveScale treats an unset scale as one.
func (t Transform) EffectiveScale() mgl64.Vec3 {
	if t.Scale == (mgl64.Vec3{}) {
		return common.Vec3One
	}
	return t.Scale
}
