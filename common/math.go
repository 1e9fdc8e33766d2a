package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

var (
	Vec3Up      = mgl64.Vec3{0, 1, 0}
	Vec3Forward = mgl64.Vec3{0, 0, -1}
	Vec3One     = mgl64.Vec3{1, 1, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// RotationY is a rotation of angle radians about +Y.
func RotationY(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, Vec3Up)
}

// Normalize returns the unit vector in v's direction, or the zero vector.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

// LookRotation returns the rotation whose -Z axis points from eye to target
// with up as the up reference. ok is false when eye and target coincide.
func LookRotation(eye, target, up mgl64.Vec3) (q mgl64.Quat, ok bool) {
	dir := target.Sub(eye)
	if dir.Len() == 0 {
		return mgl64.QuatIdent(), false
	}
	back := dir.Mul(-1).Normalize()
	right := Normalize(up.Cross(back))
	if right.Len() == 0 {
		// up is parallel to the view direction
		right = Normalize(mgl64.Vec3{1, 0, 0}.Cross(back))
		if right.Len() == 0 {
			right = Normalize(mgl64.Vec3{0, 0, 1}.Cross(back))
		}
	}
	m := mgl64.Mat4FromCols(
		right.Vec4(0),
		back.Cross(right).Vec4(0),
		back.Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return mgl64.Mat4ToQuat(m).Normalize(), true
}

// AxisAngle splits q into a unit axis and an angle in radians. The identity
// rotation reports a zero angle about +Y.
func AxisAngle(q mgl64.Quat) (mgl64.Vec3, float64) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	s := q.V.Len()
	if s < 1e-12 {
		return Vec3Up, 0
	}
	return q.V.Mul(1 / s), 2 * math.Atan2(s, q.W)
}
