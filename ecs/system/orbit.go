package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/pixelsampler/common"
	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
)

// OrbitCameraSystem advances every Orbit by the frame delta and places the
// entity on its circle, looking at the orbit target.
type OrbitCameraSystem struct{}

func NewOrbitCameraSystem() *OrbitCameraSystem {
	return &OrbitCameraSystem{}
}

func (s *OrbitCameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta()
	ecs.ForEach2(w, component.OrbitComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, orbit *component.Orbit, t *component.Transform) {
		AdvanceOrbit(orbit, dt)
		pose := OrbitPose(*orbit)
		t.Translation = pose.Translation
		t.Rotation = pose.Rotation
	})
}

// AdvanceOrbit adds Speed*dt to the angle. Negative dt is ignored.
func AdvanceOrbit(o *component.Orbit, dt float64) {
	if o == nil || dt <= 0 {
		return
	}
	o.Angle += o.Speed * dt
}

// OrbitPose is the transform an orbiting entity has at its current angle.
func OrbitPose(o component.Orbit) component.Transform {
	rotation := common.RotationY(o.Angle)
	t := component.Transform{
		Translation: o.Target.Add(rotation.Rotate(o.Offset)),
		Rotation:    mgl64.QuatIdent(),
		Scale:       common.Vec3One,
	}
	t.LookAt(o.Target, common.Vec3Up)
	return t
}
