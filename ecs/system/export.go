package system

import (
	"log"

	"github.com/milk9111/pixelsampler/ecs"
	"github.com/milk9111/pixelsampler/ecs/component"
	"github.com/milk9111/pixelsampler/prefabs"
)

// ClipboardWriter receives exported text.
type ClipboardWriter interface {
	WriteText(b []byte) error
}

// OrbitExportSystem copies the first orbit's current state as scene YAML when
// the export key is pressed.
type OrbitExportSystem struct {
	clipboard ClipboardWriter
	last      []byte
}

func NewOrbitExportSystem(clipboard ClipboardWriter) *OrbitExportSystem {
	return &OrbitExportSystem{clipboard: clipboard}
}

func (s *OrbitExportSystem) Update(w *ecs.World) {
	if s == nil || w == nil || !exportPressed(w) {
		return
	}
	e, ok := w.First(component.OrbitComponent.Kind())
	if !ok {
		return
	}
	orbit, _ := ecs.Get(w, e, component.OrbitComponent.Kind())

	out, err := prefabs.MarshalOrbitPose(prefabs.OrbitPoseSpec{
		Target: [3]float64(orbit.Target),
		Offset: [3]float64(orbit.Offset),
		Angle:  orbit.Angle,
		Speed:  orbit.Speed,
	})
	if err != nil {
		log.Printf("export: marshal orbit: %v", err)
		return
	}
	s.last = out
	if s.clipboard == nil {
		return
	}
	if err := s.clipboard.WriteText(out); err != nil {
		log.Printf("export: clipboard: %v", err)
		return
	}
	log.Printf("export: copied orbit pose (angle %.3f rad)", orbit.Angle)
}

// Last returns the most recent export.
func (s *OrbitExportSystem) Last() []byte {
	return s.last
}

func exportPressed(w *ecs.World) bool {
	pressed := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		pressed = pressed || in.ExportPressed
	})
	return pressed
}
