package component

import "image/color"

// Camera holds the perspective projection and clear colour of a 3D view.
type Camera struct {
	FovY       float64
	Near       float64
	Far        float64
	ClearColor color.RGBA
}

var CameraComponent = NewComponent[Camera]()
