package component

import "image/color"

// PointLight emits from its entity's translation.
type PointLight struct {
	Color     color.RGBA
	Intensity float64
	Range     float64
	Shadows   bool
}

var PointLightComponent = NewComponent[PointLight]()
