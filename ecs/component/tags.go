package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type SpriteTag struct{}

var SpriteTagComponent = NewComponent[SpriteTag]()

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

type LightTag struct{}

var LightTagComponent = NewComponent[LightTag]()
