package component

// MaterialVariant records which of the two sprite materials is bound.
type MaterialVariant uint8

const (
	MaterialPixelArt MaterialVariant = iota
	MaterialNormal
)

// Next returns the other variant.
func (v MaterialVariant) Next() MaterialVariant {
	if v == MaterialPixelArt {
		return MaterialNormal
	}
	return MaterialPixelArt
}

func (v MaterialVariant) String() string {
	switch v {
	case MaterialPixelArt:
		return "pixel art"
	case MaterialNormal:
		return "normal"
	default:
		return "unknown"
	}
}

var MaterialVariantComponent = NewComponent[MaterialVariant]()
