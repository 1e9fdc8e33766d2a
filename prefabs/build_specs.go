package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Translation *Vec3Spec `yaml:"translation"`
	Scale       *Vec3Spec `yaml:"scale"`
	RotationY   Number    `yaml:"rotation_y"`
	LookAt      *Vec3Spec `yaml:"look_at"`
}

type CameraComponentSpec struct {
	FovY       Number    `yaml:"fov_y"`
	Near       Number    `yaml:"near"`
	Far        Number    `yaml:"far"`
	ClearColor ColorSpec `yaml:"clear_color"`
}

type OrbitComponentSpec struct {
	Target *Vec3Spec `yaml:"target"`
	Offset *Vec3Spec `yaml:"offset"`
	Angle  Number    `yaml:"angle"`
	Speed  *Number   `yaml:"speed"`
}

type MeshComponentSpec struct {
	Shape        string `yaml:"shape"`
	HalfSize     Number `yaml:"half_size"`
	Subdivisions int    `yaml:"subdivisions"`
	Material     string `yaml:"material"`
}

type MaterialVariantComponentSpec struct {
	Initial  string `yaml:"initial"`
	PixelArt string `yaml:"pixel_art"`
	Normal   string `yaml:"normal"`
}

type PointLightComponentSpec struct {
	Color     ColorSpec `yaml:"color"`
	Intensity Number    `yaml:"intensity"`
	Range     Number    `yaml:"range"`
	Shadows   bool      `yaml:"shadows"`
}

// OrbitPoseSpec is the orbit state exported to the clipboard so it can be
// pasted back into a scene file.
type OrbitPoseSpec struct {
	Target [3]float64 `yaml:"target,flow"`
	Offset [3]float64 `yaml:"offset,flow"`
	Angle  float64    `yaml:"angle"`
	Speed  float64    `yaml:"speed"`
}

func MarshalOrbitPose(p OrbitPoseSpec) ([]byte, error) {
	return yaml.Marshal(map[string]OrbitPoseSpec{"orbit": p})
}
