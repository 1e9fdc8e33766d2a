package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SceneFile is the default scene prefab.
const SceneFile = "scene.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SceneSpec struct {
	Window    WindowSpec              `yaml:"window"`
	Input     InputSpec               `yaml:"input"`
	Render    RenderSpec              `yaml:"render"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Entities  []EntityBuildSpec       `yaml:"entities"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	if filename == "" {
		filename = SceneFile
	}
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *SceneSpec) validate() error {
	if len(s.Entities) == 0 {
		return fmt.Errorf("scene defines no entities")
	}
	seen := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity %d has no name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate entity name %q", e.Name)
		}
		seen[e.Name] = true
	}
	for name, m := range s.Materials {
		if m.AlphaCutoff < 0 || m.AlphaCutoff > 1 {
			return fmt.Errorf("material %q: alpha_cutoff %v outside [0, 1]", name, m.AlphaCutoff.Float())
		}
		switch m.Sampler {
		case "", "pixel_art", "smooth":
		default:
			return fmt.Errorf("material %q: unknown sampler %q", name, m.Sampler)
		}
	}
	return nil
}

// Entity returns the entity spec with the given name.
func (s *SceneSpec) Entity(name string) (EntityBuildSpec, bool) {
	if s == nil {
		return EntityBuildSpec{}, false
	}
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return EntityBuildSpec{}, false
}

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type InputSpec struct {
	ToggleKey string `yaml:"toggle_key"`
	ExportKey string `yaml:"export_key"`
}

type RenderSpec struct {
	Ambient ColorSpec `yaml:"ambient"`
}

type MaterialSpec struct {
	Texture     string    `yaml:"texture"`
	Sampler     string    `yaml:"sampler"`
	AlphaCutoff Number    `yaml:"alpha_cutoff"`
	DoubleSided bool      `yaml:"double_sided"`
	Color       ColorSpec `yaml:"color"`
}

// ColorSpec accepts "#rrggbb", "#rrggbbaa" or a sequence of 3 or 4 floats in [0, 1].
type ColorSpec struct {
	Value color.RGBA
	Set   bool
}

func (c *ColorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		rgba, err := parseHexColor(value.Value)
		if err != nil {
			return fmt.Errorf("prefabs: line %d: %w", value.Line, err)
		}
		c.Value, c.Set = rgba, true
		return nil
	case yaml.SequenceNode:
		var parts []Number
		if err := value.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("prefabs: line %d: colour needs 3 or 4 components, got %d", value.Line, len(parts))
		}
		ch := [4]float64{1, 1, 1, 1}
		for i, p := range parts {
			ch[i] = p.Float()
		}
		c.Value = color.RGBA{R: unit8(ch[0]), G: unit8(ch[1]), B: unit8(ch[2]), A: unit8(ch[3])}
		c.Set = true
		return nil
	default:
		return fmt.Errorf("prefabs: line %d: unsupported colour value", value.Line)
	}
}

// MarshalYAML writes the colour back as a hex string.
func (c ColorSpec) MarshalYAML() (any, error) {
	if !c.Set {
		return nil, nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Value.R, c.Value.G, c.Value.B, c.Value.A), nil
}

func (c ColorSpec) Or(fallback color.RGBA) color.RGBA {
	if !c.Set {
		return fallback
	}
	return c.Value
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
