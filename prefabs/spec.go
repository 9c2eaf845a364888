package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

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

// AppSpec is the application config read from app.yaml.
type AppSpec struct {
	Window  WindowSpec  `yaml:"window"`
	Physics PhysicsSpec `yaml:"physics"`
	Maps    []MapSpec   `yaml:"maps"`
	Map     MapSettings `yaml:"map"`
	Labels  LabelSpec   `yaml:"labels"`
	Cursor  CursorSpec  `yaml:"cursor"`
	Player  SpawnSpec   `yaml:"player"`
	Debug   DebugSpec   `yaml:"debug"`
}

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PhysicsSpec struct {
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	LengthUnit float64 `yaml:"length_unit"`
	Iterations uint    `yaml:"iterations"`
	FixedDT    float64 `yaml:"fixed_dt"`
}

type MapSpec struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

type MapSettings struct {
	Positioning string `yaml:"positioning"`
	YSort       bool   `yaml:"y_sort"`
}

type LabelSpec struct {
	FontSize       float64    `yaml:"font_size"`
	Color          *YAMLColor `yaml:"color"`
	HighlightColor *YAMLColor `yaml:"highlight_color"`
	Script         string     `yaml:"script"`
}

type CursorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpawnSpec struct {
	Size float64 `yaml:"size"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type DebugSpec struct {
	Physics    bool `yaml:"physics"`
	MapObjects bool `yaml:"map_objects"`
	Inspector  bool `yaml:"inspector"`
}

// LoadAppSpec reads app.yaml and fills anything left unset.
func LoadAppSpec() (*AppSpec, error) {
	spec, err := LoadSpec[AppSpec]("app.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if len(spec.Maps) == 0 {
		return nil, fmt.Errorf("prefabs: app.yaml: no maps configured")
	}
	return &spec, nil
}

func (s *AppSpec) applyDefaults() {
	if s.Window.Title == "" {
		s.Window.Title = "isotiled"
	}
	if s.Window.Width <= 0 {
		s.Window.Width = 1280
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 720
	}
	if s.Physics.LengthUnit <= 0 {
		s.Physics.LengthUnit = 1
	}
	if s.Physics.Iterations == 0 {
		s.Physics.Iterations = 10
	}
	if s.Physics.FixedDT <= 0 {
		s.Physics.FixedDT = 1.0 / 60.0
	}
	if s.Labels.FontSize <= 0 {
		s.Labels.FontSize = 8
	}
	if s.Labels.Color == nil {
		s.Labels.Color = &YAMLColor{Color: color.Black}
	}
	if s.Labels.HighlightColor == nil {
		s.Labels.HighlightColor = &YAMLColor{Color: color.NRGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}}
	}
	if s.Player.Size <= 0 {
		s.Player.Size = 10
	}
}

// MapIndex returns the index of path in the configured maps, or -1.
func (s *AppSpec) MapIndex(path string) int {
	for i, m := range s.Maps {
		if m.Path == path {
			return i
		}
	}
	return -1
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns the wrapped color, or def when c is unset.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}
