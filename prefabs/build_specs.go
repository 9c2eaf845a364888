package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
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

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	RestSpeed float64 `yaml:"rest_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SpriteComponentSpec either names an image under assets/ or asks for a
// generated shape ("circle", "diamond", "square") of the given size.
type SpriteComponentSpec struct {
	Image              string     `yaml:"image"`
	Shape              string     `yaml:"shape"`
	Width              int        `yaml:"width"`
	Height             int        `yaml:"height"`
	Color              *YAMLColor `yaml:"color"`
	OriginX            float64    `yaml:"origin_x"`
	OriginY            float64    `yaml:"origin_y"`
	CenterOriginIfZero bool       `yaml:"center_origin_if_zero"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type YSortComponentSpec struct {
	Offset float64 `yaml:"offset"`
}

type CameraComponentSpec struct {
	Zoom      float64 `yaml:"zoom"`
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	ZoomSpeed float64 `yaml:"zoom_speed"`
	MoveSpeed float64 `yaml:"move_speed"`
}

type PhysicsBodyComponentSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`
	Mass         float64 `yaml:"mass"`
	Friction     float64 `yaml:"friction"`
	Elasticity   float64 `yaml:"elasticity"`
	Static       bool    `yaml:"static"`
	LockRotation bool    `yaml:"lock_rotation"`
}
