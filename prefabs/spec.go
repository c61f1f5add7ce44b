package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
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

type validator interface {
	Validate() error
}

func loadValidated[T any, P interface {
	*T
	validator
}](filename string) (*T, error) {
	spec, err := LoadSpec[T](filename)
	if err != nil {
		return nil, err
	}
	if err := P(&spec).Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type TransformSpec struct {
	Position Vec3Spec `yaml:"position"`
}

type ShapeSpec struct {
	HalfExtents Vec3Spec  `yaml:"half_extents"`
	Color       YAMLColor `yaml:"color"`
	Layer       int       `yaml:"layer"`
}

func (s ShapeSpec) validate() error {
	h := s.HalfExtents
	if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
		return fmt.Errorf("half extents must be positive, got %+v", h)
	}
	return nil
}

type PlayerSpec struct {
	Name                string        `yaml:"name"`
	RunSpeed            float64       `yaml:"run_speed"`
	JumpHeight          float64       `yaml:"jump_height"`
	JumpSpeed           float64       `yaml:"jump_speed"`
	GravityStep         float64       `yaml:"gravity_step"`
	ScaleGravityByDelta bool          `yaml:"scale_gravity_by_delta"`
	JumpHeightMode      string        `yaml:"jump_height_mode"`
	JumpOnPressOnly     bool          `yaml:"jump_on_press_only"`
	Transform           TransformSpec `yaml:"transform"`
	Shape               ShapeSpec     `yaml:"shape"`
}

func (s *PlayerSpec) Validate() error {
	if s.RunSpeed < 0 {
		return fmt.Errorf("run_speed must not be negative, got %v", s.RunSpeed)
	}
	if s.JumpHeight <= 0 {
		return fmt.Errorf("jump_height must be positive, got %v", s.JumpHeight)
	}
	if s.JumpSpeed <= 0 {
		return fmt.Errorf("jump_speed must be positive, got %v", s.JumpSpeed)
	}
	if s.GravityStep < 0 {
		return fmt.Errorf("gravity_step must not be negative, got %v", s.GravityStep)
	}
	switch s.JumpHeightMode {
	case "", "absolute", "relative":
	default:
		return fmt.Errorf("unknown jump_height_mode %q", s.JumpHeightMode)
	}
	return s.Shape.validate()
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	return loadValidated[PlayerSpec]("player.yaml")
}

type HandSpec struct {
	Name        string        `yaml:"name"`
	ReachRadius float64       `yaml:"reach_radius"`
	Transform   TransformSpec `yaml:"transform"`
	Shape       ShapeSpec     `yaml:"shape"`
}

func (s *HandSpec) Validate() error {
	if s.ReachRadius <= 0 {
		return fmt.Errorf("reach_radius must be positive, got %v", s.ReachRadius)
	}
	return s.Shape.validate()
}

func LoadHandSpec() (*HandSpec, error) {
	return loadValidated[HandSpec]("hand.yaml")
}

type CameraSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Target    Vec3Spec      `yaml:"target"`
	Up        Vec3Spec      `yaml:"up"`
	FovY      float64       `yaml:"fov_y"` // degrees
	Near      float64       `yaml:"near"`
	Far       float64       `yaml:"far"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
}

func (s *CameraSpec) Validate() error {
	if s.FovY <= 0 || s.FovY >= 180 {
		return fmt.Errorf("fov_y must be in (0, 180), got %v", s.FovY)
	}
	if s.Near <= 0 || s.Far <= s.Near {
		return fmt.Errorf("clip range must satisfy 0 < near < far, got %v..%v", s.Near, s.Far)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.Target.Vec3() == s.Transform.Position.Vec3() {
		return errors.New("camera target coincides with its position")
	}
	return nil
}

func LoadCameraSpec() (*CameraSpec, error) {
	return loadValidated[CameraSpec]("camera.yaml")
}

type FloorSpec struct {
	Name      string        `yaml:"name"`
	Friction  float64       `yaml:"friction"`
	Transform TransformSpec `yaml:"transform"`
	Shape     ShapeSpec     `yaml:"shape"`
}

func (s *FloorSpec) Validate() error {
	return s.Shape.validate()
}

func LoadFloorSpec() (*FloorSpec, error) {
	return loadValidated[FloorSpec]("floor.yaml")
}

// InputSpec maps action names to ebiten key names.
type InputSpec struct {
	Bindings map[string][]string `yaml:"bindings"`
}

func (s *InputSpec) Validate() error {
	if len(s.Bindings) == 0 {
		return errors.New("no bindings defined")
	}
	for action, keys := range s.Bindings {
		if len(keys) == 0 {
			return fmt.Errorf("action %q has no keys", action)
		}
	}
	return nil
}

func LoadInputSpec() (*InputSpec, error) {
	return loadValidated[InputSpec]("input.yaml")
}

type WorldSpec struct {
	Title    string `yaml:"title"`
	TickRate int    `yaml:"tick_rate"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Scenario string `yaml:"scenario"`
}

func (s *WorldSpec) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", s.TickRate)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("window must be positive, got %dx%d", s.Width, s.Height)
	}
	return nil
}

func (s WorldSpec) Delta() float64 {
	return 1 / float64(s.TickRate)
}

func LoadWorldSpec() (*WorldSpec, error) {
	return loadValidated[WorldSpec]("world.yaml")
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color as premultiplied 8-bit channels, white when unset.
func (c YAMLColor) RGBA8() color.RGBA {
	if c.Color == nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
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

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
