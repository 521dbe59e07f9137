package rocket

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDesign is returned for design files that decode but do not
// describe a valid rocket.
var ErrInvalidDesign = errors.New("invalid rocket design")

// Format is a design file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatForPath picks the format from the file extension; anything that is
// not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Design is a loaded rocket with its flight configurations.
type Design struct {
	Rocket         *Component
	Configurations []*FlightConfiguration
}

// Configuration returns the configuration with the given ID. An empty ID
// selects the first configuration, or an all-stages configuration when the
// design declares none.
func (d *Design) Configuration(id string) (*FlightConfiguration, error) {
	if id == "" {
		if len(d.Configurations) > 0 {
			return d.Configurations[0], nil
		}
		return NewFlightConfiguration(d.Rocket, "default", "Default"), nil
	}
	for _, cfg := range d.Configurations {
		if cfg.ID == id {
			return cfg, nil
		}
	}
	return nil, fmt.Errorf("%w: no flight configuration %q", ErrInvalidDesign, id)
}

type designFile struct {
	Name           string          `yaml:"name" toml:"name"`
	Stages         []componentSpec `yaml:"stages" toml:"stages"`
	Configurations []configSpec    `yaml:"configurations" toml:"configurations"`
}

type componentSpec struct {
	ID   string `yaml:"id" toml:"id"`
	Type string `yaml:"type" toml:"type"`
	Name string `yaml:"name" toml:"name"`

	AxialMethod     string  `yaml:"axial_method" toml:"axial_method"`
	AxialOffset     float64 `yaml:"axial_offset" toml:"axial_offset"`
	RadialOffset    float64 `yaml:"radial_offset" toml:"radial_offset"`
	RadialDirection float64 `yaml:"radial_direction" toml:"radial_direction"` // degrees

	Instances  int     `yaml:"instances" toml:"instances"`
	Separation float64 `yaml:"separation" toml:"separation"`

	Length      float64 `yaml:"length" toml:"length"`
	OuterRadius float64 `yaml:"outer_radius" toml:"outer_radius"`
	Thickness   float64 `yaml:"thickness" toml:"thickness"`
	Filled      bool    `yaml:"filled" toml:"filled"`

	ForeRadius     float64       `yaml:"fore_radius" toml:"fore_radius"`
	AftRadius      float64       `yaml:"aft_radius" toml:"aft_radius"`
	Shape          string        `yaml:"shape" toml:"shape"`
	ShapeParameter *float64      `yaml:"shape_parameter" toml:"shape_parameter"`
	ForeShoulder   *shoulderSpec `yaml:"fore_shoulder" toml:"fore_shoulder"`
	AftShoulder    *shoulderSpec `yaml:"aft_shoulder" toml:"aft_shoulder"`

	Fin    *finSpec    `yaml:"fin" toml:"fin"`
	Button *buttonSpec `yaml:"button" toml:"button"`

	MotorMount    bool    `yaml:"motor_mount" toml:"motor_mount"`
	MotorOverhang float64 `yaml:"motor_overhang" toml:"motor_overhang"`

	Appearance *appearanceSpec `yaml:"appearance" toml:"appearance"`

	Children []componentSpec `yaml:"children" toml:"children"`
}

type shoulderSpec struct {
	Length    float64 `yaml:"length" toml:"length"`
	Radius    float64 `yaml:"radius" toml:"radius"`
	Thickness float64 `yaml:"thickness" toml:"thickness"`
}

type finSpec struct {
	RootChord float64     `yaml:"root_chord" toml:"root_chord"`
	TipChord  float64     `yaml:"tip_chord" toml:"tip_chord"`
	Span      float64     `yaml:"span" toml:"span"`
	Sweep     float64     `yaml:"sweep" toml:"sweep"`
	Thickness float64     `yaml:"thickness" toml:"thickness"`
	Cant      float64     `yaml:"cant" toml:"cant"` // degrees
	Points    [][]float64 `yaml:"points" toml:"points"`
}

type buttonSpec struct {
	OuterDiameter float64 `yaml:"outer_diameter" toml:"outer_diameter"`
	InnerDiameter float64 `yaml:"inner_diameter" toml:"inner_diameter"`
	TotalHeight   float64 `yaml:"total_height" toml:"total_height"`
	BaseHeight    float64 `yaml:"base_height" toml:"base_height"`
	FlangeHeight  float64 `yaml:"flange_height" toml:"flange_height"`
}

type appearanceSpec struct {
	Color   string   `yaml:"color" toml:"color"`
	Opacity *float64 `yaml:"opacity" toml:"opacity"`
	Shine   float64  `yaml:"shine" toml:"shine"`
	Texture string   `yaml:"texture" toml:"texture"`
}

type configSpec struct {
	ID     string      `yaml:"id" toml:"id"`
	Name   string      `yaml:"name" toml:"name"`
	Stages []int       `yaml:"stages" toml:"stages"`
	Motors []motorSpec `yaml:"motors" toml:"motors"`
}

type motorSpec struct {
	Mount       string  `yaml:"mount" toml:"mount"`
	Designation string  `yaml:"designation" toml:"designation"`
	Length      float64 `yaml:"length" toml:"length"`
	Diameter    float64 `yaml:"diameter" toml:"diameter"`
}

// LoadFile reads a YAML or TOML design file.
func LoadFile(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	design, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("loading design %s: %w", path, err)
	}
	return design, nil
}

// Parse decodes a design from data.
func Parse(data []byte, format Format) (*Design, error) {
	var f designFile
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	}
	return f.build()
}

func (f *designFile) build() (*Design, error) {
	if len(f.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidDesign)
	}

	root := NewRocket(f.Name)
	for i := range f.Stages {
		spec := f.Stages[i]
		if spec.Type == "" {
			spec.Type = KindStage.String()
		}
		if _, err := spec.build(root); err != nil {
			return nil, err
		}
	}

	design := &Design{Rocket: root}
	for _, cs := range f.Configurations {
		cfg := NewFlightConfiguration(root, cs.ID, cs.Name)
		cfg.SetActiveStages(cs.Stages...)
		for _, ms := range cs.Motors {
			mount := root.Find(ms.Mount)
			if mount == nil {
				return nil, fmt.Errorf("%w: configuration %q: no component %q", ErrInvalidDesign, cs.ID, ms.Mount)
			}
			if !mount.IsMotorMount() {
				return nil, fmt.Errorf("%w: configuration %q: %q is not a motor mount", ErrInvalidDesign, cs.ID, ms.Mount)
			}
			cfg.SetMotor(mount, Motor{Designation: ms.Designation, Length: ms.Length, Diameter: ms.Diameter})
		}
		design.Configurations = append(design.Configurations, cfg)
	}
	return design, nil
}

func (s *componentSpec) build(parent *Component) (*Component, error) {
	kind, err := ParseKind(s.Type)
	if err != nil {
		return nil, err
	}
	if kind == KindRocket {
		return nil, fmt.Errorf("%w: %q cannot be nested", ErrInvalidDesign, s.Type)
	}
	method, err := parseAxialMethod(s.AxialMethod)
	if err != nil {
		return nil, err
	}
	shape, err := ParseShape(s.Shape)
	if err != nil {
		return nil, err
	}

	c := New(kind, s.Name)
	if s.ID != "" {
		if c.ID, err = uuid.Parse(s.ID); err != nil {
			return nil, fmt.Errorf("%w: component %q: %v", ErrInvalidDesign, s.Name, err)
		}
	}
	if c.Name == "" {
		c.Name = kind.String()
	}

	c.AxialMethod = method
	c.AxialOffset = s.AxialOffset
	c.RadialOffset = s.RadialOffset
	c.RadialDirection = degToRad(s.RadialDirection)
	c.InstanceCount = s.Instances
	c.InstanceSeparation = s.Separation
	c.Length = s.Length
	c.OuterRadius = s.OuterRadius
	c.Thickness = s.Thickness
	c.Filled = s.Filled
	c.ForeRadius = s.ForeRadius
	c.AftRadius = s.AftRadius
	c.Shape = shape
	c.ShapeParameter = shape.DefaultParameter()
	if s.ShapeParameter != nil {
		c.ShapeParameter = *s.ShapeParameter
	}
	if s.ForeShoulder != nil {
		c.ForeShoulder = Shoulder(*s.ForeShoulder)
	}
	if s.AftShoulder != nil {
		c.AftShoulder = Shoulder(*s.AftShoulder)
	}
	if kind == KindNoseCone {
		c.ForeRadius = 0
	}
	c.MotorMount = s.MotorMount
	c.MotorOverhang = s.MotorOverhang

	if s.Fin != nil {
		fin := &FinGeometry{
			RootChord: s.Fin.RootChord,
			TipChord:  s.Fin.TipChord,
			Span:      s.Fin.Span,
			Sweep:     s.Fin.Sweep,
			Thickness: s.Fin.Thickness,
			Cant:      degToRad(s.Fin.Cant),
		}
		for _, p := range s.Fin.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("%w: component %q: fin point needs 2 values", ErrInvalidDesign, c.Name)
			}
			fin.Points = append(fin.Points, [2]float64{p[0], p[1]})
		}
		fin.RootChord = fin.EffectiveRootChord()
		c.Fin = fin
		if c.Length == 0 {
			c.Length = fin.RootChord
		}
	}
	if s.Button != nil {
		b := ButtonGeometry(*s.Button)
		c.Button = &b
	}
	if s.Appearance != nil {
		app, err := s.Appearance.build()
		if err != nil {
			return nil, fmt.Errorf("%w: component %q: %v", ErrInvalidDesign, c.Name, err)
		}
		c.Appearance = app
	}

	parent.AddChild(c)
	for i := range s.Children {
		if _, err := s.Children[i].build(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (a *appearanceSpec) build() (*Appearance, error) {
	app := &Appearance{Opacity: 1, Shine: a.Shine, Texture: a.Texture}
	if a.Opacity != nil {
		app.Opacity = *a.Opacity
	}
	if a.Color != "" {
		rgb, err := parseHexColor(a.Color)
		if err != nil {
			return nil, err
		}
		app.Color = rgb
	}
	return app, nil
}

// parseHexColor parses "#rrggbb" or "rrggbb".
func parseHexColor(s string) ([3]uint8, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return [3]uint8{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func parseAxialMethod(s string) (AxialMethod, error) {
	switch strings.ToLower(s) {
	case "":
		return AxialDefault, nil
	case "after":
		return AxialAfter, nil
	case "top":
		return AxialTop, nil
	case "middle":
		return AxialMiddle, nil
	case "bottom":
		return AxialBottom, nil
	case "absolute":
		return AxialAbsolute, nil
	}
	return AxialDefault, fmt.Errorf("%w: unknown axial method %q", ErrInvalidDesign, s)
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
