package rocket

import (
	"math"

	"github.com/google/uuid"
)

// AxialMethod selects how a component's AxialOffset is interpreted.
type AxialMethod int

const (
	// AxialDefault resolves to AxialAfter for body components and AxialTop
	// for everything else.
	AxialDefault AxialMethod = iota
	AxialAfter
	AxialTop
	AxialMiddle
	AxialBottom
	AxialAbsolute
)

// Shoulder is the cylindrical insert at either end of a transition.
type Shoulder struct {
	Length    float64
	Radius    float64
	Thickness float64
}

// FinGeometry describes a single fin. Profile points are (x, y) with x along
// the root chord from its leading edge and y outward from the body.
type FinGeometry struct {
	RootChord float64
	TipChord  float64
	Span      float64
	Sweep     float64
	Thickness float64
	Cant      float64 // radians
	Points    [][2]float64
}

// EffectiveRootChord returns RootChord, or for point-defined fins without
// one, the furthest root point along x.
func (f *FinGeometry) EffectiveRootChord() float64 {
	if f.RootChord > 0 || len(f.Points) < 3 {
		return f.RootChord
	}
	var chord float64
	for _, p := range f.Points {
		if math.Abs(p[1]) < 1e-12 && p[0] > chord {
			chord = p[0]
		}
	}
	return chord
}

// ButtonGeometry describes a rail button spool.
type ButtonGeometry struct {
	OuterDiameter float64
	InnerDiameter float64
	TotalHeight   float64
	BaseHeight    float64
	FlangeHeight  float64
}

// Appearance is the surface finish used for material export.
type Appearance struct {
	Color   [3]uint8
	Opacity float64
	Shine   float64 // 0..1
	Texture string
}

// Component is a node of the rocket tree. Only the fields relevant to its
// Kind are used; lengths are in metres and angles in radians.
type Component struct {
	ID   uuid.UUID
	Name string
	Kind Kind

	AxialMethod     AxialMethod
	AxialOffset     float64
	RadialOffset    float64
	RadialDirection float64

	InstanceCount      int
	InstanceSeparation float64

	Length      float64
	OuterRadius float64
	Thickness   float64
	Filled      bool

	ForeRadius     float64
	AftRadius      float64
	Shape          Shape
	ShapeParameter float64
	ForeShoulder   Shoulder
	AftShoulder    Shoulder

	Fin    *FinGeometry
	Button *ButtonGeometry

	MotorMount    bool
	MotorOverhang float64

	Appearance *Appearance

	parent   *Component
	children []*Component
}

// New returns a component with a fresh identity.
func New(kind Kind, name string) *Component {
	return &Component{ID: uuid.New(), Name: name, Kind: kind}
}

// NewRocket returns an empty rocket assembly.
func NewRocket(name string) *Component {
	return New(KindRocket, name)
}

// AddChild appends child to c and returns child.
func (c *Component) AddChild(child *Component) *Component {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = c
	c.children = append(c.children, child)
	return child
}

func (c *Component) removeChild(child *Component) {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// Parent returns the owning component, nil for the root.
func (c *Component) Parent() *Component { return c.parent }

// Children returns the direct children in tree order.
func (c *Component) Children() []*Component { return c.children }

// Root returns the top of the tree c belongs to.
func (c *Component) Root() *Component {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// Descendants returns every component below c in depth-first order.
func (c *Component) Descendants() []*Component {
	var out []*Component
	for _, ch := range c.children {
		out = append(out, ch)
		out = append(out, ch.Descendants()...)
	}
	return out
}

// Walk visits c and then every descendant depth-first. Returning false from
// fn skips the subtree below that component.
func (c *Component) Walk(fn func(*Component) bool) {
	if !fn(c) {
		return
	}
	for _, ch := range c.children {
		ch.Walk(fn)
	}
}

// Find returns the first component in c's subtree whose name or ID matches
// key.
func (c *Component) Find(key string) *Component {
	var found *Component
	c.Walk(func(n *Component) bool {
		if found != nil {
			return false
		}
		if n.Name == key || n.ID.String() == key {
			found = n
			return false
		}
		return true
	})
	return found
}

// IsMotorMount reports whether c can currently carry a motor.
func (c *Component) IsMotorMount() bool {
	return c.MotorMount && c.Kind.CanMountMotor()
}

// Stage returns the closest enclosing stage (c itself included), or nil.
func (c *Component) Stage() *Component {
	for n := c; n != nil; n = n.parent {
		if n.Kind == KindStage || n.Kind == KindParallelStage {
			return n
		}
	}
	return nil
}

// StageNumber returns the depth-first index of c's stage within the rocket,
// or -1 when c is not inside a stage.
func (c *Component) StageNumber() int {
	stage := c.Stage()
	if stage == nil {
		return -1
	}
	n, idx := 0, -1
	stage.Root().Walk(func(s *Component) bool {
		if s == stage {
			idx = n
		}
		if s.Kind == KindStage || s.Kind == KindParallelStage {
			n++
		}
		return idx < 0
	})
	return idx
}

// InnerRadius returns the inner radius of a tube-like component; 0 means
// solid.
func (c *Component) InnerRadius() float64 {
	outer := c.EffectiveOuterRadius()
	if c.Filled || c.Thickness <= 0 || c.Thickness >= outer {
		return 0
	}
	return outer - c.Thickness
}

// EffectiveOuterRadius resolves an unset outer radius of inner components to
// the inner radius of the tube they sit in.
func (c *Component) EffectiveOuterRadius() float64 {
	if c.OuterRadius > 0 || c.parent == nil {
		return c.OuterRadius
	}
	switch c.Kind {
	case KindCenteringRing, KindBulkhead, KindEngineBlock, KindTubeCoupler, KindRing:
		return c.parent.InnerRadius()
	}
	return c.OuterRadius
}

// RadiusAt returns the outer radius of c at x metres from its front.
func (c *Component) RadiusAt(x float64) float64 {
	switch c.Kind {
	case KindTransition, KindNoseCone:
		return c.Shape.Radius(x, c.Length, c.ForeRadius, c.AftRadius, c.ShapeParameter)
	default:
		return c.EffectiveOuterRadius()
	}
}

// MountRadius returns the radius of the parent's outer surface where c
// starts. Fins, lugs and rail buttons sit on this surface.
func (c *Component) MountRadius() float64 {
	if c.parent == nil {
		return 0
	}
	return c.parent.RadiusAt(c.Position())
}
