package rocket

import (
	gomath "math"

	"github.com/Faultbox/rocketmesh/pkg/math"
)

// Method returns the axial method with AxialDefault resolved.
func (c *Component) Method() AxialMethod {
	if c.AxialMethod != AxialDefault {
		return c.AxialMethod
	}
	if c.Kind.IsBodyComponent() {
		return AxialAfter
	}
	return AxialTop
}

// AxialLength returns the length of c along the rocket axis. Assemblies
// span the components stacked inside them.
func (c *Component) AxialLength() float64 {
	if !c.Kind.IsAssembly() {
		return gomath.Max(c.Length, 0)
	}
	var extent float64
	for _, ch := range c.children {
		if ch.Method() != AxialAfter {
			continue
		}
		extent = gomath.Max(extent, ch.Position()+ch.AxialLength())
	}
	return extent
}

// Position returns the axial position of c's front relative to its
// parent's front.
func (c *Component) Position() float64 {
	if c.parent == nil {
		return 0
	}
	switch c.Method() {
	case AxialAfter:
		prev := c.previousStacked()
		if prev == nil {
			return c.AxialOffset
		}
		return prev.Position() + prev.AxialLength() + c.AxialOffset
	case AxialMiddle:
		return (c.parent.AxialLength()-c.AxialLength())/2 + c.AxialOffset
	case AxialBottom:
		return c.parent.AxialLength() - c.AxialLength() + c.AxialOffset
	case AxialAbsolute:
		return c.AxialOffset - c.parent.AbsolutePosition()
	default:
		return c.AxialOffset
	}
}

// previousStacked returns the closest earlier sibling that is itself
// stacked after its predecessor.
func (c *Component) previousStacked() *Component {
	var prev *Component
	for _, s := range c.parent.children {
		if s == c {
			return prev
		}
		if s.Method() == AxialAfter {
			prev = s
		}
	}
	return prev
}

// AbsolutePosition returns the axial position of c's front measured from the
// rocket tip.
func (c *Component) AbsolutePosition() float64 {
	var x float64
	for n := c; n.parent != nil; n = n.parent {
		x += n.Position()
	}
	return x
}

// InstanceTransforms returns one matrix per physical copy of c. Each maps
// component-local coordinates (x from c's front along the axis, y/z radial)
// into the rocket frame, parent instances included.
func (c *Component) InstanceTransforms() []math.Mat4 {
	if c.parent == nil {
		return []math.Mat4{math.Identity()}
	}
	parents := c.parent.InstanceTransforms()
	local := c.localInstances()

	out := make([]math.Mat4, 0, len(parents)*len(local))
	for _, pm := range parents {
		for _, lm := range local {
			out = append(out, pm.Mul(lm))
		}
	}
	return out
}

// InstanceCountOrOne returns the number of copies described by c itself.
func (c *Component) InstanceCountOrOne() int {
	if c.InstanceCount < 1 {
		return 1
	}
	return c.InstanceCount
}

func (c *Component) localInstances() []math.Mat4 {
	n := c.InstanceCountOrOne()
	base := math.Translate(float32(c.Position()), 0, 0)
	out := make([]math.Mat4, n)
	for k := 0; k < n; k++ {
		angle := c.RadialDirection
		axial := 0.0
		if c.Kind.IsRadialPattern() {
			angle += 2 * gomath.Pi * float64(k) / float64(n)
		} else {
			axial = float64(k) * c.InstanceSeparation
		}
		out[k] = base.
			Mul(math.Translate(float32(axial), 0, 0)).
			Mul(math.RotateX(float32(angle))).
			Mul(math.Translate(0, float32(c.RadialOffset), 0))
	}
	return out
}
