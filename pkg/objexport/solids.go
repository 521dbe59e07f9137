package objexport

import (
	gomath "math"

	"github.com/Faultbox/rocketmesh/pkg/math"
	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// generateMassObject meshes parachutes, streamers, shock cords and other
// point masses as a capsule of the component's length and radius.
func generateMassObject(doc *wavefront.Document, req Request) error {
	c := req.Component
	b := newMeshBuilder(doc, req, req.Group)
	outline := capsuleOutline(c.Length, c.EffectiveOuterRadius(), req.LOD.AxialSteps()/2)
	if outline == nil {
		return nil
	}
	for _, inst := range c.InstanceTransforms() {
		b.place(inst)
		if err := b.revolve(outline, false, req.LOD.Sides()); err != nil {
			return err
		}
	}
	return nil
}

// capsuleOutline returns a cylinder outline with rounded ends. The end
// radius is capped at half the length.
func capsuleOutline(length, radius float64, steps int) []profilePoint {
	if length <= 0 || radius <= 0 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	round := gomath.Min(radius, length/2)

	out := make([]profilePoint, 0, 2*steps+4)
	out = append(out, profilePoint{0, 0})
	for k := 0; k <= steps; k++ {
		a := gomath.Pi / 2 * float64(k) / float64(steps)
		out = append(out, profilePoint{
			x: round * (1 - gomath.Cos(a)),
			r: radius - round + round*gomath.Sin(a),
		})
	}
	for k := steps; k >= 0; k-- {
		a := gomath.Pi / 2 * float64(k) / float64(steps)
		out = append(out, profilePoint{
			x: length - round*(1-gomath.Cos(a)),
			r: radius - round + round*gomath.Sin(a),
		})
	}
	return append(out, profilePoint{length, 0})
}

// generateRailButton meshes a flanged spool whose axis points away from
// the parent's surface.
func generateRailButton(doc *wavefront.Document, req Request) error {
	c := req.Component
	b := newMeshBuilder(doc, req, req.Group)
	if c.Button == nil {
		return nil
	}
	outline := spoolOutline(c.Button)
	if outline == nil {
		return nil
	}

	// The spool is built along x and turned so x points radially; its front
	// edge sits at the component position.
	outerR := c.Button.OuterDiameter / 2
	local := math.Translate(float32(outerR), float32(c.MountRadius()), 0).
		Mul(math.RotateZ(gomath.Pi / 2))

	for _, inst := range c.InstanceTransforms() {
		b.place(inst.Mul(local))
		if err := b.revolve(outline, false, req.LOD.Sides()); err != nil {
			return err
		}
	}
	return nil
}

func spoolOutline(g *rocket.ButtonGeometry) []profilePoint {
	outer, inner := g.OuterDiameter/2, g.InnerDiameter/2
	if outer <= 0 || g.TotalHeight <= 0 {
		return nil
	}
	if inner <= 0 || inner > outer {
		inner = outer
	}
	base := gomath.Min(g.BaseHeight, g.TotalHeight)
	flange := gomath.Min(g.FlangeHeight, g.TotalHeight-base)
	waistEnd := g.TotalHeight - flange

	return []profilePoint{
		{0, 0},
		{0, outer},
		{base, outer},
		{base, inner},
		{waistEnd, inner},
		{waistEnd, outer},
		{g.TotalHeight, outer},
		{g.TotalHeight, 0},
	}
}

// generateMotor meshes the motor loaded into a mount as a closed cylinder
// with a nozzle, aligned with the aft end of the mount plus its overhang.
func generateMotor(doc *wavefront.Document, req Request, motor rocket.Motor) error {
	c := req.Component
	b := newMeshBuilder(doc, req, req.Group)
	if motor.Length <= 0 || motor.Diameter <= 0 {
		return nil
	}

	r := motor.Diameter / 2
	aft := c.Length + c.MotorOverhang
	fore := aft - motor.Length
	nozzle := motor.Length * 0.1
	outline := []profilePoint{
		{fore, 0},
		{fore, r},
		{aft - nozzle, r},
		{aft - nozzle, r * 0.5},
		{aft, r * 0.7},
		{aft, 0},
	}

	for _, inst := range c.InstanceTransforms() {
		b.place(inst)
		if err := b.revolve(outline, false, req.LOD.Sides()); err != nil {
			return err
		}
	}
	return nil
}
