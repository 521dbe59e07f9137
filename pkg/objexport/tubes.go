package objexport

import (
	"github.com/Faultbox/rocketmesh/pkg/math"
	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// generateTube meshes a tube of the given radii along the local x axis,
// offset radially by centre, once per instance of c.
func generateTube(doc *wavefront.Document, req Request, length, outer, inner, centre float64) error {
	b := newMeshBuilder(doc, req, req.Group)
	if length <= 0 || outer <= 0 {
		return nil
	}
	outline, closed := tubeOutline(0, length, outer, inner)
	local := math.Translate(0, float32(centre), 0)
	for _, inst := range req.Component.InstanceTransforms() {
		b.place(inst.Mul(local))
		if err := b.revolve(outline, closed, req.LOD.Sides()); err != nil {
			return err
		}
	}
	return nil
}

func generateBodyTube(doc *wavefront.Document, req Request) error {
	c := req.Component
	return generateTube(doc, req, c.Length, c.EffectiveOuterRadius(), c.InnerRadius(), 0)
}

// generateRing covers centering rings, couplers, bulkheads, engine blocks
// and inner tubes. Bulkheads are always solid.
func generateRing(doc *wavefront.Document, req Request) error {
	c := req.Component
	inner := c.InnerRadius()
	if c.Kind == rocket.KindBulkhead {
		inner = 0
	}
	return generateTube(doc, req, c.Length, c.EffectiveOuterRadius(), inner, 0)
}

// generateLaunchLug places the lug tube on the outer surface of its parent.
func generateLaunchLug(doc *wavefront.Document, req Request) error {
	c := req.Component
	outer := c.EffectiveOuterRadius()
	return generateTube(doc, req, c.Length, outer, c.InnerRadius(), c.MountRadius()+outer)
}

// generateTubeFinSet places one tube per fin against the body surface. Tube
// fins without their own radius match the body radius.
func generateTubeFinSet(doc *wavefront.Document, req Request) error {
	c := req.Component
	outer := c.OuterRadius
	if outer <= 0 {
		outer = c.MountRadius()
	}
	inner := 0.0
	if !c.Filled && c.Thickness > 0 && c.Thickness < outer {
		inner = outer - c.Thickness
	}
	return generateTube(doc, req, c.Length, outer, inner, c.MountRadius()+outer)
}

// generateTransition meshes the shaped body of a transition or nose cone
// plus its shoulders.
func generateTransition(doc *wavefront.Document, req Request) error {
	c := req.Component
	b := newMeshBuilder(doc, req, req.Group)
	if c.Length <= 0 || (c.ForeRadius <= 0 && c.AftRadius <= 0) {
		return nil
	}

	steps := req.LOD.AxialSteps()
	outer := make([]profilePoint, steps+1)
	for k := 0; k <= steps; k++ {
		x := c.Length * float64(k) / float64(steps)
		outer[k] = profilePoint{x, c.RadiusAt(x)}
	}

	var outline []profilePoint
	closed := false
	if c.Filled || c.Thickness <= 0 {
		outline = append(outline, profilePoint{0, 0})
		outline = append(outline, outer...)
		outline = append(outline, profilePoint{c.Length, 0})
	} else {
		closed = true
		outline = append(outline, profilePoint{0, outer[0].r - c.Thickness})
		outline = append(outline, outer...)
		for k := steps; k >= 0; k-- {
			outline = append(outline, profilePoint{outer[k].x, outer[k].r - c.Thickness})
		}
	}

	type shoulder struct {
		x0, x1 float64
		s      rocket.Shoulder
	}
	var shoulders []shoulder
	if s := c.ForeShoulder; s.Length > 0 && s.Radius > 0 {
		shoulders = append(shoulders, shoulder{-s.Length, 0, s})
	}
	if s := c.AftShoulder; s.Length > 0 && s.Radius > 0 {
		shoulders = append(shoulders, shoulder{c.Length, c.Length + s.Length, s})
	}

	for _, inst := range c.InstanceTransforms() {
		b.place(inst)
		if err := b.revolve(outline, closed, req.LOD.Sides()); err != nil {
			return err
		}
		for _, sh := range shoulders {
			inner := 0.0
			if sh.s.Thickness > 0 && sh.s.Thickness < sh.s.Radius {
				inner = sh.s.Radius - sh.s.Thickness
			}
			o, cl := tubeOutline(sh.x0, sh.x1, sh.s.Radius, inner)
			if err := b.revolve(o, cl, req.LOD.Sides()); err != nil {
				return err
			}
		}
	}
	return nil
}
