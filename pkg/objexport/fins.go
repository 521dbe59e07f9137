package objexport

import (
	gomath "math"

	"github.com/Faultbox/rocketmesh/pkg/math"
	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// finOutline returns the planform of a fin with x along the root chord
// from its leading edge and y outward from the root.
func finOutline(kind rocket.Kind, fin *rocket.FinGeometry, steps int) []math.Vec2 {
	if len(fin.Points) >= 3 {
		pts := make([]math.Vec2, len(fin.Points))
		for i, p := range fin.Points {
			pts[i] = math.Vec2{X: float32(p[0]), Y: float32(p[1])}
		}
		return pts
	}

	if kind == rocket.KindEllipticalFinSet {
		// Half ellipse over the root chord, leading edge first.
		pts := make([]math.Vec2, 0, steps+1)
		for k := 0; k <= steps; k++ {
			a := gomath.Pi * float64(k) / float64(steps)
			pts = append(pts, math.Vec2{
				X: float32(fin.RootChord / 2 * (1 - gomath.Cos(a))),
				Y: float32(fin.Span * gomath.Sin(a)),
			})
		}
		return pts
	}

	return []math.Vec2{
		{X: 0, Y: 0},
		{X: float32(fin.Sweep), Y: float32(fin.Span)},
		{X: float32(fin.Sweep + fin.TipChord), Y: float32(fin.Span)},
		{X: float32(fin.RootChord), Y: 0},
	}
}

// generateFinSet meshes every fin of the set as an extruded planform
// standing on the parent's surface, rotated by the cant angle around its
// spanwise axis through the middle of the root chord.
func generateFinSet(doc *wavefront.Document, req Request) error {
	c := req.Component
	b := newMeshBuilder(doc, req, req.Group)
	if c.Fin == nil {
		return nil
	}

	outline := finOutline(c.Kind, c.Fin, req.LOD.AxialSteps())
	mid := float32(c.Fin.EffectiveRootChord() / 2)
	local := math.Translate(mid, float32(c.MountRadius()), 0).
		Mul(math.RotateY(float32(c.Fin.Cant))).
		Mul(math.Translate(-mid, 0, 0))

	for _, inst := range c.InstanceTransforms() {
		b.place(inst.Mul(local))
		if err := b.extrude(outline, c.Fin.Thickness); err != nil {
			return err
		}
	}
	return nil
}
