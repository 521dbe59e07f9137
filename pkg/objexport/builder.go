package objexport

import (
	gomath "math"

	"github.com/Faultbox/rocketmesh/pkg/math"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// meshBuilder appends the faces of one group. Geometry is given in the
// component-local frame and passed through the current placement and then
// the export transformer.
type meshBuilder struct {
	doc   *wavefront.Document
	group *wavefront.Group
	tf    Transformer
	m     math.Mat4
	flip  bool
}

func newMeshBuilder(doc *wavefront.Document, req Request, group string) *meshBuilder {
	g := doc.Group(group)
	if req.Material != "" {
		g.Material = req.Material
	}
	b := &meshBuilder{doc: doc, group: g, tf: req.Transformer}
	b.place(math.Identity())
	return b
}

// place sets the local-to-rocket matrix for the following geometry.
func (b *meshBuilder) place(m math.Mat4) {
	b.m = m
	b.flip = b.tf.MirrorsWinding() != (m.Determinant3() < 0)
}

func (b *meshBuilder) vertex(p math.Vec3) int {
	return b.doc.AddVertex(b.tf.Point(b.m.TransformVec3(p)))
}

func (b *meshBuilder) normal(n math.Vec3) int {
	return b.doc.AddNormal(b.tf.Normal(b.m.TransformDirection(n)).Normalize())
}

func (b *meshBuilder) texCoord(u, v float64) int {
	return b.doc.AddTexCoord(math.Vec2{X: float32(u), Y: float32(v)})
}

// face adds a polygon given counter-clockwise as seen from outside in the
// local frame.
func (b *meshBuilder) face(corners ...wavefront.FaceVertex) error {
	if b.flip {
		rev := make([]wavefront.FaceVertex, len(corners))
		for i, c := range corners {
			rev[len(corners)-1-i] = c
		}
		corners = rev
	}
	return b.doc.AddFace(b.group, corners...)
}

// profilePoint is a point of a revolved outline: x along the axis, r the
// distance from it.
type profilePoint struct {
	x, r float64
}

// cleanProfile drops repeated points and, for closed outlines, a last point
// equal to the first.
func cleanProfile(pts []profilePoint, closed bool) []profilePoint {
	out := make([]profilePoint, 0, len(pts))
	for _, p := range pts {
		if p.r < 0 {
			p.r = 0
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// revolve sweeps the outline around the local x axis. The outside of the
// surface lies to the right of the outline when walking it with x pointing
// aft and r pointing outward. Segments that touch the axis become triangle
// fans, or a single polygon when they lie in a plane across the axis.
func (b *meshBuilder) revolve(outline []profilePoint, closed bool, sides int) error {
	pts := cleanProfile(outline, closed)
	if len(pts) < 2 {
		return nil
	}

	cos := make([]float64, sides+1)
	sin := make([]float64, sides+1)
	for j := 0; j <= sides; j++ {
		a := 2 * gomath.Pi * float64(j) / float64(sides)
		cos[j], sin[j] = gomath.Cos(a), gomath.Sin(a)
	}
	// Snap the quarter turns so axis-aligned extremes are exact.
	for j := 0; j <= sides; j += sides / 4 {
		cos[j], sin[j] = gomath.Round(cos[j]), gomath.Round(sin[j])
	}

	rings := make([][]int, len(pts))
	ring := func(i int) []int {
		if rings[i] != nil {
			return rings[i]
		}
		p := pts[i]
		if p.r <= 0 {
			rings[i] = []int{b.vertex(math.Vec3{X: float32(p.x)})}
			return rings[i]
		}
		idx := make([]int, sides)
		for j := 0; j < sides; j++ {
			idx[j] = b.vertex(math.Vec3{
				X: float32(p.x),
				Y: float32(p.r * cos[j]),
				Z: float32(p.r * sin[j]),
			})
		}
		rings[i] = idx
		return idx
	}
	uvs := make([][]int, len(pts))
	uv := func(i int) []int {
		if uvs[i] == nil {
			row := make([]int, sides+1)
			v := float64(i) / float64(len(pts)-1)
			for j := range row {
				row[j] = b.texCoord(float64(j)/float64(sides), v)
			}
			uvs[i] = row
		}
		return uvs[i]
	}

	segments := len(pts) - 1
	if closed {
		segments = len(pts)
	}
	for s := 0; s < segments; s++ {
		i, k := s, (s+1)%len(pts)
		p, q := pts[i], pts[k]
		dx, dr := q.x-p.x, q.r-p.r

		switch {
		case p.r <= 0 && q.r <= 0:
			continue

		case dx == 0 && (p.r <= 0 || q.r <= 0):
			// Flat disc across the axis.
			rim := ring(i)
			if p.r <= 0 {
				rim = ring(k)
			}
			nx := float32(1)
			if dr > 0 {
				nx = -1
			}
			n := b.normal(math.Vec3{X: nx})
			corners := make([]wavefront.FaceVertex, sides)
			for j := 0; j < sides; j++ {
				jj := j
				if nx < 0 {
					jj = sides - 1 - j
				}
				corners[j] = wavefront.FaceVertex{V: rim[jj], VT: wavefront.NoIndex, VN: n}
			}
			if err := b.face(corners...); err != nil {
				return err
			}
			continue
		}

		normals := make([]int, sides)
		for j := 0; j < sides; j++ {
			normals[j] = b.normal(math.Vec3{
				X: float32(-dr),
				Y: float32(dx * cos[j]),
				Z: float32(dx * sin[j]),
			})
		}

		for j := 0; j < sides; j++ {
			j1 := (j + 1) % sides
			var err error
			switch {
			case p.r <= 0:
				tip := wavefront.FaceVertex{V: ring(i)[0], VT: wavefront.NoIndex, VN: normals[j]}
				err = b.face(
					tip,
					wavefront.FaceVertex{V: ring(k)[j1], VT: wavefront.NoIndex, VN: normals[j1]},
					wavefront.FaceVertex{V: ring(k)[j], VT: wavefront.NoIndex, VN: normals[j]},
				)
			case q.r <= 0:
				tip := wavefront.FaceVertex{V: ring(k)[0], VT: wavefront.NoIndex, VN: normals[j]}
				err = b.face(
					wavefront.FaceVertex{V: ring(i)[j], VT: wavefront.NoIndex, VN: normals[j]},
					wavefront.FaceVertex{V: ring(i)[j1], VT: wavefront.NoIndex, VN: normals[j1]},
					tip,
				)
			default:
				err = b.face(
					wavefront.FaceVertex{V: ring(i)[j], VT: uv(i)[j], VN: normals[j]},
					wavefront.FaceVertex{V: ring(i)[j1], VT: uv(i)[j+1], VN: normals[j1]},
					wavefront.FaceVertex{V: ring(k)[j1], VT: uv(k)[j+1], VN: normals[j1]},
					wavefront.FaceVertex{V: ring(k)[j], VT: uv(k)[j], VN: normals[j]},
				)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// tubeOutline returns the outline of a tube from x0 to x1. A non-positive
// inner radius gives a solid cylinder.
func tubeOutline(x0, x1, outer, inner float64) (outline []profilePoint, closed bool) {
	if inner <= 0 {
		return []profilePoint{{x0, 0}, {x0, outer}, {x1, outer}, {x1, 0}}, false
	}
	return []profilePoint{{x0, inner}, {x0, outer}, {x1, outer}, {x1, inner}}, true
}

// extrude adds a flat polygon in the local x/y plane with the given
// thickness along z, centred on z = 0. The polygon must be simple.
func (b *meshBuilder) extrude(poly []math.Vec2, thickness float64) error {
	if len(poly) < 3 || gomath.Abs(float64(math.PolygonArea(poly))) < 1e-12 {
		return nil
	}
	if math.PolygonArea(poly) < 0 {
		rev := make([]math.Vec2, len(poly))
		for i, p := range poly {
			rev[len(poly)-1-i] = p
		}
		poly = rev
	}

	// Without thickness the fin is one sheet: both caps share vertices.
	h := float32(gomath.Max(thickness, 0) / 2)
	top := make([]int, len(poly))
	bottom := top
	if thickness > 0 {
		bottom = make([]int, len(poly))
	}
	for i, p := range poly {
		top[i] = b.vertex(math.Vec3{X: p.X, Y: p.Y, Z: h})
		if thickness > 0 {
			bottom[i] = b.vertex(math.Vec3{X: p.X, Y: p.Y, Z: -h})
		}
	}
	up := b.normal(math.Vec3{Z: 1})
	down := b.normal(math.Vec3{Z: -1})

	for _, t := range earClip(poly) {
		err := b.face(
			wavefront.FaceVertex{V: top[t[0]], VT: wavefront.NoIndex, VN: up},
			wavefront.FaceVertex{V: top[t[1]], VT: wavefront.NoIndex, VN: up},
			wavefront.FaceVertex{V: top[t[2]], VT: wavefront.NoIndex, VN: up},
		)
		if err != nil {
			return err
		}
		err = b.face(
			wavefront.FaceVertex{V: bottom[t[2]], VT: wavefront.NoIndex, VN: down},
			wavefront.FaceVertex{V: bottom[t[1]], VT: wavefront.NoIndex, VN: down},
			wavefront.FaceVertex{V: bottom[t[0]], VT: wavefront.NoIndex, VN: down},
		)
		if err != nil {
			return err
		}
	}

	if thickness <= 0 {
		return nil
	}
	for i := range poly {
		k := (i + 1) % len(poly)
		edge := poly[k].Sub(poly[i])
		if edge.Length() == 0 {
			continue
		}
		n := b.normal(math.Vec3{X: edge.Y, Y: -edge.X})
		err := b.face(
			wavefront.FaceVertex{V: top[i], VT: wavefront.NoIndex, VN: n},
			wavefront.FaceVertex{V: bottom[i], VT: wavefront.NoIndex, VN: n},
			wavefront.FaceVertex{V: bottom[k], VT: wavefront.NoIndex, VN: n},
			wavefront.FaceVertex{V: top[k], VT: wavefront.NoIndex, VN: n},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// earClip triangulates a simple counter-clockwise polygon and returns
// counter-clockwise index triples.
func earClip(poly []math.Vec2) [][3]int {
	idx := make([]int, len(poly))
	for i := range idx {
		idx[i] = i
	}

	var tris [][3]int
	for len(idx) > 3 {
		ear := -1
		for i := range idx {
			prev, cur, next := idx[(i+len(idx)-1)%len(idx)], idx[i], idx[(i+1)%len(idx)]
			a, c, e := poly[prev], poly[cur], poly[next]
			if triangleArea2(a, c, e) <= 0 {
				continue
			}
			if containsAny(poly, idx, a, c, e) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			ear = i
			break
		}
		if ear < 0 {
			break
		}
		idx = append(idx[:ear], idx[ear+1:]...)
	}

	// What is left is a triangle, or a run the loop could not clip. Only
	// its counter-clockwise triangles are kept.
	for k := 1; k+1 < len(idx); k++ {
		t := [3]int{idx[0], idx[k], idx[k+1]}
		if triangleArea2(poly[t[0]], poly[t[1]], poly[t[2]]) > 0 {
			tris = append(tris, t)
		}
	}
	return tris
}

// triangleArea2 returns twice the signed area of abc, positive when
// counter-clockwise.
func triangleArea2(a, b, c math.Vec2) float64 {
	return float64(b.X-a.X)*float64(c.Y-a.Y) - float64(b.Y-a.Y)*float64(c.X-a.X)
}

// containsAny reports whether a remaining polygon vertex lies inside the
// triangle abc or on its boundary. Vertices at the position of a, b or c
// do not count.
func containsAny(poly []math.Vec2, idx []int, a, b, c math.Vec2) bool {
	eps := 1e-6 * triangleArea2(a, b, c)
	for _, i := range idx {
		p := poly[i]
		if p == a || p == b || p == c {
			continue
		}
		if triangleArea2(a, b, p) >= -eps &&
			triangleArea2(b, c, p) >= -eps &&
			triangleArea2(c, a, p) >= -eps {
			return true
		}
	}
	return false
}
