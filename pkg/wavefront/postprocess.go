package wavefront

import "github.com/Faultbox/rocketmesh/pkg/math"

// Triangulate splits every face with more than three corners into a fan of
// triangles anchored at its first corner. Winding is preserved. Faces are
// assumed convex.
func Triangulate(d *Document) {
	for _, g := range d.Groups {
		faces := make([]Face, 0, len(g.Faces))
		for _, f := range g.Faces {
			if len(f.Vertices) <= 3 {
				faces = append(faces, f)
				continue
			}
			for i := 1; i < len(f.Vertices)-1; i++ {
				faces = append(faces, Face{Vertices: []FaceVertex{
					f.Vertices[0], f.Vertices[i], f.Vertices[i+1],
				}})
			}
		}
		g.Faces = faces
	}
}

// RecalculateBounds rescans every vertex and refreshes the cached bounds.
func RecalculateBounds(d *Document) Bounds {
	if len(d.Vertices) == 0 {
		d.bounds = Bounds{}
		d.hasBounds = false
		return d.bounds
	}
	b := Bounds{Min: d.Vertices[0], Max: d.Vertices[0]}
	for _, v := range d.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	d.bounds = b
	d.hasBounds = true
	return b
}

// RemoveOffset translates all vertices so that the minimum corner of the
// bounding box sits at the origin. Bounds are recomputed from the vertices
// first, so stale cached bounds never leak into the result.
func RemoveOffset(d *Document) {
	b := RecalculateBounds(d)
	if b.Min == (math.Vec3{}) {
		return
	}
	for i, v := range d.Vertices {
		d.Vertices[i] = v.Sub(b.Min)
	}
	d.bounds = Bounds{Min: math.Vec3{}, Max: b.Max.Sub(b.Min)}
}

// Scale multiplies every vertex position by s. Normals are left alone
// since they stay unit length under uniform scaling. A factor of exactly 1
// leaves the document untouched.
func Scale(d *Document, s float32) {
	if s == 1 {
		return
	}
	for i, v := range d.Vertices {
		d.Vertices[i] = v.Scale(s)
	}
	if d.hasBounds {
		d.bounds = Bounds{Min: d.bounds.Min.Scale(s), Max: d.bounds.Max.Scale(s)}
		if s < 0 {
			d.bounds.Min, d.bounds.Max = d.bounds.Max, d.bounds.Min
		}
	}
}

// FaceArea returns the area of a planar face using Newell's method.
func FaceArea(d *Document, f Face) float32 {
	var n math.Vec3
	for i := range f.Vertices {
		a := d.Vertices[f.Vertices[i].V]
		b := d.Vertices[f.Vertices[(i+1)%len(f.Vertices)].V]
		n = n.Add(a.Cross(b))
	}
	return n.Length() / 2
}

// SurfaceArea sums FaceArea over every face in the document.
func SurfaceArea(d *Document) float32 {
	var total float32
	for _, g := range d.Groups {
		for _, f := range g.Faces {
			total += FaceArea(d, f)
		}
	}
	return total
}
