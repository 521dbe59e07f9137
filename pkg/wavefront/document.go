// Package wavefront holds an in-memory Wavefront OBJ document together with
// the post-processing steps and the OBJ/MTL encoders that operate on it.
package wavefront

import (
	"errors"
	"fmt"

	"github.com/Faultbox/rocketmesh/pkg/math"
)

// Document errors.
var (
	ErrIndexOutOfRange = errors.New("face index out of range")
	ErrDegenerateFace  = errors.New("face needs at least three vertices")
)

// NoIndex marks an absent texture coordinate or normal in a FaceVertex.
const NoIndex = -1

// FaceVertex references one corner of a face. Indices are 0-based into the
// owning document's Vertices, TexCoords and Normals slices.
type FaceVertex struct {
	V  int
	VT int
	VN int
}

// Corner returns a FaceVertex that only references a position.
func Corner(v int) FaceVertex {
	return FaceVertex{V: v, VT: NoIndex, VN: NoIndex}
}

// Face is a polygon. Winding is counter-clockwise when seen from the side
// its normal points to.
type Face struct {
	Vertices []FaceVertex
}

// IsTriangle reports whether the face has exactly three corners.
func (f Face) IsTriangle() bool {
	return len(f.Vertices) == 3
}

// Group is a named run of faces, one per exported component.
type Group struct {
	Name     string
	Material string
	Faces    []Face
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Document is an OBJ file under construction. Positions, texture
// coordinates and normals live in separate index spaces like in the file
// format itself.
type Document struct {
	Vertices     []math.Vec3
	TexCoords    []math.Vec2
	Normals      []math.Vec3
	Groups       []*Group
	MaterialLibs []string

	bounds    Bounds
	hasBounds bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// AddVertex appends a position and returns its index.
func (d *Document) AddVertex(v math.Vec3) int {
	d.Vertices = append(d.Vertices, v)
	if !d.hasBounds {
		d.bounds = Bounds{Min: v, Max: v}
		d.hasBounds = true
	} else {
		d.bounds.Min = d.bounds.Min.Min(v)
		d.bounds.Max = d.bounds.Max.Max(v)
	}
	return len(d.Vertices) - 1
}

// AddTexCoord appends a texture coordinate and returns its index.
func (d *Document) AddTexCoord(uv math.Vec2) int {
	d.TexCoords = append(d.TexCoords, uv)
	return len(d.TexCoords) - 1
}

// AddNormal appends a normal and returns its index.
func (d *Document) AddNormal(n math.Vec3) int {
	d.Normals = append(d.Normals, n)
	return len(d.Normals) - 1
}

// Group returns the group with the given name, creating it at the end of the
// group list if it does not exist yet.
func (d *Document) Group(name string) *Group {
	for _, g := range d.Groups {
		if g.Name == name {
			return g
		}
	}
	g := &Group{Name: name}
	d.Groups = append(d.Groups, g)
	return g
}

// AddFace appends a face to g after checking that every corner references
// data already present in d.
func (d *Document) AddFace(g *Group, corners ...FaceVertex) error {
	if len(corners) < 3 {
		return ErrDegenerateFace
	}
	for _, c := range corners {
		if err := d.checkCorner(c); err != nil {
			return err
		}
	}
	g.Faces = append(g.Faces, Face{Vertices: append([]FaceVertex(nil), corners...)})
	return nil
}

func (d *Document) checkCorner(c FaceVertex) error {
	if c.V < 0 || c.V >= len(d.Vertices) {
		return fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, c.V, len(d.Vertices))
	}
	if c.VT != NoIndex && (c.VT < 0 || c.VT >= len(d.TexCoords)) {
		return fmt.Errorf("%w: texcoord %d of %d", ErrIndexOutOfRange, c.VT, len(d.TexCoords))
	}
	if c.VN != NoIndex && (c.VN < 0 || c.VN >= len(d.Normals)) {
		return fmt.Errorf("%w: normal %d of %d", ErrIndexOutOfRange, c.VN, len(d.Normals))
	}
	return nil
}

// Append moves every vertex, texture coordinate, normal and group of src
// into d, rebasing face indices. Groups whose name already exists in d are
// extended. src must not be used afterwards.
func (d *Document) Append(src *Document) {
	vOff, vtOff, vnOff := len(d.Vertices), len(d.TexCoords), len(d.Normals)

	for _, v := range src.Vertices {
		d.AddVertex(v)
	}
	d.TexCoords = append(d.TexCoords, src.TexCoords...)
	d.Normals = append(d.Normals, src.Normals...)

	for _, sg := range src.Groups {
		g := d.Group(sg.Name)
		if g.Material == "" {
			g.Material = sg.Material
		}
		for _, f := range sg.Faces {
			corners := make([]FaceVertex, len(f.Vertices))
			for i, c := range f.Vertices {
				corners[i] = FaceVertex{V: c.V + vOff, VT: rebase(c.VT, vtOff), VN: rebase(c.VN, vnOff)}
			}
			g.Faces = append(g.Faces, Face{Vertices: corners})
		}
	}

	for _, lib := range src.MaterialLibs {
		d.addMaterialLib(lib)
	}
}

func rebase(idx, off int) int {
	if idx == NoIndex {
		return NoIndex
	}
	return idx + off
}

// SetMaterialLibs replaces the mtllib references.
func (d *Document) SetMaterialLibs(libs ...string) {
	d.MaterialLibs = append([]string(nil), libs...)
}

func (d *Document) addMaterialLib(lib string) {
	for _, l := range d.MaterialLibs {
		if l == lib {
			return
		}
	}
	d.MaterialLibs = append(d.MaterialLibs, lib)
}

// Bounds returns the cached bounding box. It tracks AddVertex calls but not
// direct edits of Vertices; call RecalculateBounds after those.
func (d *Document) Bounds() Bounds {
	return d.bounds
}

// FaceCount returns the number of faces over all groups.
func (d *Document) FaceCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Faces)
	}
	return n
}

// GroupNames returns group names in document order.
func (d *Document) GroupNames() []string {
	names := make([]string, len(d.Groups))
	for i, g := range d.Groups {
		names[i] = g.Name
	}
	return names
}
