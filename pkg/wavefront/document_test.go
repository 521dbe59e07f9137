package wavefront

import (
	"errors"
	"testing"

	"github.com/Faultbox/rocketmesh/pkg/math"
)

// quadDoc returns a document with one unit square in the XY plane.
func quadDoc(group string) *Document {
	d := NewDocument()
	d.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0})
	d.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	d.AddVertex(math.Vec3{X: 1, Y: 1, Z: 0})
	d.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	n := d.AddNormal(math.Vec3{Z: 1})
	g := d.Group(group)
	corners := make([]FaceVertex, 4)
	for i := range corners {
		corners[i] = FaceVertex{V: i, VT: NoIndex, VN: n}
	}
	if err := d.AddFace(g, corners...); err != nil {
		panic(err)
	}
	return d
}

func TestAddFace_IndexValidation(t *testing.T) {
	tests := []struct {
		name    string
		corners []FaceVertex
		wantErr error
	}{
		{"valid", []FaceVertex{Corner(0), Corner(1), Corner(2)}, nil},
		{"vertex past end", []FaceVertex{Corner(0), Corner(1), Corner(3)}, ErrIndexOutOfRange},
		{"negative vertex", []FaceVertex{Corner(-1), Corner(1), Corner(2)}, ErrIndexOutOfRange},
		{"missing normal", []FaceVertex{{V: 0, VT: NoIndex, VN: 0}, Corner(1), Corner(2)}, ErrIndexOutOfRange},
		{"missing texcoord", []FaceVertex{{V: 0, VT: 0, VN: NoIndex}, Corner(1), Corner(2)}, ErrIndexOutOfRange},
		{"two corners", []FaceVertex{Corner(0), Corner(1)}, ErrDegenerateFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			d.AddVertex(math.Vec3{})
			d.AddVertex(math.Vec3{X: 1})
			d.AddVertex(math.Vec3{Y: 1})
			err := d.AddFace(d.Group("g"), tt.corners...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddFace() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && d.FaceCount() != 0 {
				t.Errorf("rejected face was stored")
			}
		})
	}
}

func TestGroupReuse(t *testing.T) {
	d := NewDocument()
	a := d.Group("1_Body")
	b := d.Group("1_Body")
	if a != b {
		t.Error("expected Group to return the existing group")
	}
	d.Group("2_Fins")
	if got := d.GroupNames(); len(got) != 2 || got[0] != "1_Body" || got[1] != "2_Fins" {
		t.Errorf("unexpected group order %v", got)
	}
}

func TestAppend_RebasesIndices(t *testing.T) {
	dst := quadDoc("1_A")
	src := quadDoc("2_B")
	src.Group("2_B").Material = "mat_2_B"
	src.SetMaterialLibs("a.mtl")

	dst.Append(src)

	if len(dst.Vertices) != 8 {
		t.Fatalf("expected 8 vertices, got %d", len(dst.Vertices))
	}
	if len(dst.Normals) != 2 {
		t.Fatalf("expected 2 normals, got %d", len(dst.Normals))
	}
	g := dst.Groups[1]
	if g.Name != "2_B" || g.Material != "mat_2_B" {
		t.Errorf("unexpected appended group %q / %q", g.Name, g.Material)
	}
	first := g.Faces[0].Vertices[0]
	if first.V != 4 || first.VN != 1 || first.VT != NoIndex {
		t.Errorf("expected rebased corner {4 -1 1}, got %+v", first)
	}
	if len(dst.MaterialLibs) != 1 || dst.MaterialLibs[0] != "a.mtl" {
		t.Errorf("unexpected material libs %v", dst.MaterialLibs)
	}
}

func TestBoundsTracksAddVertex(t *testing.T) {
	d := NewDocument()
	d.AddVertex(math.Vec3{X: 1, Y: -2, Z: 3})
	d.AddVertex(math.Vec3{X: -1, Y: 5, Z: 0})

	b := d.Bounds()
	if b.Min != (math.Vec3{X: -1, Y: -2, Z: 0}) {
		t.Errorf("unexpected min %v", b.Min)
	}
	if b.Max != (math.Vec3{X: 1, Y: 5, Z: 3}) {
		t.Errorf("unexpected max %v", b.Max)
	}
}
