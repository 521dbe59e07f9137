package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Color is a linear RGB triple in the 0..1 range.
type Color [3]float32

// Material is one newmtl record of an MTL library.
type Material struct {
	Name       string
	Ambient    Color   // Ka
	Diffuse    Color   // Kd
	Specular   Color   // Ks
	Shininess  float32 // Ns, 0..1000
	Opacity    float32 // d, 1 is opaque
	Illum      int     // illumination model
	DiffuseMap string  // map_Kd, optional
}

// Encode writes d as OBJ text. Indices are written 1-based.
func Encode(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)

	if len(d.MaterialLibs) > 0 {
		fmt.Fprintf(bw, "mtllib %s\n", strings.Join(d.MaterialLibs, " "))
	}

	for _, v := range d.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	for _, vt := range d.TexCoords {
		fmt.Fprintf(bw, "vt %s %s\n", ftoa(vt.X), ftoa(vt.Y))
	}
	for _, vn := range d.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(vn.X), ftoa(vn.Y), ftoa(vn.Z))
	}

	for _, g := range d.Groups {
		fmt.Fprintf(bw, "g %s\n", g.Name)
		if g.Material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", g.Material)
		}
		for _, f := range g.Faces {
			bw.WriteString("f")
			for _, c := range f.Vertices {
				bw.WriteByte(' ')
				bw.WriteString(corner(c))
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

func corner(c FaceVertex) string {
	v := strconv.Itoa(c.V + 1)
	switch {
	case c.VT == NoIndex && c.VN == NoIndex:
		return v
	case c.VN == NoIndex:
		return v + "/" + strconv.Itoa(c.VT+1)
	case c.VT == NoIndex:
		return v + "//" + strconv.Itoa(c.VN+1)
	default:
		return v + "/" + strconv.Itoa(c.VT+1) + "/" + strconv.Itoa(c.VN+1)
	}
}

// EncodeMaterials writes mats as MTL text.
func EncodeMaterials(w io.Writer, mats []Material) error {
	bw := bufio.NewWriter(w)
	for i, m := range mats {
		if i > 0 {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "newmtl %s\n", m.Name)
		fmt.Fprintf(bw, "Ka %s\n", colorString(m.Ambient))
		fmt.Fprintf(bw, "Kd %s\n", colorString(m.Diffuse))
		fmt.Fprintf(bw, "Ks %s\n", colorString(m.Specular))
		fmt.Fprintf(bw, "Ns %s\n", ftoa(m.Shininess))
		fmt.Fprintf(bw, "d %s\n", ftoa(m.Opacity))
		fmt.Fprintf(bw, "illum %d\n", m.Illum)
		if m.DiffuseMap != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", m.DiffuseMap)
		}
	}
	return bw.Flush()
}

func colorString(c Color) string {
	return ftoa(c[0]) + " " + ftoa(c[1]) + " " + ftoa(c[2])
}

// ftoa formats f with the shortest representation that parses back to the
// same float32.
func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
