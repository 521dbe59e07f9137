package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/rocketmesh/pkg/math"
)

// ErrMalformed is returned for OBJ or MTL lines that cannot be parsed.
var ErrMalformed = errors.New("malformed wavefront data")

// defaultGroup receives faces that appear before any g or o statement.
const defaultGroup = "default"

// Decode parses OBJ text. Statements it does not model (s, l, p, ...) are
// skipped.
func Decode(r io.Reader) (*Document, error) {
	d := NewDocument()
	var current *Group

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			d.AddVertex(v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			d.AddNormal(n)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			d.AddTexCoord(uv)
		case "g", "o":
			name := defaultGroup
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			current = d.Group(name)
		case "usemtl":
			if current == nil {
				current = d.Group(defaultGroup)
			}
			if len(fields) > 1 {
				current.Material = strings.Join(fields[1:], " ")
			}
		case "mtllib":
			for _, lib := range fields[1:] {
				d.addMaterialLib(lib)
			}
		case "f":
			if current == nil {
				current = d.Group(defaultGroup)
			}
			corners := make([]FaceVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				c, err := parseCorner(tok, d)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, c)
			}
			if err := d.AddFace(current, corners...); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseCorner(tok string, d *Document) (FaceVertex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return FaceVertex{}, fmt.Errorf("%w: face corner %q", ErrMalformed, tok)
	}

	c := FaceVertex{VT: NoIndex, VN: NoIndex}
	var err error
	if c.V, err = parseIndex(parts[0], len(d.Vertices)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.VT, err = parseIndex(parts[1], len(d.TexCoords)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.VN, err = parseIndex(parts[2], len(d.Normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

// parseIndex converts a 1-based or negative (relative) OBJ index to a
// 0-based one.
func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i == 0 {
		return 0, fmt.Errorf("%w: index %q", ErrMalformed, s)
	}
	if i < 0 {
		return n + i, nil
	}
	return i - 1, nil
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: need %d values, got %d", ErrMalformed, want, len(fields))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	if len(fields) == 1 {
		fields = append(fields, "0")
	}
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}

// DecodeMaterials parses MTL text.
func DecodeMaterials(r io.Reader) ([]Material, error) {
	var mats []Material
	var cur *Material

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: newmtl without name", lineNo, ErrMalformed)
			}
			mats = append(mats, Material{Name: strings.Join(fields[1:], " "), Opacity: 1})
			cur = &mats[len(mats)-1]
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: %w: %s before newmtl", lineNo, ErrMalformed, fields[0])
		}

		var err error
		switch fields[0] {
		case "Ka":
			cur.Ambient, err = parseColor(fields[1:])
		case "Kd":
			cur.Diffuse, err = parseColor(fields[1:])
		case "Ks":
			cur.Specular, err = parseColor(fields[1:])
		case "Ns":
			var f []float32
			if f, err = parseFloats(fields[1:], 1); err == nil {
				cur.Shininess = f[0]
			}
		case "d":
			var f []float32
			if f, err = parseFloats(fields[1:], 1); err == nil {
				cur.Opacity = f[0]
			}
		case "illum":
			if len(fields) < 2 {
				err = fmt.Errorf("%w: illum without value", ErrMalformed)
			} else if cur.Illum, err = strconv.Atoi(fields[1]); err != nil {
				err = fmt.Errorf("%w: illum %q", ErrMalformed, fields[1])
			}
		case "map_Kd":
			if len(fields) > 1 {
				cur.DiffuseMap = fields[len(fields)-1]
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mats, nil
}

func parseColor(fields []string) (Color, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return Color{}, err
	}
	return Color{f[0], f[1], f[2]}, nil
}
