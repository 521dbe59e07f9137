// Package objexport turns a rocket component tree into Wavefront OBJ
// meshes and MTL material libraries.
package objexport

import (
	"github.com/Faultbox/rocketmesh/pkg/math"
)

// Transformer maps rocket-frame geometry into the frame of the written
// mesh file.
type Transformer interface {
	// Point converts a position.
	Point(p math.Vec3) math.Vec3
	// Normal converts a unit direction.
	Normal(n math.Vec3) math.Vec3
	// MirrorsWinding reports whether the mapping is a reflection, in which
	// case faces must be written in reverse order to keep facing outward.
	MirrorsWinding() bool
}

// CoordTransform is the standard mapping from the rocket frame (x along the
// axis from the nose tip) to the OBJ frame, where the model stands upright
// with its tail at the origin:
//
//	obj.x = y
//	obj.y = Length - x
//	obj.z = -z
type CoordTransform struct {
	Length float32
}

// NewCoordTransform returns the transform for a rocket of the given length.
func NewCoordTransform(length float64) CoordTransform {
	return CoordTransform{Length: float32(length)}
}

func (t CoordTransform) Point(p math.Vec3) math.Vec3 {
	return math.Vec3{X: p.Y, Y: t.Length - p.X, Z: -p.Z}
}

func (t CoordTransform) Normal(n math.Vec3) math.Vec3 {
	return math.Vec3{X: n.Y, Y: -n.X, Z: -n.Z}
}

// MirrorsWinding is always true; the linear part has determinant -1.
func (t CoordTransform) MirrorsWinding() bool {
	return true
}

// InversePoint maps an OBJ-frame position back into the rocket frame.
func (t CoordTransform) InversePoint(p math.Vec3) math.Vec3 {
	return math.Vec3{X: t.Length - p.Y, Y: p.X, Z: -p.Z}
}

// InverseNormal maps an OBJ-frame direction back into the rocket frame.
func (t CoordTransform) InverseNormal(n math.Vec3) math.Vec3 {
	return math.Vec3{X: -n.Y, Y: n.X, Z: -n.Z}
}

// RocketFrame leaves geometry in the rocket frame.
type RocketFrame struct{}

func (RocketFrame) Point(p math.Vec3) math.Vec3  { return p }
func (RocketFrame) Normal(n math.Vec3) math.Vec3 { return n }
func (RocketFrame) MirrorsWinding() bool         { return false }
