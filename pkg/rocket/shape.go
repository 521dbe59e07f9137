package rocket

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the profile of a transition or nose cone.
type Shape int

const (
	ShapeConical Shape = iota
	ShapeOgive
	ShapeEllipsoid
	ShapePower
	ShapeParabolic
	ShapeHaack
)

var shapeNames = map[Shape]string{
	ShapeConical:   "conical",
	ShapeOgive:     "ogive",
	ShapeEllipsoid: "ellipsoid",
	ShapePower:     "power",
	ShapeParabolic: "parabolic",
	ShapeHaack:     "haack",
}

// String returns the design-file name.
func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape looks a shape up by name; the empty string is conical.
func ParseShape(s string) (Shape, error) {
	if s == "" {
		return ShapeConical, nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for shape, n := range shapeNames {
		if n == s {
			return shape, nil
		}
	}
	return ShapeConical, fmt.Errorf("%w: unknown shape %q", ErrInvalidDesign, s)
}

// DefaultParameter returns the shape parameter used when a design leaves it
// unset.
func (s Shape) DefaultParameter() float64 {
	switch s {
	case ShapeOgive, ShapeParabolic:
		return 1
	case ShapePower:
		return 0.5
	default:
		return 0
	}
}

// Radius returns the radius at axial position x of a transition with the
// given length and end radii. x is clamped to [0, length]. Every shape
// returns exactly foreR at 0 and aftR at length.
func (s Shape) Radius(x, length, foreR, aftR, param float64) float64 {
	if length <= 0 {
		return math.Max(foreR, aftR)
	}
	x = math.Min(math.Max(x, 0), length)
	if x == 0 {
		return foreR
	}
	if x == length {
		return aftR
	}

	// Shapes are defined as a nose growing from 0 to r; transitions that
	// shrink are the mirror image.
	r := math.Abs(aftR - foreR)
	t := x / length
	if aftR < foreR {
		t = 1 - t
	}
	base := math.Min(foreR, aftR)
	return base + r*s.profile(t, length, r, param)
}

// profile returns the normalized radius (0..1) at normalized position t.
func (s Shape) profile(t, length, r, param float64) float64 {
	switch s {
	case ShapeOgive:
		p := clamp01(param)
		return (1-p)*t + p*tangentOgive(t, length, r)
	case ShapeEllipsoid:
		return ellipse(t)
	case ShapePower:
		if param <= 0 {
			return 1
		}
		return math.Pow(t, param)
	case ShapeParabolic:
		k := math.Min(math.Max(param, 0), 1)
		return (2*t - k*t*t) / (2 - k)
	case ShapeHaack:
		theta := math.Acos(1 - 2*t)
		v := (theta - math.Sin(2*theta)/2 + param*math.Pow(math.Sin(theta), 3)) / math.Pi
		return math.Sqrt(math.Max(v, 0))
	default:
		return t
	}
}

// tangentOgive is the circular arc through the tip that meets the body
// tangentially. Stubby noses where the arc is undefined use an ellipse.
func tangentOgive(t, length, r float64) float64 {
	if r <= 0 {
		return t
	}
	if length <= r {
		return ellipse(t)
	}
	rho := (r*r + length*length) / (2 * r)
	d := length - t*length
	y := math.Sqrt(math.Max(rho*rho-d*d, 0)) + r - rho
	return clamp01(y / r)
}

func ellipse(t float64) float64 {
	return math.Sqrt(math.Max(0, 1-(1-t)*(1-t)))
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
