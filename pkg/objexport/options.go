package objexport

import (
	"errors"
	"fmt"
	gomath "math"
)

// ErrInvalidOptions is returned by Export for options that cannot be used.
var ErrInvalidOptions = errors.New("invalid export options")

// Options controls a single export.
type Options struct {
	// ExportChildren adds every descendant of the given components.
	ExportChildren bool
	// SeparateFiles writes each exported component to its own OBJ file.
	SeparateFiles bool
	// ExportAppearance writes an MTL library next to every OBJ file.
	ExportAppearance bool
	// Triangulate splits every polygon into triangles.
	Triangulate bool
	// RemoveOffset moves the minimum corner of the bounding box to the
	// origin.
	RemoveOffset bool
	// Scaling multiplies every vertex position.
	Scaling float32
	LOD     LevelOfDetail
	// Transformer defaults to a CoordTransform sized to the rocket.
	Transformer Transformer
	// Workers bounds parallel mesh generation. Values below 2 generate on
	// the calling goroutine.
	Workers int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ExportChildren:   true,
		ExportAppearance: true,
		Scaling:          1,
		LOD:              LODNormal,
		Workers:          1,
	}
}

// Validate checks that the options describe a usable export.
func (o Options) Validate() error {
	s := float64(o.Scaling)
	if !(s > 0) || gomath.IsInf(s, 0) {
		return fmt.Errorf("%w: scaling must be positive, got %v", ErrInvalidOptions, o.Scaling)
	}
	if !o.LOD.valid() {
		return fmt.Errorf("%w: unknown level of detail %d", ErrInvalidOptions, int(o.LOD))
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidOptions, o.Workers)
	}
	return nil
}
