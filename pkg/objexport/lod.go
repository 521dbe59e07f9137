package objexport

import (
	"fmt"
	"strings"
)

// LevelOfDetail selects how finely curved surfaces are tessellated.
type LevelOfDetail int

const (
	LODLow LevelOfDetail = iota
	LODNormal
	LODHigh
)

// Sides returns the number of segments around a revolved surface. Always a
// multiple of four so the extreme points on both radial axes are vertices.
func (l LevelOfDetail) Sides() int {
	switch l {
	case LODLow:
		return 16
	case LODHigh:
		return 64
	default:
		return 32
	}
}

// AxialSteps returns the number of segments along a curved profile.
func (l LevelOfDetail) AxialSteps() int {
	switch l {
	case LODLow:
		return 8
	case LODHigh:
		return 32
	default:
		return 16
	}
}

func (l LevelOfDetail) String() string {
	switch l {
	case LODLow:
		return "low"
	case LODNormal:
		return "normal"
	case LODHigh:
		return "high"
	}
	return fmt.Sprintf("LevelOfDetail(%d)", int(l))
}

func (l LevelOfDetail) valid() bool {
	return l >= LODLow && l <= LODHigh
}

// ParseLevelOfDetail parses "low", "normal" or "high".
func ParseLevelOfDetail(s string) (LevelOfDetail, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LODLow, nil
	case "", "normal":
		return LODNormal, nil
	case "high":
		return LODHigh, nil
	}
	return LODNormal, fmt.Errorf("%w: level of detail %q", ErrInvalidOptions, s)
}
