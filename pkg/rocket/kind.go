// Package rocket models the component tree of a rocket design together with
// its flight configurations.
package rocket

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a design names a component type that is
// not modelled.
var ErrUnknownKind = errors.New("unknown component kind")

// Kind tags the variant of a Component.
type Kind int

const (
	KindNone Kind = iota

	// Assemblies
	KindRocket
	KindStage
	KindParallelStage
	KindPod

	// External body components
	KindTransition
	KindNoseCone
	KindBodyTube

	// Fins
	KindFinSet
	KindTrapezoidFinSet
	KindEllipticalFinSet
	KindFreeformFinSet
	KindTubeFinSet

	// External accessories
	KindLaunchLug
	KindRailButton

	// Inner components
	KindRing
	KindInnerTube
	KindTubeCoupler
	KindCenteringRing
	KindBulkhead
	KindEngineBlock

	// Mass objects
	KindMassObject
	KindMassComponent
	KindParachute
	KindStreamer
	KindShockCord
)

type kindInfo struct {
	name      string
	fallback  Kind
	assembly  bool
	body      bool // stacked one after another by default
	radial    bool // instances are spread around the axis
	mountable bool // may hold a motor
}

// kinds declares every variant once, including the kind whose mesh
// generator it falls back to.
var kinds = map[Kind]kindInfo{
	KindRocket:        {name: "rocket", assembly: true},
	KindStage:         {name: "stage", assembly: true, body: true},
	KindParallelStage: {name: "parallelstage", assembly: true, radial: true},
	KindPod:           {name: "pod", assembly: true, radial: true},

	KindTransition: {name: "transition", body: true},
	KindNoseCone:   {name: "nosecone", fallback: KindTransition, body: true},
	KindBodyTube:   {name: "bodytube", body: true, mountable: true},

	KindFinSet:           {name: "finset", radial: true},
	KindTrapezoidFinSet:  {name: "trapezoidfinset", fallback: KindFinSet, radial: true},
	KindEllipticalFinSet: {name: "ellipticalfinset", fallback: KindFinSet, radial: true},
	KindFreeformFinSet:   {name: "freeformfinset", fallback: KindFinSet, radial: true},
	KindTubeFinSet:       {name: "tubefinset", radial: true},

	KindLaunchLug:  {name: "launchlug"},
	KindRailButton: {name: "railbutton"},

	KindRing:          {name: "ring"},
	KindInnerTube:     {name: "innertube", fallback: KindRing, mountable: true},
	KindTubeCoupler:   {name: "tubecoupler", fallback: KindRing},
	KindCenteringRing: {name: "centeringring", fallback: KindRing},
	KindBulkhead:      {name: "bulkhead", fallback: KindRing},
	KindEngineBlock:   {name: "engineblock", fallback: KindRing},

	KindMassObject:    {name: "massobject"},
	KindMassComponent: {name: "masscomponent", fallback: KindMassObject},
	KindParachute:     {name: "parachute", fallback: KindMassObject},
	KindStreamer:      {name: "streamer", fallback: KindMassObject},
	KindShockCord:     {name: "shockcord", fallback: KindMassObject},
}

// String returns the lower-case name used in design files.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Fallback returns the more general kind this one resolves to, or KindNone
// at the end of the chain.
func (k Kind) Fallback() Kind {
	return kinds[k].fallback
}

// Chain returns k followed by its fallbacks, most specific first.
func (k Kind) Chain() []Kind {
	var chain []Kind
	for cur := k; cur != KindNone; cur = cur.Fallback() {
		chain = append(chain, cur)
	}
	return chain
}

// IsAssembly reports whether the kind is purely structural.
func (k Kind) IsAssembly() bool { return kinds[k].assembly }

// IsBodyComponent reports whether components of this kind stack after their
// previous sibling by default.
func (k Kind) IsBodyComponent() bool { return kinds[k].body }

// IsRadialPattern reports whether instances are distributed around the axis.
func (k Kind) IsRadialPattern() bool { return kinds[k].radial }

// CanMountMotor reports whether the kind can hold a motor.
func (k Kind) CanMountMotor() bool { return kinds[k].mountable }

// ParseKind looks a kind up by its design-file name. Case, spaces, dashes
// and underscores are ignored.
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	for k, info := range kinds {
		if info.name == norm {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
