package objexport

import (
	"errors"
	"fmt"

	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// ErrUnsupportedComponentType is matched by errors for components that no
// generator can mesh.
var ErrUnsupportedComponentType = errors.New("unsupported component type")

// UnsupportedComponentError names the component that could not be
// resolved to a generator.
type UnsupportedComponentError struct {
	Component string
	Kind      rocket.Kind
}

func (e *UnsupportedComponentError) Error() string {
	return fmt.Sprintf("%s: %q (%s)", ErrUnsupportedComponentType, e.Component, e.Kind)
}

func (e *UnsupportedComponentError) Is(target error) bool {
	return target == ErrUnsupportedComponentType
}

// Request is everything a generator needs to mesh one component.
type Request struct {
	Component   *rocket.Component
	Config      *rocket.FlightConfiguration
	Transformer Transformer
	Group       string
	Material    string
	LOD         LevelOfDetail
}

// Generator appends the mesh of one component to doc as the group named by
// req.Group. Implementations must not keep doc after returning.
type Generator interface {
	Generate(doc *wavefront.Document, req Request) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(doc *wavefront.Document, req Request) error

func (f GeneratorFunc) Generate(doc *wavefront.Document, req Request) error {
	return f(doc, req)
}

// Registry maps component kinds to generators.
type Registry struct {
	generators map[rocket.Kind]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[rocket.Kind]Generator)}
}

// Register installs g for kind, replacing any earlier generator.
func (r *Registry) Register(kind rocket.Kind, g Generator) {
	r.generators[kind] = g
}

// Resolve returns the generator for kind, walking its fallback chain from
// the most specific kind to the most general one.
func (r *Registry) Resolve(kind rocket.Kind) (Generator, bool) {
	for _, k := range kind.Chain() {
		if g, ok := r.generators[k]; ok {
			return g, true
		}
	}
	return nil, false
}

// DefaultRegistry returns a registry with a generator for every base
// component kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(rocket.KindBodyTube, GeneratorFunc(generateBodyTube))
	r.Register(rocket.KindTransition, GeneratorFunc(generateTransition))
	r.Register(rocket.KindLaunchLug, GeneratorFunc(generateLaunchLug))
	r.Register(rocket.KindTubeFinSet, GeneratorFunc(generateTubeFinSet))
	r.Register(rocket.KindFinSet, GeneratorFunc(generateFinSet))
	r.Register(rocket.KindRing, GeneratorFunc(generateRing))
	r.Register(rocket.KindMassObject, GeneratorFunc(generateMassObject))
	r.Register(rocket.KindRailButton, GeneratorFunc(generateRailButton))
	return r
}
