package objexport

import (
	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// defaultColors is used for components without an explicit appearance.
var defaultColors = map[rocket.Kind][3]uint8{
	rocket.KindBodyTube:      {200, 200, 200},
	rocket.KindTransition:    {220, 220, 220},
	rocket.KindFinSet:        {180, 180, 180},
	rocket.KindTubeFinSet:    {180, 180, 180},
	rocket.KindLaunchLug:     {120, 120, 120},
	rocket.KindRailButton:    {40, 40, 40},
	rocket.KindRing:          {190, 160, 110},
	rocket.KindInnerTube:     {170, 140, 100},
	rocket.KindMassObject:    {0, 0, 0},
	rocket.KindParachute:     {255, 140, 0},
	rocket.KindStreamer:      {255, 220, 0},
	rocket.KindShockCord:     {90, 60, 30},
	rocket.KindMassComponent: {100, 100, 100},
}

var motorColor = [3]uint8{80, 80, 80}

// ExportAppearance appends the material for c to mats and returns its
// name. The colour comes from c's appearance, or from the closest kind in
// its fallback chain that has a default.
func ExportAppearance(mats *[]wavefront.Material, c *rocket.Component, name string) string {
	app := c.Appearance
	if app == nil {
		app = &rocket.Appearance{Color: defaultColor(c.Kind), Opacity: 1}
	}
	*mats = append(*mats, material(name, app))
	return name
}

func defaultColor(kind rocket.Kind) [3]uint8 {
	for _, k := range kind.Chain() {
		if col, ok := defaultColors[k]; ok {
			return col
		}
	}
	return [3]uint8{255, 255, 255}
}

func material(name string, app *rocket.Appearance) wavefront.Material {
	diffuse := wavefront.Color{
		float32(app.Color[0]) / 255,
		float32(app.Color[1]) / 255,
		float32(app.Color[2]) / 255,
	}
	shine := clamp32(float32(app.Shine), 0, 1)
	m := wavefront.Material{
		Name:      name,
		Ambient:   scaleColor(diffuse, 0.2),
		Diffuse:   diffuse,
		Specular:  wavefront.Color{shine, shine, shine},
		Shininess: shine * 1000,
		Opacity:   clamp32(float32(app.Opacity), 0, 1),
		Illum:     2,
	}
	if app.Texture != "" {
		m.DiffuseMap = app.Texture
	}
	return m
}

func scaleColor(c wavefront.Color, s float32) wavefront.Color {
	return wavefront.Color{c[0] * s, c[1] * s, c[2] * s}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
