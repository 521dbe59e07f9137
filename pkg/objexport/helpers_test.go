package objexport

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// testRocket is a two-stage rocket: nose, body with fins, lug and a motor
// mount in the sustainer, and a booster tube below it.
type testRocket struct {
	root, sustainer, booster *rocket.Component
	nose, body, fins, lug    *rocket.Component
	mount, boosterTube       *rocket.Component
	cfg                      *rocket.FlightConfiguration
}

func newTestRocket() *testRocket {
	r := &testRocket{root: rocket.NewRocket("test")}

	r.sustainer = r.root.AddChild(rocket.New(rocket.KindStage, "sustainer"))
	r.nose = r.sustainer.AddChild(rocket.New(rocket.KindNoseCone, "nose"))
	r.nose.Length = 0.1
	r.nose.AftRadius = 0.025
	r.nose.Shape = rocket.ShapeOgive
	r.nose.ShapeParameter = 1

	r.body = r.sustainer.AddChild(rocket.New(rocket.KindBodyTube, "body"))
	r.body.Length = 0.3
	r.body.OuterRadius = 0.025
	r.body.Thickness = 0.001

	r.fins = r.body.AddChild(rocket.New(rocket.KindTrapezoidFinSet, "fins"))
	r.fins.AxialMethod = rocket.AxialBottom
	r.fins.InstanceCount = 3
	r.fins.Fin = &rocket.FinGeometry{RootChord: 0.05, TipChord: 0.03, Span: 0.04, Sweep: 0.02, Thickness: 0.002}
	r.fins.Length = 0.05

	r.lug = r.body.AddChild(rocket.New(rocket.KindLaunchLug, "lug"))
	r.lug.AxialOffset = 0.1
	r.lug.Length = 0.03
	r.lug.OuterRadius = 0.0025
	r.lug.Thickness = 0.0003

	r.mount = r.body.AddChild(rocket.New(rocket.KindInnerTube, "mount"))
	r.mount.AxialMethod = rocket.AxialBottom
	r.mount.Length = 0.07
	r.mount.OuterRadius = 0.0095
	r.mount.Thickness = 0.0005
	r.mount.MotorMount = true

	r.booster = r.root.AddChild(rocket.New(rocket.KindStage, "booster"))
	r.boosterTube = r.booster.AddChild(rocket.New(rocket.KindBodyTube, "booster tube"))
	r.boosterTube.Length = 0.2
	r.boosterTube.OuterRadius = 0.025

	r.cfg = rocket.NewFlightConfiguration(r.root, "default", "")
	r.cfg.SetMotor(r.mount, rocket.Motor{Designation: "C6-5", Length: 0.07, Diameter: 0.018})
	return r
}

func readOBJ(t *testing.T, fs billy.Filesystem, name string) *wavefront.Document {
	t.Helper()
	f, err := fs.Open(name)
	require.NoError(t, err)
	defer f.Close()

	doc, err := wavefront.Decode(f)
	require.NoError(t, err)
	return doc
}

// requireClosed checks that every directed edge appears exactly once and is
// matched by its reverse, which holds for a closed, consistently wound
// surface.
func requireClosed(t *testing.T, doc *wavefront.Document) {
	t.Helper()
	type edge struct{ a, b int }
	edges := make(map[edge]int)
	for _, g := range doc.Groups {
		for _, f := range g.Faces {
			for i := range f.Vertices {
				a := f.Vertices[i].V
				b := f.Vertices[(i+1)%len(f.Vertices)].V
				edges[edge{a, b}]++
			}
		}
	}
	for e, n := range edges {
		require.Equal(t, 1, n, "edge %d->%d used %d times", e.a, e.b, n)
		require.Equal(t, 1, edges[edge{e.b, e.a}], "edge %d->%d has no reverse", e.a, e.b)
	}
}

// signedVolume is positive when faces wind counter-clockwise seen from
// outside.
func signedVolume(doc *wavefront.Document) float64 {
	var vol float64
	for _, g := range doc.Groups {
		for _, f := range g.Faces {
			a := doc.Vertices[f.Vertices[0].V]
			for i := 1; i+1 < len(f.Vertices); i++ {
				b := doc.Vertices[f.Vertices[i].V]
				c := doc.Vertices[f.Vertices[i+1].V]
				vol += float64(a.Dot(b.Cross(c))) / 6
			}
		}
	}
	return vol
}
