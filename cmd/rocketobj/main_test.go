package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/rocketmesh/internal/config"
	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// copyDesign places the shared sample design in a fresh directory.
func copyDesign(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "pkg", "rocket", "testdata", "alpha.yaml"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "alpha.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func decodeFile(t *testing.T, path string) *wavefront.Document {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := wavefront.Decode(f)
	require.NoError(t, err)
	return doc
}

func TestRunExport(t *testing.T) {
	design := copyDesign(t)
	out := filepath.Join(filepath.Dir(design), "alpha.obj")

	err := runExport(design, out, nil, config.Default().Export, zaptest.NewLogger(t))
	require.NoError(t, err)

	doc := decodeFile(t, out)
	assert.Equal(t, []string{"1_Nose", "2_Body", "2_Body_motor", "3_Fins", "4_Lug"}, doc.GroupNames())
	assert.Equal(t, []string{"alpha.mtl"}, doc.MaterialLibs)
	assert.FileExists(t, filepath.Join(filepath.Dir(design), "alpha.mtl"))

	// The rocket is 0.4 m long and lies along +Y.
	b := doc.Bounds()
	assert.InDelta(t, 0.4, b.Size().Y, 1e-4)
}

func TestRunExport_SelectedComponents(t *testing.T) {
	design := copyDesign(t)
	out := filepath.Join(filepath.Dir(design), "fins.obj")

	ec := config.Default().Export
	ec.Appearance = false
	ec.Triangulate = true
	require.NoError(t, runExport(design, out, []string{"Fins"}, ec, zaptest.NewLogger(t)))

	doc := decodeFile(t, out)
	assert.Equal(t, []string{"1_Fins"}, doc.GroupNames())
	assert.Empty(t, doc.MaterialLibs)
	for _, f := range doc.Groups[0].Faces {
		require.True(t, f.IsTriangle())
	}
	assert.NoFileExists(t, filepath.Join(filepath.Dir(design), "fins.mtl"))
}

func TestRunExport_Errors(t *testing.T) {
	design := copyDesign(t)
	out := filepath.Join(filepath.Dir(design), "x.obj")
	log := zaptest.NewLogger(t)

	err := runExport(design, out, []string{"Missing"}, config.Default().Export, log)
	assert.ErrorIs(t, err, rocket.ErrInvalidDesign)

	ec := config.Default().Export
	ec.Configuration = "nope"
	err = runExport(design, out, nil, ec, log)
	assert.ErrorIs(t, err, rocket.ErrInvalidDesign)

	err = runExport(filepath.Join(t.TempDir(), "none.yaml"), out, nil, config.Default().Export, log)
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestRunInfo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runInfo(&buf, copyDesign(t), ""))

	s := buf.String()
	for _, want := range []string{"Alpha III", "Sustainer", "Nose", "Body", "Fins", "Lug", "C6-5", "x3", "* configuration c6"} {
		assert.Contains(t, s, want)
	}
}

func TestRunInspect(t *testing.T) {
	design := copyDesign(t)
	out := filepath.Join(filepath.Dir(design), "alpha.obj")
	require.NoError(t, runExport(design, out, nil, config.Default().Export, zaptest.NewLogger(t)))

	var buf bytes.Buffer
	require.NoError(t, runInspect(&buf, out))

	s := buf.String()
	assert.Contains(t, s, "Groups (5)")
	assert.Contains(t, s, "2_Body_motor")
	assert.Contains(t, s, "Materials alpha.mtl (5)")
	assert.Contains(t, s, "mat_1_Nose")
}

func TestRunInspect_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 1 2\n"), 0644))

	err := runInspect(&bytes.Buffer{}, path)
	assert.ErrorIs(t, err, wavefront.ErrMalformed)
}

func TestWatchDesign(t *testing.T) {
	design := copyDesign(t)
	runs := make(chan error, 8)
	calls := 0
	fn := func() error {
		calls++
		if calls == 2 {
			return errors.New("broken design")
		}
		return nil
	}
	wrapped := func() error {
		err := fn()
		runs <- err
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchDesign(ctx, design, 20*time.Millisecond, wrapped, zaptest.NewLogger(t))
	}()

	waitRun := func() error {
		t.Helper()
		select {
		case err := <-runs:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("export did not run")
			return nil
		}
	}

	require.NoError(t, waitRun())

	// A failed run keeps watching.
	require.NoError(t, os.WriteFile(design, []byte("name: changed\n"), 0644))
	require.Error(t, waitRun())

	require.NoError(t, os.WriteFile(design, []byte("name: again\n"), 0644))
	require.NoError(t, waitRun())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchDesign_IgnoresOtherFiles(t *testing.T) {
	design := copyDesign(t)
	runs := make(chan struct{}, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchDesign(ctx, design, 20*time.Millisecond, func() error {
			runs <- struct{}{}
			return nil
		}, zaptest.NewLogger(t))
	}()
	<-runs

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(design), "other.yaml"), []byte("x"), 0644))
	select {
	case <-runs:
		t.Fatal("unrelated file triggered an export")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
