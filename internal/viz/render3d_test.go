package viz

import (
	"math"
	"testing"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topDown() Camera {
	return CameraFromDegrees(0, -90, 0, Vec3{}, 10)
}

func TestCameraTopDown(t *testing.T) {
	cam := topDown()

	p := cam.RotatePoint(Vec3{1, 2, 3})
	assert.InDelta(t, 1, p.X, 1e-12)
	assert.InDelta(t, 2, p.Y, 1e-12)
	assert.InDelta(t, 3, p.Z, 1e-12)

	x, y, _, ok := cam.Project(Vec3{}, 100, 80)
	require.True(t, ok)
	assert.Equal(t, 50, x)
	assert.Equal(t, 40, y)

	// extent maps to half of the smaller screen side
	x, y, _, ok = cam.Project(Vec3{10, 0, 0}, 100, 80)
	require.True(t, ok)
	assert.Equal(t, 90, x)
	assert.Equal(t, 40, y)

	x, y, _, _ = cam.Project(Vec3{0, 10, 0}, 100, 80)
	assert.Equal(t, 50, x)
	assert.Equal(t, 0, y)

	_, _, _, ok = cam.Project(Vec3{20, 0, 0}, 100, 80)
	assert.False(t, ok)
}

func TestCameraPreservesLength(t *testing.T) {
	cam := CameraFromDegrees(43, 76, 1, Vec3{}, 50)
	for _, p := range []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {3, -4, 12}} {
		assert.InDelta(t, p.Length(), cam.RotatePoint(p).Length(), 1e-12)
	}
}

func TestCameraTiltShowsZUp(t *testing.T) {
	cam := CameraFromDegrees(43, 76, 1, Vec3{}, 50)
	_, y0, _, _ := cam.Project(Vec3{}, 200, 160)
	_, y1, _, _ := cam.Project(Vec3{0, 0, 40}, 200, 160)
	assert.Less(t, y1, y0)

	p := cam.RotatePoint(Vec3{0, 0, 1})
	assert.InDelta(t, math.Sin(43*math.Pi/180), math.Hypot(p.X, p.Y), 1e-12)
}

func TestCameraZoom(t *testing.T) {
	cam := topDown()
	cam.ZoomIn()
	assert.InDelta(t, 1.2, cam.Zoom, 1e-12)
	for i := 0; i < 50; i++ {
		cam.ZoomOut()
	}
	assert.Equal(t, 0.1, cam.Zoom)
}

func TestRender3D(t *testing.T) {
	c := NewCanvas(20, 10)
	cam := topDown()
	wf := NewWireframe()
	wf.AddEdge(Vec3{-5, 0, 0}, Vec3{5, 0, 0}, Red)
	wf.AddPoint(Vec3{0, 5, 0}, Blue)
	Render3D(c, wf, &cam)

	// 40x40 pixel canvas, 0.5 world units per pixel
	assert.True(t, c.IsSet(20, 20))
	assert.True(t, c.IsSet(10, 20))
	assert.True(t, c.IsSet(30, 20))
	assert.Equal(t, Red, c.Ink[20/4][20/2])
	assert.True(t, c.IsSet(20, 10))
	assert.Equal(t, Blue, c.Ink[10/4][20/2])
}

func TestAxes(t *testing.T) {
	axes := Axes{
		X:   AxisRange{-50, 50, 10},
		Y:   AxisRange{-50, 50, 10},
		Z:   AxisRange{0, 50, 10},
		Ink: White,
	}
	assert.Equal(t, Vec3{0, 0, 25}, axes.Center())
	assert.Equal(t, 50.0, axes.Extent())

	// three lines plus 11 + 11 + 6 ticks
	assert.Len(t, axes.Wireframe().Edges, 3+11+11+6)

	labels := axes.Labels()
	require.Len(t, labels, 3)
	assert.Equal(t, "z", labels[2].Text)
	assert.Equal(t, Vec3{0, 0, 50}, labels[2].At)

	assert.Nil(t, ticks(AxisRange{0, 1, 0}))
}

func TestDrawLabels(t *testing.T) {
	c := NewCanvas(20, 10)
	cam := topDown()
	DrawLabels(c, []Label{{Vec3{0, 0, 0}, "o"}, {Vec3{100, 0, 0}, "gone"}}, &cam, White)
	assert.Equal(t, 'o', c.Grid[5][11])
	assert.Equal(t, White, c.Ink[5][11])
	assert.NotContains(t, c.String(), "gone")
}

func TestFromState(t *testing.T) {
	assert.Equal(t, Vec3{1, 2, 3}, FromState(dynamo.State{1, 2, 3, 4}))
	assert.Equal(t, Vec3{1, 0, 0}, FromState(dynamo.State{1}))
	assert.Len(t, FromStates([]dynamo.State{{1, 2, 3}, {4, 5, 6}}), 2)
}
