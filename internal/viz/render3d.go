package viz

import (
	"math"
	"sort"

	"github.com/san-kum/lorenz/internal/dynamo"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// FromState reads the first three coordinates of s.
func FromState(s dynamo.State) Vec3 {
	var v Vec3
	if len(s) > 0 {
		v.X = s[0]
	}
	if len(s) > 1 {
		v.Y = s[1]
	}
	if len(s) > 2 {
		v.Z = s[2]
	}
	return v
}

func FromStates(states []dynamo.State) []Vec3 {
	pts := make([]Vec3, len(states))
	for i, s := range states {
		pts[i] = FromState(s)
	}
	return pts
}

// Camera is an orthographic camera oriented by Euler angles in radians.
// Phi is the polar angle from the z axis, Theta the azimuth and Gamma a
// roll about the view direction. Phi=0, Theta=-π/2 looks straight down z
// with x to the right.
type Camera struct {
	Phi, Theta, Gamma float64
	Target            Vec3
	Extent            float64
	Zoom              float64
}

// CameraFromDegrees builds a camera looking at target with extent world
// units visible from the center to the nearest screen edge.
func CameraFromDegrees(phi, theta, gamma float64, target Vec3, extent float64) Camera {
	return Camera{
		Phi:    phi * math.Pi / 180,
		Theta:  theta * math.Pi / 180,
		Gamma:  gamma * math.Pi / 180,
		Target: target,
		Extent: extent,
		Zoom:   1.0,
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint moves p into view coordinates: rotate about z by -(θ+π/2),
// tilt about x by -φ, then roll about z by γ.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	p = p.Sub(c.Target)
	a := -c.Theta - math.Pi/2
	ca, sa := math.Cos(a), math.Sin(a)
	p.X, p.Y = p.X*ca-p.Y*sa, p.X*sa+p.Y*ca
	cp, sp := math.Cos(-c.Phi), math.Sin(-c.Phi)
	p.Y, p.Z = p.Y*cp-p.Z*sp, p.Y*sp+p.Z*cp
	cg, sg := math.Cos(c.Gamma), math.Sin(c.Gamma)
	p.X, p.Y = p.X*cg-p.Y*sg, p.X*sg+p.Y*cg
	return p
}

// Project converts 3D world coordinates to 2D screen coordinates.
// Returns x, y, depth, and visibility. Larger depth is nearer the viewer.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	extent := c.Extent
	if extent <= 0 {
		extent = 1
	}
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	k := minDim / (2 * extent)
	sx := int(math.Round(float64(sw)/2 + rot.X*k))
	sy := int(math.Round(float64(sh)/2 - rot.Y*k))
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
	Ink        Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                  { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c Color) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p Vec3, c Color)   { w.Edges = append(w.Edges, Edge{p, p, c}) }
func (w *Wireframe) Clear()                     { w.Edges = w.Edges[:0] }

// AddPolyline joins consecutive points.
func (w *Wireframe) AddPolyline(pts []Vec3, c Color) {
	if len(pts) == 1 {
		w.AddPoint(pts[0], c)
	}
	for i := 1; i < len(pts); i++ {
		w.AddEdge(pts[i-1], pts[i], c)
	}
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Ink            Color
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Ink})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		c.SetPen(e.Ink)
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.Set(e.X1, e.Y1)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		}
	}
	c.SetPen(Default)
}

type AxisRange struct {
	Min, Max, Step float64
}

// Axes are three coordinate lines through the origin with a tick every Step.
type Axes struct {
	X, Y, Z AxisRange
	Ink     Color
}

// Label is text anchored at a world position.
type Label struct {
	At   Vec3
	Text string
}

// Center is the middle of the box spanned by the axes.
func (a Axes) Center() Vec3 {
	return Vec3{(a.X.Min + a.X.Max) / 2, (a.Y.Min + a.Y.Max) / 2, (a.Z.Min + a.Z.Max) / 2}
}

// Extent is the largest half span, a camera extent that keeps the axes in view.
func (a Axes) Extent() float64 {
	return math.Max((a.X.Max-a.X.Min)/2, math.Max((a.Y.Max-a.Y.Min)/2, (a.Z.Max-a.Z.Min)/2))
}

func (a Axes) Wireframe() *Wireframe {
	w := NewWireframe()
	tick := a.Extent() * 0.02
	w.AddEdge(Vec3{a.X.Min, 0, 0}, Vec3{a.X.Max, 0, 0}, a.Ink)
	w.AddEdge(Vec3{0, a.Y.Min, 0}, Vec3{0, a.Y.Max, 0}, a.Ink)
	w.AddEdge(Vec3{0, 0, a.Z.Min}, Vec3{0, 0, a.Z.Max}, a.Ink)
	for _, v := range ticks(a.X) {
		w.AddEdge(Vec3{v, -tick, 0}, Vec3{v, tick, 0}, a.Ink)
	}
	for _, v := range ticks(a.Y) {
		w.AddEdge(Vec3{-tick, v, 0}, Vec3{tick, v, 0}, a.Ink)
	}
	for _, v := range ticks(a.Z) {
		w.AddEdge(Vec3{-tick, 0, v}, Vec3{tick, 0, v}, a.Ink)
	}
	return w
}

func (a Axes) Labels() []Label {
	return []Label{
		{Vec3{a.X.Max, 0, 0}, "x"},
		{Vec3{0, a.Y.Max, 0}, "y"},
		{Vec3{0, 0, a.Z.Max}, "z"},
	}
}

func ticks(r AxisRange) []float64 {
	if !(r.Step > 0) || r.Max < r.Min {
		return nil
	}
	n := int(math.Floor((r.Max-r.Min)/r.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Min + float64(i)*r.Step
	}
	return out
}

// DrawLabels writes each visible label into the cell under its projection.
func DrawLabels(c *Canvas, labels []Label, cam *Camera, ink Color) {
	cw, ch := c.PixelSize()
	c.SetPen(ink)
	for _, l := range labels {
		x, y, _, ok := cam.Project(l.At, cw, ch)
		if ok {
			c.Label(x/2+1, y/4, l.Text)
		}
	}
	c.SetPen(Default)
}
