package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sceneWidth  = 100
	sceneHeight = 36
	frameRate   = 60
)

var ErrNoCurves = errors.New("scene has no curves to draw")

// Curve is one trajectory of the animated scene.
type Curve struct {
	Name   string
	Points []Vec3
	Ink    Color
}

// Timeline paces the creation of the curves: nothing is drawn for Wait,
// then every curve grows linearly over RunTime.
type Timeline struct {
	Wait    time.Duration
	RunTime time.Duration
}

func (tl Timeline) Total() time.Duration { return tl.Wait + tl.RunTime }

// Progress returns the drawn fraction of every curve at elapsed.
func (tl Timeline) Progress(elapsed time.Duration) float64 {
	if elapsed <= tl.Wait {
		return 0
	}
	if tl.RunTime <= 0 || elapsed >= tl.Total() {
		return 1
	}
	return float64(elapsed-tl.Wait) / float64(tl.RunTime)
}

// Scene holds everything that is drawn; it carries no playback state.
type Scene struct {
	Axes   Axes
	Curves []Curve
	Camera Camera
}

func NewScene(axes Axes, camera Camera, curves []Curve) (*Scene, error) {
	kept := make([]Curve, 0, len(curves))
	for _, c := range curves {
		if len(c.Points) > 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoCurves
	}
	return &Scene{Axes: axes, Curves: kept, Camera: camera}, nil
}

// Draw renders the axes and the leading fraction of every curve.
func (s *Scene) Draw(c *Canvas, cam *Camera, progress float64) {
	c.Clear()
	Render3D(c, s.Axes.Wireframe(), cam)

	wf := NewWireframe()
	for _, curve := range s.Curves {
		wf.AddPolyline(visible(curve.Points, progress), curve.Ink)
	}
	Render3D(c, wf, cam)
	DrawLabels(c, s.Axes.Labels(), cam, s.Axes.Ink)
}

// visible returns the prefix of pts shown at progress. The last point is
// interpolated so the curve grows smoothly between samples.
func visible(pts []Vec3, progress float64) []Vec3 {
	if progress <= 0 || len(pts) == 0 {
		return nil
	}
	if progress >= 1 || len(pts) == 1 {
		return pts
	}
	pos := progress * float64(len(pts)-1)
	i := int(pos)
	frac := pos - float64(i)
	out := append([]Vec3(nil), pts[:i+1]...)
	if frac > 0 {
		out = append(out, pts[i].Add(pts[i+1].Sub(pts[i]).Scale(frac)))
	}
	return out
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model plays a Scene in the terminal.
type Model struct {
	scene    *Scene
	timeline Timeline
	camera   Camera
	canvas   *Canvas
	elapsed  time.Duration
	running  bool
	theme    Theme
}

func NewModel(scene *Scene, tl Timeline) Model {
	return Model{
		scene:    scene,
		timeline: tl,
		camera:   scene.Camera,
		canvas:   NewCanvas(sceneWidth, sceneHeight),
		running:  true,
		theme:    ThemeCyberpunk,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and advances the playback clock by one frame
// per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.elapsed = 0
			m.camera = m.scene.Camera
			m.running = true
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.theme = nextTheme(m.theme)
		}
	case TickMsg:
		if m.running && m.elapsed < m.timeline.Total() {
			m.elapsed += time.Second / frameRate
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) Progress() float64 { return m.timeline.Progress(m.elapsed) }

func (m Model) status() string {
	switch {
	case !m.running:
		return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Warning).Render("PAUSED")
	case m.elapsed < m.timeline.Wait:
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("WAITING")
	case m.elapsed >= m.timeline.Total():
		return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Success).Render("DONE")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Success).
		Render(fmt.Sprintf("CREATING %3.0f%%", 100*m.Progress()))
}

// View renders the TUI interface.
func (m Model) View() string {
	m.scene.Draw(m.canvas, &m.camera, m.Progress())

	var s strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	s.WriteString(header.Render("LORENZ") + "  " + m.status() + "\n\n")
	s.WriteString(m.canvas.Render())
	for _, c := range m.scene.Curves {
		s.WriteString(c.Ink.Style().Render("━━ "+c.Name) + "  ")
	}
	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Italic(true)
	s.WriteString("\n" + hint.Render("SP:Pause R:Restart +/-:Zoom T:Theme Q:Quit"))
	return s.String()
}

// Play runs the scene until the user quits.
func Play(scene *Scene, tl Timeline) error {
	_, err := tea.NewProgram(NewModel(scene, tl), tea.WithAltScreen()).Run()
	return err
}
