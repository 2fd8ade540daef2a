package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/colormap"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/metrics"
)

const (
	width            = 80
	height           = 24
	statsWidth       = 42
	historyCapacity  = 300
	maxTicksPerFrame = 64
)

type TickMsg time.Time

// Model renders an attractor each frame: one Tick, then the trails are read
// and drawn as colored segments.
type Model struct {
	attr          *attractor.Attractor
	name          string
	dt            float32
	min, max      float32
	fps           int
	ticksPerFrame int
	width, height int
	canvas        *Canvas
	camera        *Camera
	bounds        *Bounds
	trails        []attractor.Trail
	running       bool
	theme         int
	gradient      colormap.Gradient
	spread        *metrics.Spread
	escaped       *metrics.Escaped
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	history       []float64
	showHelp      bool
	err           error
}

// NewModel builds the live view of an experiment. The experiment's gradient
// is used until the theme is cycled.
func NewModel(exp *experiment.Experiment) Model {
	cfg := exp.Config()
	attr := exp.Attractor()

	params := make(map[string]float64)
	if t, ok := attr.Dynamics().(dynamo.Configurable); ok {
		for k, v := range t.Params() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	m := Model{
		attr:          attr,
		name:          cfg.Variant,
		dt:            cfg.Dt,
		min:           cfg.Min,
		max:           cfg.Max,
		fps:           cfg.FPS,
		ticksPerFrame: 1,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		bounds:        NewBounds(),
		running:       true,
		theme:         themeIndex(cfg.Theme),
		gradient:      exp.Gradient(),
		spread:        metrics.NewSpread(),
		escaped:       metrics.NewEscaped(experiment.EscapeRadius),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		history:       make([]float64, 0, historyCapacity),
	}
	m.trails = attr.Trails()
	m.frame()
	return m
}

func (m Model) frameDelay() time.Duration {
	if m.fps < 1 {
		return time.Second / 30
	}
	return time.Second / time.Duration(m.fps)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameDelay(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "p":
			m.restoreParams()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "]":
			m.ticksPerFrame = min(m.ticksPerFrame*2, maxTicksPerFrame)
		case "[":
			m.ticksPerFrame = max(m.ticksPerFrame/2, 1)
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.gradient = Themes[m.theme].Trail
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
		m.draw()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := max(w-statsWidth-8, 10)
	ch := max(h-4, 5)
	if cw == m.width && ch == m.height {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// step runs one frame: tick, read trails, then redraw.
func (m *Model) step() {
	for i := 0; i < m.ticksPerFrame; i++ {
		m.attr.Tick(m.dt)
	}
	m.trails = m.attr.Trails()
	m.frame()
}

// frame updates metrics, the x history and the camera framing from the
// current trails.
func (m *Model) frame() {
	m.spread.Observe(m.attr)
	m.escaped.Observe(m.attr)

	x := float64(m.attr.Current(0).X)
	if m.attr.Current(0).IsFinite() {
		m.history = append(m.history, x)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}

	for _, tr := range m.trails {
		if len(tr.Points) > 0 {
			m.bounds.Add(tr.Points[0])
		}
	}
	if !m.bounds.Empty() {
		m.camera.Frame(m.bounds.Lo, m.bounds.Hi)
	}
	m.draw()
}

func (m *Model) draw() {
	m.canvas.Clear()
	RenderTrails(m.canvas, m.trails, m.camera, func(rank, length int) lipgloss.Color {
		return lipgloss.Color(m.gradient.Hex(rank, length))
	})
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected coefficient. Updates happen between
// ticks because bubbletea delivers messages serially.
func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key]
	if val == 0 {
		val = 1e-3
	}
	m.setParam(key, val*factor)
}

func (m *Model) setParam(key string, v float64) {
	t, ok := m.attr.Dynamics().(dynamo.Configurable)
	if !ok {
		return
	}
	if err := t.SetParam(key, v); err != nil {
		m.err = err
		return
	}
	m.params[key] = v
}

func (m *Model) restoreParams() {
	for k, v := range m.initialParams {
		m.setParam(k, v)
	}
}

// reset reseeds every trajectory inside the configured cube. Coefficients
// are kept.
func (m *Model) reset() {
	m.attr.Reset(m.min, m.max)
	m.trails = m.attr.Trails()
	m.history = m.history[:0]
	m.bounds.Reset()
	m.spread.Reset()
	m.escaped.Reset()
	m.frame()
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := Themes[m.theme]
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), theme.Primary, theme.Accent) + "\n")

	status := lipgloss.NewStyle().Foreground(theme.Primary).Render("RUNNING")
	if !m.running {
		status = lipgloss.NewStyle().Foreground(theme.Warning).Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(statsWidth-12), asciigraph.Caption("trajectory 0: x"))
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Ticks", fmt.Sprintf("%d", m.attr.Ticks()))
	row("Time", fmt.Sprintf("%.3f", float64(m.attr.Ticks())*float64(m.dt)))
	row("dt", fmt.Sprintf("%g x%d", m.dt, m.ticksPerFrame))
	row("Trails", fmt.Sprintf("%d x %d", m.attr.Len(), m.attr.TrailLength()))
	row("Spread", fmt.Sprintf("%.2f", m.spread.Value()))
	row("Escaped", fmt.Sprintf("%.0f%%", 100*m.escaped.Value()))
	row("Theme", theme.Name)

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			ratio := 0.5
			if initial != 0 {
				ratio = val / (2.0 * initial)
			}
			line := fmt.Sprintf("%-6s %s %.4g", k, ProgressBar(ratio, 10, theme.Accent), val)
			if i == m.selected {
				s.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> ") + line + "\n")
			} else {
				s.WriteString("  " + line + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(statsWidth-6, theme.Muted) + "\nSP:Pause R:Reset Q:Quit ?:Help\nT:Theme ↑↓:Tune TAB:Next"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reseed trajectories      ║
║  P        - Restore parameters       ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  [ ]      - Ticks per frame          ║
║  x y z    - Rotate (shift reverses)  ║
║  + -      - Zoom                     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
