package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/experiment"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Fatal("expected dots set")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.IsSet(0, 0) || c.Grid[0][0] != blank {
		t.Error("expected dot cleared")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.String() != "\u2800\u2800\n" {
		t.Errorf("unexpected cleared canvas %q", c.String())
	}
}

func TestCanvasDrawLineColors(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, lipgloss.Color("#ff0000"))

	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("dot %d not set", x)
		}
	}
	for col := 0; col < 4; col++ {
		if c.Colors[0][col] != "#ff0000" {
			t.Errorf("cell %d color %q", col, c.Colors[0][col])
		}
	}
	if !strings.Contains(c.Render(), "⠉") {
		t.Errorf("expected top row dots in render: %q", c.Render())
	}
}

func TestCameraProjectsCenterToMiddle(t *testing.T) {
	cam := NewCamera()
	cam.Frame(Vec3{-10, -10, 10}, Vec3{10, 10, 30})

	x, y, _, ok := cam.Project(Vec3{0, 0, 20}, 100, 80)
	if !ok {
		t.Fatal("center not visible")
	}
	if x != 50 || y != 40 {
		t.Errorf("expected (50, 40), got (%v, %v)", x, y)
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds()
	if !b.Empty() {
		t.Fatal("new bounds should be empty")
	}
	b.Add(dynamo.Point{X: 1, Y: -2, Z: 3})
	b.Add(dynamo.Point{X: -1, Y: 2, Z: 0})
	b.Add(dynamo.Point{X: float32FromBits(0x7fc00000)})

	if b.Lo != (Vec3{-1, -2, 0}) || b.Hi != (Vec3{1, 2, 3}) {
		t.Errorf("unexpected bounds %+v %+v", b.Lo, b.Hi)
	}
	b.Reset()
	if !b.Empty() {
		t.Error("reset bounds should be empty")
	}
}

func TestRenderTrailsDrawsSegmentsPerRank(t *testing.T) {
	c := NewCanvas(40, 20)
	cam := NewCamera()
	cam.RotX = 0
	cam.Frame(Vec3{-1, -1, -1}, Vec3{1, 1, 1})

	trails := []attractor.Trail{
		{Index: 0, Points: []dynamo.Point{{X: 0}, {X: 0.5}, {X: 0.5, Y: 0.5}}},
		{Index: 1, Points: []dynamo.Point{{Y: -0.5}, {X: -0.5, Y: -0.5}, {X: -0.5}}},
	}

	var ranks []int
	RenderTrails(c, trails, cam, func(rank, length int) lipgloss.Color {
		if length != 3 {
			t.Errorf("expected length 3, got %d", length)
		}
		ranks = append(ranks, rank)
		return "#00ff00"
	})

	if len(ranks) != 4 {
		t.Fatalf("expected 2 segments per trail, got %v", ranks)
	}
	if ranks[0] != 0 || ranks[1] != 1 {
		t.Errorf("expected ranks 0,1 got %v", ranks)
	}
	if c.String() == NewCanvas(40, 20).String() {
		t.Error("nothing drawn")
	}
}

func TestRenderTrailsSkipsNonFinite(t *testing.T) {
	c := NewCanvas(10, 5)
	cam := NewCamera()
	inf := float32FromBits(0x7f800000)

	calls := 0
	RenderTrails(c, []attractor.Trail{{Points: []dynamo.Point{{X: inf}, {X: inf}}}}, cam, func(int, int) lipgloss.Color {
		calls++
		return ""
	})
	if calls != 0 {
		t.Errorf("expected diverged segments to be skipped, got %d", calls)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("missing").Name != "default" {
		t.Error("expected fallback to default theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Trajectories = 5
	cfg.TrailLength = 10
	exp, err := experiment.New(cfg)
	if err != nil {
		t.Fatalf("experiment: %v", err)
	}
	return NewModel(exp)
}

func TestModelTicksOncePerFrame(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("expected next frame to be scheduled")
	}
	m = next.(Model)
	if m.attr.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", m.attr.Ticks())
	}
	if len(m.trails) != 5 || len(m.trails[0].Points) != 10 {
		t.Errorf("unexpected trails %d", len(m.trails))
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if m.running {
		t.Fatal("expected paused")
	}
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.attr.Ticks() != 0 {
		t.Errorf("paused model ticked")
	}

	m.running = true
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.attr.Ticks() != 0 {
		t.Errorf("expected reset to clear ticks, got %d", m.attr.Ticks())
	}
}

func TestModelTuneParam(t *testing.T) {
	m := newTestModel(t)
	key := m.paramKeys[m.selected]
	before := m.params[key]

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)

	after := m.attr.Dynamics().(dynamo.Configurable).Params()[key]
	if diff := after - before*1.05; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected %s scaled by 1.05, got %v -> %v", key, before, after)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(Model)
	restored := m.attr.Dynamics().(dynamo.Configurable).Params()[key]
	if diff := restored - before; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected %s restored to %v, got %v", key, before, restored)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	view := m.View()
	for _, want := range []string{"Ticks", "PARAMETERS", "Spread"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInteractiveStart(t *testing.T) {
	app := NewInteractiveApp(config.DefaultConfig())
	m := *app

	m, _ = m.menuKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateConfig {
		t.Fatalf("expected config screen, got %d", m.state)
	}
	if len(m.fields) <= 5 {
		t.Errorf("expected coefficient fields, got %v", m.fields)
	}

	m, _ = m.configKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.err != nil {
		t.Fatalf("start: %v", m.err)
	}
	if m.state != stateSim {
		t.Errorf("expected live view, got %d", m.state)
	}
	if m.liveModel.name != m.variants[0] {
		t.Errorf("expected %s, got %s", m.variants[0], m.liveModel.name)
	}
}

func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }
