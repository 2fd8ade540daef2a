package gui

import (
	"fmt"
	"image/color"
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/colormap"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/viz"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGrid    = rl.NewColor(30, 30, 30, 255)    // Barely visible grid
)

const (
	screenWidth      = 1280
	screenHeight     = 720
	maxTicksPerFrame = 64
)

type App struct {
	Base          *config.Config
	Attr          *attractor.Attractor
	Variant       string
	Dt            float32
	Min, Max      float32
	Trails        []attractor.Trail
	Gradient      colormap.Gradient
	Palette       []color.RGBA
	Theme         int
	Camera        rl.Camera3D
	Orbit         Orbit
	Bounds        *viz.Bounds
	Running       bool
	InMenu        bool
	InConfig      bool
	ShowGrid      bool
	TicksPerFrame int
	Variants      []string
	Selected      int
	Params        map[string]float64
	ParamKeys     []string
	ParamSel      int
	Telemetry     []float64 // trajectory 0 x history
	MaxTelemetry  int
	Font          rl.Font
	Err           error
	quit          bool
}

// initWindow initializes the Raylib window, sets the target FPS, and
// disables the default exit key.
func initWindow(fps int) {
	rl.InitWindow(screenWidth, screenHeight, "attractors")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font, falling back to raylib's
// built-in font when the file is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.BaseSize == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates an App. With interactive set it starts in the variant menu;
// otherwise the variant in base is loaded and running immediately.
func NewApp(base *config.Config, interactive bool) *App {
	app := &App{
		Base:     base,
		Variants: physics.Names(),
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 80),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Orbit:         NewOrbit(),
		Bounds:        viz.NewBounds(),
		Gradient:      viz.GetTheme(base.Theme).Trail,
		Theme:         0,
		Params:        make(map[string]float64),
		Font:          loadFont(),
		InMenu:        interactive,
		Running:       !interactive,
		TicksPerFrame: 1,
		MaxTelemetry:  400,
		Telemetry:     make([]float64, 0, 400),
	}
	for i, t := range viz.Themes {
		if t.Name == base.Theme {
			app.Theme = i
		}
	}

	if !interactive {
		if err := app.load(base); err != nil {
			app.Err = err
			app.InMenu = true
		}
	}

	return app
}

// RunInteractive opens the window on the variant menu and blocks until it
// is closed.
func RunInteractive(base *config.Config) {
	initWindow(base.FPS)
	defer rl.CloseWindow()
	app := NewApp(base, true)
	app.RunLoop()
}

// Run opens the window running the configured variant and blocks until it
// is closed.
func Run(base *config.Config) {
	initWindow(base.FPS)
	defer rl.CloseWindow()
	app := NewApp(base, false)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// load builds the attractor for cfg and resets the view around it.
func (a *App) load(cfg *config.Config) error {
	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	a.Attr = exp.Attractor()
	a.Variant = cfg.Variant
	a.Dt = cfg.Dt
	a.Min, a.Max = cfg.Min, cfg.Max
	a.Trails = a.Attr.Trails()
	a.Telemetry = a.Telemetry[:0]
	a.Bounds.Reset()
	a.Gradient = exp.Gradient()
	a.Palette = nil

	a.Params = make(map[string]float64)
	a.ParamKeys = a.ParamKeys[:0]
	for k, v := range physics.Params(a.Attr.Dynamics()) {
		a.Params[k] = v
		a.ParamKeys = append(a.ParamKeys, k)
	}
	sort.Strings(a.ParamKeys)
	a.ParamSel = 0

	slog.Info("gui loaded", "variant", cfg.Variant, "trajectories", cfg.Trajectories, "trail_length", cfg.TrailLength, "dt", cfg.Dt)
	return nil
}

// configFor returns the base config switched to variant, using its classic
// preset step and cube when one exists.
func (a *App) configFor(variant string) *config.Config {
	cfg := a.Base.Clone()
	if variant == cfg.Variant {
		return cfg
	}
	cfg.Variant = variant
	cfg.Params = nil
	if p := config.GetPreset(variant, "classic"); p != nil {
		cfg.Dt, cfg.Min, cfg.Max = p.Dt, p.Min, p.Max
	}
	return cfg
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		a.updateMenu()
		return
	}
	if a.InConfig {
		a.updateConfig()
		return
	}

	// Simulation Running or Paused
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.ShowGrid = !a.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Theme = (a.Theme + 1) % len(viz.Themes)
		a.Gradient = viz.Themes[a.Theme].Trail
		a.Palette = nil
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		a.TicksPerFrame = min(a.TicksPerFrame*2, maxTicksPerFrame)
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		a.TicksPerFrame = max(a.TicksPerFrame/2, 1)
	}

	a.Orbit.Update()

	if a.Running {
		a.step()
	}

	if !a.Bounds.Empty() {
		a.Orbit.Apply(&a.Camera, a.Bounds)
	}
}

// step ticks the attractor and reads its trails for this frame.
func (a *App) step() {
	for i := 0; i < a.TicksPerFrame; i++ {
		a.Attr.Tick(a.Dt)
	}
	a.Trails = a.Attr.Trails()

	for _, tr := range a.Trails {
		a.Bounds.Add(tr.Points[0])
	}

	if p := a.Attr.Current(0); p.IsFinite() {
		a.Telemetry = append(a.Telemetry, float64(p.X))
		if len(a.Telemetry) > a.MaxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
	}
}

// reset reseeds the trajectories inside the configured cube.
func (a *App) reset() {
	a.Attr.Reset(a.Min, a.Max)
	a.Trails = a.Attr.Trails()
	a.Telemetry = a.Telemetry[:0]
	a.Bounds.Reset()
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}

	// Wrap selection
	if a.Selected >= len(a.Variants) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Variants) - 1
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		if err := a.load(a.configFor(a.Variants[a.Selected])); err != nil {
			a.Err = err
			return
		}
		a.Err = nil
		a.InMenu = false
		a.InConfig = true // Go to config first
		a.Running = false
	}
}

func (a *App) updateConfig() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.InConfig = false
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		if cfg, ok := a.Attr.Dynamics().(dynamo.Configurable); ok {
			for _, k := range a.ParamKeys {
				if err := cfg.SetParam(k, a.Params[k]); err != nil {
					a.Err = err
					return
				}
			}
		}
		a.InConfig = false
		a.Running = true
		return
	}

	if len(a.ParamKeys) == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel--
		if a.ParamSel < 0 {
			a.ParamSel = len(a.ParamKeys) - 1
		}
	}

	key := a.ParamKeys[a.ParamSel]
	step := 0.1
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 1.0
	}
	if rl.IsKeyDown(rl.KeyLeftControl) {
		step = 0.01
	}

	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.Params[key] += step
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.Params[key] -= step
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else if a.InConfig {
		a.drawConfig()
	} else {
		a.drawSim()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("attractors", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Variant), 190, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	a.drawText(fmt.Sprintf("%d x %d  dt %g x%d  ticks %d", a.Attr.Len(), a.Attr.TrailLength(), a.Dt, a.TicksPerFrame, a.Attr.Ticks()), 30, 64, 14, ColText)

	a.drawText("[SPACE] PAUSE  [R] RESET  [T] THEME  [G] GRID  [ ] SPEED  [ESC] MENU  [Q] QUIT", 560, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) CustomGrid(slices int, spacing float32) {
	halfSize := float32(slices) * spacing / 2
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, 0, -halfSize), rl.NewVector3(pos, 0, halfSize), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-halfSize, 0, pos), rl.NewVector3(halfSize, 0, pos), ColGrid)
	}
}

func (a *App) drawSim() {
	rl.BeginMode3D(a.Camera)
	if a.ShowGrid {
		a.CustomGrid(40, 5.0)
	}
	a.RenderTrails()
	rl.EndMode3D()
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	// Normalize Data
	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	// Draw Line Strip
	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("x0: %.3f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("attractors", 50, 50, 40, ColSelect)
	a.drawText("Select Attractor", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Variants {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 16, rl.Red)
	}
	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}

func (a *App) drawConfig() {
	a.drawText("attractors", 50, 50, 40, ColTextDim)
	a.drawText("configure", 290, 65, 20, ColSelect)
	a.drawText(fmt.Sprintf("Target: %s", a.Variant), 50, 110, 16, ColAccent)

	y := 180
	if len(a.ParamKeys) == 0 {
		a.drawText("No configurable parameters.", 50, y, 16, ColTextDim)
	} else {
		for i, key := range a.ParamKeys {
			val := a.Params[key]
			if i == a.ParamSel {
				a.drawText(fmt.Sprintf("> %-15s %.4g", key, val), 50, y, 20, ColSelect)
			} else {
				a.drawText(fmt.Sprintf("  %-15s %.4g", key, val), 50, y, 20, ColText)
			}
			y += 28
		}
	}

	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 16, rl.Red)
	}
	a.drawText("ARROWS: ADJUST  SHIFT/CTRL: STEP  ENTER: RUN  ESC: BACK", 760, 680, 14, ColTextDim)
}
