package viz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/experiment"
	"github.com/san-kum/attractors/internal/physics"
)

var variantInfo = map[string]string{
	"halvorsen": "cyclic symmetric", "lorenz": "butterfly", "aizawa": "sphere with tube",
	"fourwing": "four lobes", "rabinovich_fabrikant": "plasma waves", "thomas": "labyrinth",
	"threescroll": "three scrolls", "rossler": "spiral chaos", "chen": "double scroll",
}

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// field is one editable setting on the config screen. Coefficients are
// prefixed with "param.".
type field struct {
	name  string
	value float64
}

type model struct {
	state, cursor int
	base          *config.Config
	variants      []string
	selected      string
	fields        []field
	fieldCursor   int
	editing       bool
	editBuf       string
	err           error
	width, height int
	liveModel     Model
}

// NewInteractiveApp lists every variant; picking one opens its settings,
// then the live view.
func NewInteractiveApp(base *config.Config) *model {
	return &model{
		state:    stateMenu,
		base:     base,
		variants: physics.Names(),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		if msg.String() == "esc" {
			m.state = stateConfig
			return m, nil
		}
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.variants)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.variants[m.cursor]
		m.state, m.fieldCursor, m.err = stateConfig, 0, nil
		m.fields = m.fieldsFor(m.selected)
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.fields[m.fieldCursor].value = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(m.fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(m.fields[m.fieldCursor].value, 'g', -1, 64)
	case "left", "h":
		m.fields[m.fieldCursor].value *= 0.9
	case "right", "l":
		m.fields[m.fieldCursor].value *= 1.1
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

// fieldsFor seeds the settings screen from the base config, the variant's
// classic preset when there is one, and its default coefficients.
func (m *model) fieldsFor(variant string) []field {
	cfg := m.base.Clone()
	if p := config.GetPreset(variant, "classic"); p != nil {
		cfg.Dt, cfg.Min, cfg.Max = p.Dt, p.Min, p.Max
	}

	fields := []field{
		{"trajectories", float64(cfg.Trajectories)},
		{"trail_length", float64(cfg.TrailLength)},
		{"dt", float64(cfg.Dt)},
		{"min", float64(cfg.Min)},
		{"max", float64(cfg.Max)},
	}

	dyn, err := physics.Lookup(variant)
	if err != nil {
		return fields
	}
	params := physics.Params(dyn)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, field{"param." + k, params[k]})
	}
	return fields
}

// configFor turns the edited fields back into a config.
func (m *model) configFor() *config.Config {
	cfg := m.base.Clone()
	cfg.Variant = m.selected
	cfg.Params = make(map[string]float64)
	for _, f := range m.fields {
		switch f.name {
		case "trajectories":
			cfg.Trajectories = int(f.value)
		case "trail_length":
			cfg.TrailLength = int(f.value)
		case "dt":
			cfg.Dt = float32(f.value)
		case "min":
			cfg.Min = float32(f.value)
		case "max":
			cfg.Max = float32(f.value)
		default:
			cfg.Params[strings.TrimPrefix(f.name, "param.")] = f.value
		}
	}
	return cfg
}

func (m *model) start() tea.Cmd {
	exp, err := experiment.New(m.configFor())
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.liveModel = NewModel(exp)
	m.liveModel.resize(m.width, m.height)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("ATTRACTORS") + "\n    " + menuSub.Render("strange attractor trails") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.variants {
		desc := variantInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-22s", name)), menuValue.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-22s", name)), menuSub.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(variantInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, f := range m.fields {
		valStr := fmt.Sprintf("%10.4g", f.value)
		if m.editing && i == m.fieldCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-14s", f.name)), menuValue.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-14s", f.name)), menuSub.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the variant picker.
func RunInteractive(base *config.Config) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen()).Run()
	return err
}

// RunLive starts the live view of a single experiment.
func RunLive(exp *experiment.Experiment) error {
	_, err := tea.NewProgram(NewModel(exp), tea.WithAltScreen()).Run()
	return err
}
