package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/input"
	"github.com/san-kum/neomatrix/internal/metrics"
	"github.com/san-kum/neomatrix/internal/rgb"
)

const (
	historyCapacity = 300
	trailLength     = 40
	paramStep       = 0.05
)

// Builder creates a fresh engine for the named scene.
type Builder func(sceneName string) (*engine.Engine, error)

type TickMsg time.Time

// Model runs one scene and renders it. Parameters are tuned with an
// emulated rotary encoder.
type Model struct {
	sceneName string
	build     Builder
	engine    *engine.Engine
	energy    *metrics.KineticEnergy
	coverage  *metrics.Coverage
	encoder   *input.Encoder
	interval  time.Duration
	now       func() time.Time

	running    bool
	showHelp   bool
	showTrails bool
	theme      Theme
	err        error

	grid          [][]rgb.Color
	trails        *Trails
	canvas        *Canvas
	energyHistory []float64
	coverHistory  []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

// NewModel builds the scene and prepares the preview at fps frames per
// second.
func NewModel(sceneName string, build Builder, fps int) (Model, error) {
	if fps <= 0 {
		return Model{}, fmt.Errorf("viz: fps must be positive, got %d", fps)
	}
	m := Model{
		sceneName: sceneName,
		build:     build,
		encoder:   input.NewEncoder(0, 1, input.CW, input.NewButton(input.PullUp)),
		interval:  time.Second / time.Duration(fps),
		now:       time.Now,
		running:   true,
		theme:     Themes[0],
		trails:    NewTrails(trailLength),
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// load (re)builds the engine and forgets all history.
func (m *Model) load() error {
	e, err := m.build(m.sceneName)
	if err != nil {
		return err
	}
	m.energy = metrics.NewKineticEnergy()
	m.coverage = metrics.NewCoverage()
	e.AddMetric(m.energy)
	e.AddMetric(m.coverage)
	m.engine = e
	m.err = nil

	topo := e.Display().Strip().Topology()
	canvas, err := NewCanvas(topo.Columns()*2, topo.Rows())
	if err != nil {
		return err
	}
	m.canvas = canvas
	m.grid = make([][]rgb.Color, topo.Rows())
	for y := range m.grid {
		m.grid[y] = make([]rgb.Color, topo.Columns())
	}
	m.trails.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.coverHistory = m.coverHistory[:0]

	sc := e.Scene()
	m.params = sc.GetParams()
	m.initialParams = make(map[string]float64, len(m.params))
	m.paramKeys = make([]string, 0, len(m.params))
	for k, v := range m.params {
		m.initialParams[k] = v
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)
	if m.selected >= len(m.paramKeys) {
		m.selected = 0
	}
	m.encoder.SetValue(0)
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running {
				m.step()
			}
		case "r":
			if err := m.load(); err != nil {
				m.err = err
			}
		case "up", "k":
			m.turn(1)
		case "down", "j":
			m.turn(-1)
		case "enter":
			m.click(2 * input.Debounce)
		case "l":
			m.click(input.DefaultLongPress)
		case "tab":
			m.cycleParam(1)
		case "v":
			m.showTrails = !m.showTrails
		case "t":
			m.theme = nextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame and records its history. An engine error pauses
// the preview.
func (m *Model) step() {
	if m.err != nil {
		return
	}
	f, err := m.engine.Step()
	if err != nil {
		m.err = err
		m.running = false
		engine.Logger().Error("preview stopped", "scene", m.sceneName, "err", err)
		return
	}
	for y := range m.grid {
		for x := range m.grid[y] {
			m.grid[y][x] = f.Buffer.Color(x, y)
		}
	}
	for _, b := range f.Bodies {
		m.trails.Add(b.Name, geometry.PointOf(b.Mover.Position))
	}
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Last())
	m.coverHistory = appendCapped(m.coverHistory, m.coverage.Value())
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// turn feeds n encoder detents and scales the selected parameter by the
// resulting action.
func (m *Model) turn(n int) {
	m.encoder.Turn(n)
	switch m.encoder.Action() {
	case input.Increment:
		m.adjustParam(1 + paramStep)
	case input.Decrement:
		m.adjustParam(1 - paramStep)
	}
}

// click presses the encoder switch for d. One click selects the next
// parameter, a double click the first and a long press restores every
// parameter to its starting value.
func (m *Model) click(d time.Duration) {
	m.encoder.Button().Click(m.now(), d)
	switch n := m.encoder.Clicks(); {
	case n == input.LongPressState:
		m.restoreParams()
		m.encoder.ResetClicks()
	case n == 1:
		m.cycleParam(1)
	case n >= 2:
		m.selected = 0
		m.encoder.ResetClicks()
	}
}

func (m *Model) restoreParams() {
	for _, k := range m.paramKeys {
		v := m.initialParams[k]
		if err := m.engine.Scene().SetParam(k, v); err == nil {
			m.params[k] = v
		}
	}
}

func (m *Model) cycleParam(dir int) {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + dir + len(m.paramKeys)) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if val == 0 {
		// move off zero by one step
		val = factor - 1
	}
	if err := m.engine.Scene().SetParam(key, val); err != nil {
		engine.Logger().Debug("parameter rejected", "param", key, "value", val, "err", err)
		return
	}
	m.params[key] = val
}

// Selected is the name of the parameter the encoder adjusts.
func (m Model) Selected() string {
	if len(m.paramKeys) == 0 {
		return ""
	}
	return m.paramKeys[m.selected]
}

func (m Model) Params() map[string]float64 { return m.params }
func (m Model) Running() bool              { return m.running }
func (m Model) Err() error                 { return m.err }
func (m Model) Frame() int                 { return m.engine.FrameIndex() }

func (m Model) View() string {
	th := m.theme
	var view string
	if m.showTrails {
		m.trails.Draw(m.canvas)
		view = lipgloss.NewStyle().Foreground(th.Accent).Render(m.canvas.String())
	} else {
		view = RenderMatrix(m.grid, th)
	}
	left := matrixStyle.Render(view)

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render(strings.ToUpper(m.sceneName)) + "\n")
	status := "RUNNING"
	switch {
	case m.err != nil:
		status = "STOPPED: " + m.err.Error()
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(th.Warn).Render(status) + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Foreground(th.Accent).Render(chart) + "\n")
	}
	s.WriteString(label("Frame", fmt.Sprintf("%d", m.engine.FrameIndex()), th))
	energy := 0.0
	if n := len(m.energyHistory); n > 0 {
		energy = m.energyHistory[n-1]
	}
	s.WriteString(label("Energy", fmtFloat(energy), th))
	s.WriteString(label("Coverage", Sparkline(m.coverHistory, 20), th))
	s.WriteString(label("Encoder", fmt.Sprintf("%d %s", m.encoder.Value(), m.encoder.Action()), th))

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(label("  (none)", "", th))
	}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %s %.3f", k, paramBar(m.params[k], m.initialParams[k], 10), m.params[k])
		if i == m.selected {
			s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render("> "+line) + "\n")
		} else {
			s.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render("  "+line) + "\n")
		}
	}
	s.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render("\nSP:Pause R:Reset Q:Quit ?:Help\n↑↓:Encoder ⏎:Switch V:Trails"))

	right := statsStyle.BorderForeground(th.Muted).Render(s.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  Space    pause / resume          S      step while paused
  R        rebuild the scene       Q      quit
  Up/K     encoder clockwise       Down/J encoder counter-clockwise
  Enter    encoder switch          Tab    next parameter
  L        long press: restore     V      body trails
  T        cycle themes            ?      this help
`
