package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/field"
	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/metrics"
	"github.com/san-kum/stablefluid/internal/render"
	"github.com/san-kum/stablefluid/internal/sim"
)

const (
	historyCapacity = 600
	maxRecorded     = 600

	densityAmount  = 0.5
	velocityAmount = 2.0

	brailleThreshold = 0.05
	gifPath          = "fluid.gif"
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model owns the fluid for the life of the program. Every mutation
// happens inside Update.
type Model struct {
	fluid   *fluid.Fluid
	sources []sim.Source
	name    string
	dt      float64
	tick    int
	probe   *metrics.Probe

	cursorX, cursorY int
	running          bool
	braille          bool
	showHelp         bool
	pal              palette

	last        metrics.Summary
	massHistory []float64
	divHistory  []float64

	recording bool
	frames    []field.Reader
	status    string
}

func NewModel(name string, cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	f, err := fluid.New(cfg.Params())
	if err != nil {
		return Model{}, err
	}
	return Model{
		fluid:       f,
		sources:     sim.EmittersFromConfig(cfg),
		name:        name,
		dt:          cfg.Dt,
		probe:       &metrics.Probe{},
		cursorX:     cfg.Grid.Width / 2,
		cursorY:     cfg.Grid.Height / 2,
		running:     true,
		braille:     cfg.Grid.Width > 96,
		pal:         newPalette(GetTheme(cfg.Render.Theme), len(render.Ramp)),
		massHistory: make([]float64, 0, historyCapacity),
		divHistory:  make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(0, -1)
		case "down", "j":
			m.moveCursor(0, 1)
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case " ", "space":
			m.fluid.AddDensity(m.cursorX, m.cursorY, densityAmount)
		case "w":
			m.fluid.AddVelocity(m.cursorX, m.cursorY, 0, -velocityAmount)
		case "s":
			m.fluid.AddVelocity(m.cursorX, m.cursorY, 0, velocityAmount)
		case "a":
			m.fluid.AddVelocity(m.cursorX, m.cursorY, -velocityAmount, 0)
		case "d":
			m.fluid.AddVelocity(m.cursorX, m.cursorY, velocityAmount, 0)
		case "p":
			m.running = !m.running
		case "o":
			m.fluid.SetProjection(!m.fluid.Params().Project)
		case "r":
			m.reset()
		case "t":
			m.pal = newPalette(NextTheme(m.pal.theme), len(render.Ramp))
		case "b":
			m.braille = !m.braille
		case "g":
			if m.recording {
				m.status = m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]field.Reader, 0)
				m.status = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// moveCursor keeps the cursor on the grid so injections always satisfy the
// solver's bounds precondition.
func (m *Model) moveCursor(dx, dy int) {
	m.cursorX = clampInt(m.cursorX+dx, 0, m.fluid.Width()-1)
	m.cursorY = clampInt(m.cursorY+dy, 0, m.fluid.Height()-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// step advances the fluid by one tick.
func (m *Model) step() {
	for _, s := range m.sources {
		s.Apply(m.fluid, m.tick)
	}
	m.fluid.Step(m.dt)
	m.tick++

	if !m.fluid.Valid() {
		m.fluid.Reset()
		m.status = fmt.Sprintf("non-finite state at tick %d, reset", m.tick)
	}

	m.last = m.probe.Measure(m.fluid)
	m.massHistory = appendCapped(m.massHistory, m.last.Mass)
	m.divHistory = appendCapped(m.divHistory, m.last.Divergence)

	if m.recording && len(m.frames) < maxRecorded {
		vals := m.fluid.DensityValues(nil)
		m.frames = append(m.frames, field.FromValues(m.fluid.Width(), m.fluid.Height(), vals))
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset empties the field and restarts the tick counter, so timed
// emitters fire again.
func (m *Model) reset() {
	m.fluid.Reset()
	m.tick = 0
	m.last = metrics.Summary{}
	m.massHistory = m.massHistory[:0]
	m.divHistory = m.divHistory[:0]
}

func (m *Model) saveGIF() string {
	if len(m.frames) == 0 {
		return "nothing recorded"
	}
	f, err := os.Create(gifPath)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := render.WriteGIF(f, m.frames, 4, 2); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("saved %d frames to %s", len(m.frames), gifPath)
}

// View renders the TUI interface.
func (m Model) View() string {
	var grid string
	if m.braille {
		b := NewBraille(m.fluid.Width(), m.fluid.Height())
		b.Plot(m.fluid.Density(), brailleThreshold)
		grid = m.pal.braille.Render(b.String())
	} else {
		grid = m.renderGrid()
	}
	canvasView := canvasStyle.Render(grid)

	var s strings.Builder
	s.WriteString(m.pal.title(strings.ToUpper(m.name)) + "\n")

	status := m.pal.running.Render("RUNNING")
	if !m.running {
		status = m.pal.paused.Render("PAUSED")
	}
	if m.recording {
		status += " " + m.pal.recording.Render(fmt.Sprintf("REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	if len(m.massHistory) > 1 {
		chart := asciigraph.Plot(m.massHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Mass"))
		s.WriteString(m.pal.graph.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Div") + m.pal.sparkline(m.divHistory, 24) + "\n\n")

	proj := "off"
	if m.fluid.Params().Project {
		proj = "on"
	}
	rows := []struct{ label, value string }{
		{"Tick", fmt.Sprintf("%d", m.tick)},
		{"Time", fmt.Sprintf("%.2fs", float64(m.tick)*m.dt)},
		{"Mass", fmt.Sprintf("%.4f", m.last.Mass)},
		{"Peak", fmt.Sprintf("%.4f", m.last.Peak)},
		{"Energy", fmt.Sprintf("%.4f", m.last.Energy)},
		{"Divergence", fmt.Sprintf("%.2e", m.last.Divergence)},
		{"Projection", proj},
		{"Cursor", fmt.Sprintf("(%d,%d) %.3f", m.cursorX, m.cursorY, m.fluid.Density().At(m.cursorX, m.cursorY))},
		{"Grid", fmt.Sprintf("%dx%d", m.fluid.Width(), m.fluid.Height())},
		{"Theme", m.pal.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Ink WASD:Push P:Pause\nO:Project R:Reset T:Theme\nB:Braille G:Record ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows/HJKL - Move cursor           ║
║  Space       - Inject density        ║
║  W A S D     - Push velocity         ║
║  P           - Pause/Resume          ║
║  O           - Toggle projection     ║
║  R           - Reset field           ║
║  T           - Cycle themes          ║
║  B           - Toggle Braille view   ║
║  G           - Toggle GIF recording  ║
║  ?           - Toggle this help      ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// renderGrid draws two glyphs per cell so cells look roughly square. Runs
// of equal shade share one styled span.
func (m Model) renderGrid() string {
	d := m.fluid.Density()
	w, h := d.Width(), d.Height()
	levels := len(render.Ramp) - 1

	var sb strings.Builder
	for y := 0; y < h; y++ {
		runLevel, runLen := -1, 0
		flush := func() {
			if runLen == 0 {
				return
			}
			glyph := strings.Repeat(string(render.Ramp[runLevel]), 2*runLen)
			sb.WriteString(m.pal.ramp[runLevel].Render(glyph))
			runLen = 0
		}
		for x := 0; x < w; x++ {
			if x == m.cursorX && y == m.cursorY {
				flush()
				sb.WriteString(m.pal.cursor.Render("[]"))
				runLevel = -1
				continue
			}
			level := int(render.Shade(d.At(x, y))) * levels / 255
			if level != runLevel {
				flush()
				runLevel = level
			}
			runLen++
		}
		flush()
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Run starts the viewer in the alternate screen and blocks until quit.
func Run(name string, cfg *config.Config) error {
	m, err := NewModel(name, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
