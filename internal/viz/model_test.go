package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/field"
)

func newModel(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset("calm")
	cfg.Grid = config.GridConfig{Width: 10, Height: 8}
	cfg.Emitters = nil
	m, err := NewModel("calm", cfg)
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	return m
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 0
	if _, err := NewModel("bad", cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestCursorClampsToGrid(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 20; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyRight}, key("j"))
	}
	if m.cursorX != 9 || m.cursorY != 7 {
		t.Errorf("expected cursor at (9,7), got (%d,%d)", m.cursorX, m.cursorY)
	}
	for i := 0; i < 20; i++ {
		m = press(m, key("h"), tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.cursorX != 0 || m.cursorY != 0 {
		t.Errorf("expected cursor at (0,0), got (%d,%d)", m.cursorX, m.cursorY)
	}
}

func TestInjectAtCursor(t *testing.T) {
	m := newModel(t)
	m = press(m, key(" "), key("d"), key("w"))

	x, y := m.cursorX, m.cursorY
	if got := m.fluid.Density().At(x, y); got != densityAmount {
		t.Errorf("expected density %f, got %f", densityAmount, got)
	}
	if m.fluid.VelocityX().At(x, y) != velocityAmount || m.fluid.VelocityY().At(x, y) != -velocityAmount {
		t.Error("expected velocity pushed right and up")
	}
}

func TestTickStepsUnlessPaused(t *testing.T) {
	m := newModel(t)
	m = press(m, TickMsg{}, TickMsg{})
	if m.tick != 2 || len(m.massHistory) != 2 {
		t.Errorf("expected 2 ticks recorded, got %d/%d", m.tick, len(m.massHistory))
	}

	m = press(m, key("p"), TickMsg{})
	if m.tick != 2 {
		t.Errorf("expected pause to hold tick at 2, got %d", m.tick)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected view to show PAUSED")
	}
}

func TestToggles(t *testing.T) {
	m := newModel(t)
	if m.fluid.Params().Project {
		t.Fatal("calm preset starts without projection")
	}
	m = press(m, key("o"), key("b"))
	if !m.fluid.Params().Project {
		t.Error("expected o to enable projection")
	}
	if !m.braille {
		t.Error("expected b to enable braille view")
	}

	before := m.pal.theme.Name
	m = press(m, key("t"))
	if m.pal.theme.Name == before {
		t.Error("expected t to change theme")
	}
}

func TestReset(t *testing.T) {
	m := newModel(t)
	m = press(m, key(" "), TickMsg{}, key("r"))
	if m.tick != 0 || m.fluid.Density().At(m.cursorX, m.cursorY) != 0 {
		t.Error("expected reset to clear the field and tick")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewModes(t *testing.T) {
	m := newModel(t)
	m = press(m, key(" "), TickMsg{})
	if !strings.Contains(m.View(), "CALM") {
		t.Error("expected title in view")
	}
	m = press(m, key("b"))
	if !strings.ContainsRune(m.View(), '⠀') && !strings.ContainsAny(m.View(), "⠁⠂⠄⡀⠈⠐⠠⢀") {
		t.Error("expected braille glyphs in view")
	}
}

func TestBraille(t *testing.T) {
	b := NewBraille(3, 5)
	if cols, rows := b.Size(); cols != 2 || rows != 2 {
		t.Fatalf("expected 2x2 chars, got %dx%d", cols, rows)
	}
	b.Set(0, 0)
	b.Set(1, 3)
	b.Set(9, 9)
	if b.Rune(0, 0) != 0x2800|0x1|0x80 {
		t.Errorf("unexpected braille rune %U", b.Rune(0, 0))
	}
	b.Reset()
	if b.Rune(0, 0) != 0x2800 {
		t.Error("expected reset to empty the bitmap")
	}
}

func TestBraillePlot(t *testing.T) {
	g := field.New(3, 5)
	g.Set(2, 4, 1)
	b := NewBraille(3, 5)
	b.Plot(g, 0.5)
	if b.Rune(1, 1) != 0x2800|0x1 {
		t.Errorf("expected the top-left dot of (1,1), got %U", b.Rune(1, 1))
	}
	if got := b.String(); got != "⠀⠀\n⠀⠁\n" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestThemeRamp(t *testing.T) {
	ramp := ThemeEmber.Ramp(10)
	if len(ramp) != 10 {
		t.Fatalf("expected 10 styles, got %d", len(ramp))
	}
	if ramp[0].GetForeground() != ThemeEmber.Ink {
		t.Errorf("expected ramp to start at ink, got %v", ramp[0].GetForeground())
	}
	if ramp[9].GetForeground() != ThemeEmber.Hot {
		t.Errorf("expected ramp to end hot, got %v", ramp[9].GetForeground())
	}
	if ThemeEmber.At(0.5) != ThemeEmber.Flow {
		t.Errorf("expected the midpoint to be flow, got %v", ThemeEmber.At(0.5))
	}
}

func TestBlendMidpoint(t *testing.T) {
	if got := blend("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Errorf("expected #808080, got %s", got)
	}
}

func TestSparkline(t *testing.T) {
	p := newPalette(ThemeSmoke, 4)
	if got := p.sparkline(nil, 3); got != "───" {
		t.Errorf("expected empty placeholder, got %q", got)
	}
	out := p.sparkline([]float64{0, 1, 2, 3, 4, 5}, 4)
	if !strings.ContainsRune(out, '█') || !strings.ContainsRune(out, '▁') {
		t.Errorf("expected lowest and highest bars, got %q", out)
	}
	if strings.Count(out, "▁")+strings.Count(out, "▃")+strings.Count(out, "▅")+strings.Count(out, "▆")+strings.Count(out, "█") < 4 {
		t.Errorf("expected 4 bars, got %q", out)
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("expected wrap to the first theme")
	}
}
