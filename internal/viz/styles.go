package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout styles do not depend on the theme.
var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// palette holds the theme-derived styles of one Model.
type palette struct {
	theme     Theme
	ramp      []lipgloss.Style
	spark     []lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	cursor    lipgloss.Style
	braille   lipgloss.Style
	graph     lipgloss.Style
}

func newPalette(t Theme, levels int) palette {
	bold := lipgloss.NewStyle().Bold(true)
	return palette{
		theme:     t,
		ramp:      t.Ramp(levels),
		spark:     t.Ramp(len(sparkBars)),
		running:   bold.Foreground(t.Hot),
		paused:    bold.Foreground(t.Ink),
		recording: bold.Foreground(t.Alert).Blink(true),
		cursor:    bold.Foreground(t.Cursor),
		braille:   lipgloss.NewStyle().Foreground(t.Flow),
		graph:     graphStyle.Foreground(t.Flow),
	}
}

// title shades text from the theme's Title colour to Hot, one rune at a
// time.
func (p palette) title(text string) string {
	runes := []rune(text)
	var sb strings.Builder
	for i, r := range runes {
		f := 0.0
		if len(runes) > 1 {
			f = float64(i) / float64(len(runes)-1)
		}
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(blend(p.theme.Title, p.theme.Hot, f)).Render(string(r)))
	}
	return sb.String()
}

var sparkBars = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the last width values, bar height and colour both
// following the value's position between the window's min and max.
func (p palette) sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	top := len(sparkBars) - 1
	var sb strings.Builder
	for _, v := range values {
		i := int((v - lo) / span * float64(top))
		i = max(0, min(top, i))
		sb.WriteString(p.spark[i].Render(string(sparkBars[i])))
	}
	return sb.String()
}
