package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colours the density field from Ink (thin) through Flow to Hot
// (dense). Title, Cursor and Alert decorate the panel.
type Theme struct {
	Name   string
	Ink    lipgloss.Color
	Flow   lipgloss.Color
	Hot    lipgloss.Color
	Title  lipgloss.Color
	Cursor lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeSmoke = Theme{
		Name: "smoke", Ink: "#3a3a3a", Flow: "#9a9a9a", Hot: "#ffffff",
		Title: "#d0d0d0", Cursor: "#ff5f87", Alert: "#ff5f5f",
	}
	ThemeInk = Theme{
		Name: "ink", Ink: "#10243e", Flow: "#2f6fb0", Hot: "#bfe3ff",
		Title: "#7fb8f0", Cursor: "#ffd75f", Alert: "#ff5f5f",
	}
	ThemeEmber = Theme{
		Name: "ember", Ink: "#3b0d0d", Flow: "#d2481b", Hot: "#ffe08a",
		Title: "#ff9f43", Cursor: "#5fd7ff", Alert: "#ff3b3b",
	}
	ThemeAurora = Theme{
		Name: "aurora", Ink: "#1b1035", Flow: "#2ec4b6", Hot: "#f4ff9b",
		Title: "#9b5de5", Cursor: "#ff70a6", Alert: "#ff4d6d",
	}
	ThemePhosphor = Theme{
		Name: "phosphor", Ink: "#002200", Flow: "#00aa00", Hot: "#aaffaa",
		Title: "#00ff00", Cursor: "#ffff00", Alert: "#ff0000",
	}

	Themes = []Theme{ThemeSmoke, ThemeInk, ThemeEmber, ThemeAurora, ThemePhosphor}
)

// Ramp returns n foreground styles from Ink to Hot via Flow. Index 0 is
// the thinnest.
func (t Theme) Ramp(n int) []lipgloss.Style {
	out := make([]lipgloss.Style, n)
	for i := range out {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.NewStyle().Foreground(t.At(f))
	}
	return out
}

// At samples the Ink-Flow-Hot gradient at f in [0, 1].
func (t Theme) At(f float64) lipgloss.Color {
	if f <= 0.5 {
		return blend(t.Ink, t.Flow, f*2)
	}
	return blend(t.Flow, t.Hot, (f-0.5)*2)
}

// blend mixes two hex colours in RGB. Endpoints come back unchanged.
func blend(a, b lipgloss.Color, f float64) lipgloss.Color {
	switch {
	case f <= 0:
		return a
	case f >= 1:
		return b
	}
	ca, errA := colorful.Hex(string(a))
	cb, errB := colorful.Hex(string(b))
	if errA != nil || errB != nil {
		return a
	}
	return lipgloss.Color(ca.BlendRgb(cb, f).Clamped().Hex())
}

// GetTheme looks a theme up by name, falling back to smoke.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSmoke
}

// NextTheme returns the theme after current in Themes, wrapping around.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
