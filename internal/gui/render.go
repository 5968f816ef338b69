package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/stablefluid/internal/render"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawDensity()
	a.drawHUD()
	rl.EndDrawing()
}

// drawDensity paints one Scale-pixel grey square per cell. Empty cells
// are left as background.
func (a *App) drawDensity() {
	d := a.Fluid.Density()
	s := int32(a.Scale)
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			g := render.Shade(d.At(x, y))
			if g == 0 {
				continue
			}
			rl.DrawRectangle(int32(x)*s, int32(y)*s, s, s, rl.NewColor(g, g, g, 255))
		}
	}
}

func (a *App) drawHUD() {
	top := int32(a.Fluid.Height() * a.Scale)
	rl.DrawRectangle(0, top, int32(a.Fluid.Width()*a.Scale), hudHeight, rl.NewColor(0, 0, 0, 255))

	col := ColText
	if !a.Running {
		col = ColTextDim
	}
	rl.DrawText(a.hudLine(), hudPadding, top+hudPadding, hudFontSize, col)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.Fluid.Width()*a.Scale)-60, top+hudPadding, hudFontSize, ColSelect)
}
