// Package render draws the tray, die and HUD on a tcell screen
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dice-tray/engine"
	"github.com/lixenwraith/dice-tray/physics"
	"github.com/lixenwraith/dice-tray/status"
)

// Layout rows: HUD on top, help line at the bottom, tray in between
const (
	hudRows    = 1
	footerRows = 1
	borderSize = 1

	// cellAspect is terminal cell height over width
	cellAspect = 2.0
)

// Frame is everything one render pass needs
type Frame struct {
	Pose    physics.Pose
	Radius  float64
	View    engine.View
	Phase   engine.Phase
	TopFace int
	Faces   int
	Die     string

	// Result is shown while non-zero
	Result  int
	Metrics []status.Metric
	Help    string
}

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell x, y lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	theme  Theme
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen, theme Theme) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, theme: theme, width: w, height: h}
}

// Resize updates the cached screen size
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// TrayRect returns the tray interior in cells; pointer device coordinates are relative to it
func (r *TerminalRenderer) TrayRect() Rect {
	rect := Rect{
		X: borderSize,
		Y: hudRows + borderSize,
		W: r.width - 2*borderSize,
		H: r.height - hudRows - footerRows - 2*borderSize,
	}
	if rect.W < 0 {
		rect.W = 0
	}
	if rect.H < 0 {
		rect.H = 0
	}
	return rect
}

// ToDevice converts a screen cell to tray-interior device coordinates at the cell center
func (r *TerminalRenderer) ToDevice(x, y int) (float64, float64) {
	rect := r.TrayRect()
	return float64(x-rect.X) + 0.5, float64(y-rect.Y) + 0.5
}

// RenderFrame draws one complete frame and shows it
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(RgbBackground)
	r.fill(Rect{0, 0, r.width, r.height}, ' ', base)

	rect := r.TrayRect()
	r.drawTray(rect)
	if f.View.Valid() && rect.W > 0 && rect.H > 0 {
		r.drawDie(rect, f)
	}
	r.drawHud(f, base)
	r.drawFooter(f.Help, base)
	if f.Result > 0 {
		r.drawResult(rect, f.Result, f.Faces)
	}

	r.screen.Show()
}

// RenderUnavailable replaces the tray with a setup failure notice
func (r *TerminalRenderer) RenderUnavailable(err error) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(RgbBackground)
	r.fill(Rect{0, 0, r.width, r.height}, ' ', base)

	style := base.Foreground(RgbUnavailable).Bold(true)
	lines := []string{"dice tray unavailable"}
	if err != nil {
		lines = append(lines, err.Error())
	}
	lines = append(lines, "press q to quit")

	top := r.height/2 - len(lines)/2
	for i, line := range lines {
		r.drawText((r.width-len([]rune(line)))/2, top+i, line, style)
	}
	r.screen.Show()
}

func (r *TerminalRenderer) drawTray(rect Rect) {
	felt := tcell.StyleDefault.Background(r.theme.Felt)
	rim := tcell.StyleDefault.Background(RgbTrayBorder).Foreground(dim(RgbTrayBorder, 0.5))

	r.fill(Rect{rect.X - 1, rect.Y - 1, rect.W + 2, rect.H + 2}, ' ', rim)
	r.fill(rect, ' ', felt)
}

// drawDie draws the floor shadow and the body disc with the live top face
// Higher bodies draw larger and offset from their shadow
func (r *TerminalRenderer) drawDie(rect Rect, f Frame) {
	pos := f.Pose.Position
	cx, cy := f.View.ToDevice(pos.X, pos.Z)
	cellsPerUnit := f.View.Width / (2 * f.View.Bounds.HalfWidth)

	lift := math.Max(0, pos.Y-f.Radius)
	grow := 1 + lift/(4*f.Radius)
	radiusX := math.Max(1, f.Radius*cellsPerUnit*grow)
	radiusY := math.Max(0.5, radiusX/cellAspect)

	shadow := tcell.StyleDefault.Background(dim(r.theme.Felt, 0.6))
	r.disc(rect, cx, cy, f.Radius*cellsPerUnit, math.Max(0.5, f.Radius*cellsPerUnit/cellAspect), shadow)

	bodyY := cy - lift*cellsPerUnit/cellAspect
	body := tcell.StyleDefault.Background(r.theme.Die).Foreground(RgbDieText)
	if f.Pose.Mode == physics.ModeKinematic {
		body = body.Bold(true)
	}
	r.disc(rect, cx, bodyY, radiusX, radiusY, body)

	label := fmt.Sprintf("%d", f.TopFace)
	lx := rect.X + int(math.Floor(cx)) - (len(label)-1)/2
	ly := rect.Y + int(math.Floor(bodyY))
	r.drawClipped(rect, lx, ly, label, body.Bold(true))
}

// disc fills the ellipse centered at device cx, cy inside rect
func (r *TerminalRenderer) disc(rect Rect, cx, cy, rx, ry float64, style tcell.Style) {
	x0 := int(math.Floor(cx - rx))
	x1 := int(math.Ceil(cx + rx))
	y0 := int(math.Floor(cy - ry))
	y1 := int(math.Ceil(cy + ry))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			sx, sy := rect.X+x, rect.Y+y
			if rect.Contains(sx, sy) {
				r.screen.SetContent(sx, sy, ' ', nil, style)
			}
		}
	}
}

func (r *TerminalRenderer) drawHud(f Frame, base tcell.Style) {
	style := base.Foreground(RgbHudText)
	parts := []string{
		f.Die,
		fmt.Sprintf("top %d/%d", f.TopFace, f.Faces),
		f.Phase.String(),
	}
	for _, m := range f.Metrics {
		if m.Value == "" {
			continue
		}
		parts = append(parts, m.Name+"="+m.Value)
	}
	r.drawText(0, 0, truncate(strings.Join(parts, "  "), r.width), style)
}

func (r *TerminalRenderer) drawFooter(help string, base tcell.Style) {
	if r.height < hudRows+footerRows {
		return
	}
	r.drawText(0, r.height-1, truncate(help, r.width), base.Foreground(RgbHudText))
}

func (r *TerminalRenderer) drawResult(rect Rect, face, faces int) {
	text := fmt.Sprintf(" rolled %d of %d ", face, faces)
	style := tcell.StyleDefault.Background(RgbResultBg).Foreground(RgbResultText).Bold(true)
	x := rect.X + (rect.W-len(text))/2
	r.drawClipped(rect, x, rect.Y, text, style)
}

func (r *TerminalRenderer) fill(rect Rect, ch rune, style tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawClipped(rect Rect, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		if rect.Contains(x+i, y) {
			r.screen.SetContent(x+i, y, ch, nil, style)
		}
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width < 0 {
		return ""
	}
	if len(runes) > width {
		return string(runes[:width])
	}
	return s
}
