package engine

import (
	"github.com/lixenwraith/dice-tray/physics"
)

// View maps device coordinates onto the tray floor
// The device rectangle [0,Width]x[0,Height] spans the whole tray; device Y grows toward +Z
type View struct {
	Width, Height float64
	Bounds        physics.Bounds
}

// NewView creates a view for a device of the given size
func NewView(width, height float64, bounds physics.Bounds) View {
	return View{Width: width, Height: height, Bounds: bounds}
}

// Valid reports whether the view can project
func (v View) Valid() bool {
	return v.Width > 0 && v.Height > 0 && v.Bounds.HalfWidth > 0 && v.Bounds.HalfDepth > 0
}

// ToTray converts a device point to tray X, Z
func (v View) ToTray(x, y float64) (tx, tz float64) {
	tx = (x/v.Width*2 - 1) * v.Bounds.HalfWidth
	tz = (y/v.Height*2 - 1) * v.Bounds.HalfDepth
	return tx, tz
}

// ToDevice converts tray X, Z to a device point
func (v View) ToDevice(tx, tz float64) (x, y float64) {
	x = (tx/v.Bounds.HalfWidth + 1) / 2 * v.Width
	y = (tz/v.Bounds.HalfDepth + 1) / 2 * v.Height
	return x, y
}
