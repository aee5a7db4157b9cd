package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions
var (
	RgbBackground  = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbTrayFelt    = tcell.NewRGBColor(46, 107, 58)   // Default felt
	RgbTrayBorder  = tcell.NewRGBColor(120, 84, 48)   // Wood rim
	RgbDieBody     = tcell.NewRGBColor(245, 245, 220) // Ivory
	RgbDieText     = tcell.NewRGBColor(20, 20, 20)    // Pips
	RgbShadow      = tcell.NewRGBColor(28, 64, 35)    // Felt in shade
	RgbHudText     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbResultBg    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbResultText  = tcell.NewRGBColor(0, 0, 0)
	RgbUnavailable = tcell.NewRGBColor(255, 80, 80) // Normal Red
)

// Theme holds the configurable colors
type Theme struct {
	Die  tcell.Color
	Felt tcell.Color
}

// DefaultTheme returns the built-in colors
func DefaultTheme() Theme {
	return Theme{Die: RgbDieBody, Felt: RgbTrayFelt}
}

// ParseColor resolves a color name or #rrggbb, returning fallback when unknown
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// ThemeFromStrings builds a theme from config strings
func ThemeFromStrings(die, felt string) Theme {
	def := DefaultTheme()
	return Theme{
		Die:  ParseColor(die, def.Die),
		Felt: ParseColor(felt, def.Felt),
	}
}

// dim scales a color toward black by f in [0,1]
func dim(c tcell.Color, f float64) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
