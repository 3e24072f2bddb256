package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/traffic-grid/core"
)

// Terminal color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbLaneMark   = tcell.NewRGBColor(150, 150, 150) // Arrow glyph on empty roads
	RgbCursor     = tcell.NewRGBColor(255, 165, 0)   // Orange

	// Status bar
	RgbStatusBar  = tcell.NewRGBColor(40, 42, 54)
	RgbStatusText = tcell.NewRGBColor(220, 220, 220)
	RgbRunningBg  = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbPausedBg   = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbModeText   = tcell.NewRGBColor(0, 0, 0)
	RgbAudioOn    = tcell.NewRGBColor(0, 200, 0)
	RgbAudioOff   = tcell.NewRGBColor(200, 0, 0)
)

// Tcell converts an engine color to a terminal color
func Tcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
