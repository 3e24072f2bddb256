package input

import "github.com/lixenwraith/traffic-grid/render"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // Esc, q, Ctrl+C
	IntentTogglePause // Space
	IntentToggleSound // m
	IntentResize      // Terminal resize event

	// Simulation commands, paused only
	IntentStep       // n
	IntentClearCars  // c
	IntentRandomFill // r
	IntentClearGrid  // Tab

	// Brush and cursor
	IntentBrush  // arrows, g
	IntentCursor // h,j,k,l

	// Cell edits, paused only
	IntentPaint     // p at cursor, left mouse at pointer
	IntentToggleCar // x at cursor, right mouse at pointer
)

// Intent is a decoded input event
type Intent struct {
	Type  IntentType
	Brush BrushKind

	// Cursor delta for IntentCursor
	DRow, DCol int

	// Target cell for pointer intents; keyboard edits use the cursor
	Pos     render.Position
	Pointer bool
}

// requiresPause reports whether the intent is a whole-grid command
// Single-cell edits (paint, toggle car) apply while running
func (t IntentType) requiresPause() bool {
	switch t {
	case IntentStep, IntentClearCars, IntentRandomFill, IntentClearGrid:
		return true
	}
	return false
}
