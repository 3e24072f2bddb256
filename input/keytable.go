package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/traffic-grid/core"
)

// BrushKind selects the cell template painted by the editor
type BrushKind uint8

const (
	BrushNone BrushKind = iota
	BrushObstacle
	BrushRoadUp    // vertical backward
	BrushRoadDown  // vertical forward
	BrushRoadLeft  // horizontal backward
	BrushRoadRight // horizontal forward
)

func (b BrushKind) String() string {
	switch b {
	case BrushObstacle:
		return "obstacle"
	case BrushRoadUp:
		return "road ↑"
	case BrushRoadDown:
		return "road ↓"
	case BrushRoadLeft:
		return "road ←"
	case BrushRoadRight:
		return "road →"
	default:
		return "none"
	}
}

// Cell returns the template for the brush; obstacle brushes use the given color
func (b BrushKind) Cell(obstacle core.RGB) (core.Cell, bool) {
	switch b {
	case BrushObstacle:
		return core.NewObstacle(obstacle), true
	case BrushRoadUp:
		return core.NewRoad(core.Vertical, core.Backward), true
	case BrushRoadDown:
		return core.NewRoad(core.Vertical, core.Forward), true
	case BrushRoadLeft:
		return core.NewRoad(core.Horizontal, core.Backward), true
	case BrushRoadRight:
		return core.NewRoad(core.Horizontal, core.Forward), true
	}
	return core.Cell{}, false
}

// KeyEntry describes a key's effect without function pointers
type KeyEntry struct {
	Intent     IntentType
	Brush      BrushKind
	DRow, DCol int
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Tab, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyTab:    {Intent: IntentClearGrid},
			tcell.KeyUp:     {Intent: IntentBrush, Brush: BrushRoadUp},
			tcell.KeyDown:   {Intent: IntentBrush, Brush: BrushRoadDown},
			tcell.KeyLeft:   {Intent: IntentBrush, Brush: BrushRoadLeft},
			tcell.KeyRight:  {Intent: IntentBrush, Brush: BrushRoadRight},
		},
		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			' ': {Intent: IntentTogglePause},
			'n': {Intent: IntentStep},
			'c': {Intent: IntentClearCars},
			'r': {Intent: IntentRandomFill},
			'g': {Intent: IntentBrush, Brush: BrushObstacle},
			'm': {Intent: IntentToggleSound},
			'p': {Intent: IntentPaint},
			'x': {Intent: IntentToggleCar},
			'h': {Intent: IntentCursor, DCol: -1},
			'l': {Intent: IntentCursor, DCol: 1},
			'k': {Intent: IntentCursor, DRow: -1},
			'j': {Intent: IntentCursor, DRow: 1},
		},
	}
}

// Lookup resolves a key event into an intent
func (t *KeyTable) Lookup(key tcell.Key, r rune) Intent {
	var entry KeyEntry
	var ok bool
	if key == tcell.KeyRune {
		entry, ok = t.Runes[r]
	} else {
		entry, ok = t.SpecialKeys[key]
	}
	if !ok {
		return Intent{}
	}
	return Intent{Type: entry.Intent, Brush: entry.Brush, DRow: entry.DRow, DCol: entry.DCol}
}
