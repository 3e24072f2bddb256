package render

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/traffic-grid/core"
	"github.com/lixenwraith/traffic-grid/engine"
	"github.com/lixenwraith/traffic-grid/status"
)

// CellWidth is the number of terminal columns per grid cell, keeping cells roughly square
const CellWidth = 2

const (
	carGlyph    = '█'
	cursorLeft  = '['
	cursorRight = ']'
)

// Position addresses a grid cell
type Position struct {
	Row, Col int
}

// FrameState is the editor state drawn on top of the grid
type FrameState struct {
	Cursor     Position
	ShowCursor bool
	Brush      string
	Sound      bool
	Message    string
}

// TerminalRenderer draws a grid and a one-line status bar on a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen

	width, height int
	gridX, gridY  int
	rows, cols    int

	statTicks      *atomic.Int64
	statCars       *atomic.Int64
	statExitTotal  *atomic.Int64
	statSpawnTotal *atomic.Int64
	statDensity    *status.AtomicFloat
	statPaused     *atomic.Bool
}

// NewTerminalRenderer creates a renderer reading metrics from reg
func NewTerminalRenderer(screen tcell.Screen, reg *status.Registry) *TerminalRenderer {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &TerminalRenderer{
		screen:         screen,
		statTicks:      reg.Ints.Get(status.KeyTicks),
		statCars:       reg.Ints.Get(status.KeyCars),
		statExitTotal:  reg.Ints.Get(status.KeyExitTotal),
		statSpawnTotal: reg.Ints.Get(status.KeySpawnTotal),
		statDensity:    reg.Floats.Get(status.KeyDensity),
		statPaused:     reg.Bools.Get(status.KeyPaused),
	}
}

// RenderFrame draws g and the status bar, then shows the screen
// Caller must hold the simulation lock for the duration
func (r *TerminalRenderer) RenderFrame(g *engine.Grid, fs FrameState) {
	r.layout(g.Rows(), g.Columns())

	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	r.drawGrid(g)
	if fs.ShowCursor {
		r.drawCursor(g, fs.Cursor)
	}
	r.drawStatusBar(fs)

	r.screen.Show()
}

// layout centers the grid in the area above the status bar
func (r *TerminalRenderer) layout(rows, cols int) {
	r.width, r.height = r.screen.Size()
	r.rows, r.cols = rows, cols
	r.gridX = max(0, (r.width-cols*CellWidth)/2)
	r.gridY = max(0, (r.height-1-rows)/2)
}

// CellAt maps a screen coordinate to the grid cell drawn there, using the last frame's layout
func (r *TerminalRenderer) CellAt(x, y int) (Position, bool) {
	if x < r.gridX || y < r.gridY {
		return Position{}, false
	}
	p := Position{Row: y - r.gridY, Col: (x - r.gridX) / CellWidth}
	if p.Row >= r.rows || p.Col >= r.cols || y >= r.height-1 {
		return Position{}, false
	}
	return p, true
}

// ScreenPos returns the left screen column and the row of a grid cell
func (r *TerminalRenderer) ScreenPos(p Position) (x, y int) {
	return r.gridX + p.Col*CellWidth, r.gridY + p.Row
}

func (r *TerminalRenderer) drawGrid(g *engine.Grid) {
	g.Each(func(row, col int, c core.Cell) {
		x, y := r.ScreenPos(Position{Row: row, Col: col})
		if y >= r.height-1 {
			return
		}
		glyph, style := CellAppearance(c)
		r.screen.SetContent(x, y, glyph, nil, style)
		if c.IsOccupied() {
			r.screen.SetContent(x+1, y, glyph, nil, style)
		} else {
			r.screen.SetContent(x+1, y, ' ', nil, style)
		}
	})
}

// CellAppearance returns the leading glyph and style of a cell
func CellAppearance(c core.Cell) (rune, tcell.Style) {
	switch {
	case c.IsObstacle():
		return ' ', tcell.StyleDefault.Background(Tcell(c.Color()))
	case c.IsOccupied():
		return carGlyph, tcell.StyleDefault.Foreground(Tcell(c.Color())).Background(Tcell(LaneShade(c)))
	default:
		return laneArrow(c), tcell.StyleDefault.Foreground(RgbLaneMark).Background(Tcell(LaneShade(c)))
	}
}

func laneArrow(c core.Cell) rune {
	if c.Axis() == core.Horizontal {
		if c.Direction() == core.Backward {
			return '←'
		}
		return '→'
	}
	if c.Direction() == core.Backward {
		return '↑'
	}
	return '↓'
}

func (r *TerminalRenderer) drawCursor(g *engine.Grid, p Position) {
	cell, err := g.CellAt(p.Row, p.Col)
	if err != nil {
		return
	}
	_, style := CellAppearance(cell)
	style = style.Foreground(RgbCursor).Bold(true)

	x, y := r.ScreenPos(p)
	r.screen.SetContent(x, y, cursorLeft, nil, style)
	r.screen.SetContent(x+1, y, cursorRight, nil, style)
}

func (r *TerminalRenderer) drawStatusBar(fs FrameState) {
	y := r.height - 1
	if y < 0 {
		return
	}
	barStyle := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText)
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, barStyle)
	}

	x := 0
	if r.statPaused.Load() {
		x = r.drawText(x, y, " PAUSED ", barStyle.Background(RgbPausedBg).Foreground(RgbModeText))
	} else {
		x = r.drawText(x, y, " RUNNING ", barStyle.Background(RgbRunningBg).Foreground(RgbModeText))
	}

	audioBg := RgbAudioOff
	if fs.Sound {
		audioBg = RgbAudioOn
	}
	x = r.drawText(x, y, " ♪ ", barStyle.Background(audioBg).Foreground(RgbModeText))

	x = r.drawText(x, y, fmt.Sprintf(" tick %d  cars %d  in %d  out %d ",
		r.statTicks.Load(), r.statCars.Load(), r.statSpawnTotal.Load(), r.statExitTotal.Load()), barStyle)

	density := r.statDensity.Get()
	x = r.drawText(x, y, fmt.Sprintf(" density %.2f ", density),
		barStyle.Background(Tcell(DensityColor(density))).Foreground(RgbModeText))

	if fs.Brush != "" {
		x = r.drawText(x, y, " brush "+fs.Brush+" ", barStyle)
	}
	if fs.Message != "" {
		r.drawText(x+1, y, fs.Message, barStyle.Italic(true))
	}
}

// drawText writes s from x and returns the column after it, clipped to the screen
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
