package input

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/traffic-grid/core"
	"github.com/lixenwraith/traffic-grid/engine"
	"github.com/lixenwraith/traffic-grid/render"
)

const msgPauseToEdit = "pause (space) to edit"

// ScreenMapper resolves pointer coordinates to grid cells
type ScreenMapper interface {
	CellAt(x, y int) (render.Position, bool)
}

// Editor turns terminal events into simulation commands and grid edits
// All methods run on the UI goroutine; grid access goes through the simulation lock
type Editor struct {
	sim    *engine.Simulation
	mapper ScreenMapper
	keys   *KeyTable
	logger *log.Logger

	obstacle core.RGB
	seedProb float64

	brush      BrushKind
	cursor     render.Position
	showCursor bool
	message    string

	lastButtons tcell.ButtonMask
	onSound     func() bool
	sound       bool
}

// NewEditor binds an editor to sim; seedProb is the occupancy of the random fill command
func NewEditor(sim *engine.Simulation, mapper ScreenMapper, obstacle core.RGB, seedProb float64, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Editor{
		sim:      sim,
		mapper:   mapper,
		keys:     DefaultKeyTable(),
		logger:   logger,
		obstacle: obstacle,
		seedProb: seedProb,
		brush:    BrushRoadRight,
	}
}

// OnToggleSound registers the sound switch; fn returns the new enabled state
func (e *Editor) OnToggleSound(fn func() bool, enabled bool) {
	e.onSound = fn
	e.sound = enabled
}

// HandleEvent processes one terminal event, returns false to quit
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return e.Apply(e.keys.Lookup(ev.Key(), ev.Rune()))
	case *tcell.EventMouse:
		x, y := ev.Position()
		return e.Apply(e.TranslateMouse(x, y, ev.Buttons()))
	case *tcell.EventResize:
		return e.Apply(Intent{Type: IntentResize})
	}
	return true
}

// TranslateMouse decodes pointer state: left paints while held, right toggles a car on press
func (e *Editor) TranslateMouse(x, y int, buttons tcell.ButtonMask) Intent {
	pressed := buttons &^ e.lastButtons
	e.lastButtons = buttons

	pos, ok := e.mapper.CellAt(x, y)
	if !ok {
		return Intent{}
	}
	switch {
	case buttons&tcell.Button1 != 0:
		return Intent{Type: IntentPaint, Pos: pos, Pointer: true}
	case pressed&tcell.Button2 != 0:
		return Intent{Type: IntentToggleCar, Pos: pos, Pointer: true}
	}
	return Intent{}
}

// Apply executes a decoded intent, returns false to quit
func (e *Editor) Apply(in Intent) bool {
	if in.Type == IntentNone || in.Type == IntentResize {
		return true
	}
	e.message = ""

	if in.Type.requiresPause() && !e.sim.IsPaused() {
		e.message = msgPauseToEdit
		return true
	}

	switch in.Type {
	case IntentQuit:
		return false

	case IntentTogglePause:
		if e.sim.TogglePause() {
			e.message = "paused"
		}

	case IntentToggleSound:
		if e.onSound == nil {
			e.message = "sound unavailable"
			break
		}
		e.sound = e.onSound()

	case IntentStep:
		r := e.sim.Step()
		e.logger.Debug("manual step", "tick", r.Tick, "cars", r.Cars)

	case IntentClearCars:
		e.sim.RunSafe(func(g *engine.Grid) { g.ClearCars() })
		e.message = "cars cleared"

	case IntentRandomFill:
		e.sim.RunSafe(func(g *engine.Grid) { g.SeedRandomly(e.seedProb) })

	case IntentClearGrid:
		e.sim.RunSafe(func(g *engine.Grid) { g.Reset(core.NewObstacle(e.obstacle)) })
		e.message = "grid cleared"

	case IntentBrush:
		e.brush = in.Brush

	case IntentCursor:
		e.moveCursor(in.DRow, in.DCol)

	case IntentPaint:
		e.paint(e.target(in))

	case IntentToggleCar:
		e.toggleCar(e.target(in))
	}
	return true
}

func (e *Editor) target(in Intent) render.Position {
	if in.Pointer {
		e.cursor = in.Pos
		return in.Pos
	}
	return e.cursor
}

func (e *Editor) moveCursor(dRow, dCol int) {
	e.showCursor = true
	e.sim.View(func(g *engine.Grid) {
		e.cursor.Row = min(max(e.cursor.Row+dRow, 0), g.Rows()-1)
		e.cursor.Col = min(max(e.cursor.Col+dCol, 0), g.Columns()-1)
	})
}

func (e *Editor) paint(p render.Position) {
	tmpl, ok := e.brush.Cell(e.obstacle)
	if !ok {
		return
	}
	var err error
	e.sim.RunSafe(func(g *engine.Grid) {
		// Repainting a lane with its own layout keeps the car on it
		if cur, cerr := g.CellAt(p.Row, p.Col); cerr == nil && cur.SameLayout(tmpl) {
			return
		}
		err = g.SetCell(p.Row, p.Col, tmpl)
	})
	if err != nil {
		e.logger.Debug("paint rejected", "row", p.Row, "col", p.Col, "err", err)
	}
}

func (e *Editor) toggleCar(p render.Position) {
	e.sim.RunSafe(func(g *engine.Grid) {
		c, err := g.CellAt(p.Row, p.Col)
		switch {
		case err != nil:
		case c.IsOccupied():
			g.RemoveCar(p.Row, p.Col)
		case !g.InsertCar(p.Row, p.Col):
			e.message = "no road here"
		}
	})
}

// Brush returns the active brush
func (e *Editor) Brush() BrushKind { return e.brush }

// Cursor returns the keyboard cursor cell
func (e *Editor) Cursor() render.Position { return e.cursor }

// Message returns the feedback of the last command
func (e *Editor) Message() string { return e.message }

// FrameState exports the editor overlay for the renderer
func (e *Editor) FrameState() render.FrameState {
	return render.FrameState{
		Cursor:     e.cursor,
		ShowCursor: e.showCursor,
		Brush:      e.brush.String(),
		Sound:      e.sound,
		Message:    e.message,
	}
}
