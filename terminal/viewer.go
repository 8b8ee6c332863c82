// Package terminal is an interactive text-mode view of a routed scene.
// Components can be selected and dragged with the keyboard while every
// wire is re-routed live.
package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"wired/canvas"
	"wired/core"
	"wired/render"
	"wired/reroute"
)

var (
	styleDefault  = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
	styleBlocked  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Viewer draws a router's scene on a tcell screen and turns key presses
// into scene edits.
//
// Keys:
//
//	Tab / Shift-Tab  select next / previous component
//	arrows           move the selection one grid step
//	u / U            undo / redo a move
//	r                re-route every wire from scratch
//	s                save (when Save is set)
//	q, Esc, Ctrl-C   quit
type Viewer struct {
	screen   tcell.Screen
	router   *reroute.Router
	filename string
	opts     render.Options

	// Save persists the scene. Nil disables the s key.
	Save func() error

	history  *history
	selected int
	status   string
}

// NewViewer creates a viewer. The screen must already be initialised.
func NewViewer(screen tcell.Screen, router *reroute.Router, filename string) *Viewer {
	opts := render.DefaultOptions()
	opts.Margin = 2 * opts.CellSize
	v := &Viewer{
		screen:   screen,
		router:   router,
		filename: filename,
		opts:     opts,
		history:  newHistory(historySize),
	}
	v.history.Save(v.layout())
	v.fitViewport()
	return v
}

// fitViewport anchors the view on the scene's top-left corner and sizes it
// to the screen.
func (v *Viewer) fitViewport() {
	origin := v.opts.Viewport
	if origin.Empty() {
		b := v.router.Frame().Bounds(v.opts.Margin)
		origin = core.Rect{X: b.X, Y: b.Y}
	}
	w, h := v.screen.Size()
	v.opts.Viewport = core.Rect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  float64(max(w-1, 1)) * v.opts.CellSize,
		Height: float64(max(h-2, 1)) * v.opts.CellSize,
	}
}

// Selected returns the id of the selected component, or "" when the scene
// has none.
func (v *Viewer) Selected() string {
	comps := v.router.Scene().Components()
	if len(comps) == 0 {
		return ""
	}
	v.selected = (v.selected%len(comps) + len(comps)) % len(comps)
	return comps[v.selected].ID
}

// Run draws and handles events until the user quits. It finalises the
// screen before returning.
func (v *Viewer) Run() error {
	defer v.screen.Fini()
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.HandleEvent(ev) {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent applies one event. It returns false when the viewer should
// exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.fitViewport()
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	step := v.router.Planner().Options().GridStep
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.selected++
		v.status = ""
	case tcell.KeyBacktab:
		v.selected--
		v.status = ""
	case tcell.KeyLeft:
		v.nudge(core.Pt(-step, 0))
	case tcell.KeyRight:
		v.nudge(core.Pt(step, 0))
	case tcell.KeyUp:
		v.nudge(core.Pt(0, -step))
	case tcell.KeyDown:
		v.nudge(core.Pt(0, step))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			v.router.RerouteAll()
			v.status = "re-routed"
		case 's':
			v.save()
		}
	}
	return true
}

func (v *Viewer) nudge(delta core.Point) {
	id := v.Selected()
	if id == "" {
		return
	}
	if err := v.router.NudgeComponent(id, delta); err != nil {
		v.status = err.Error()
		return
	}
	v.history.Save(v.layout())
	v.status = ""
}

func (v *Viewer) layout() layout {
	l := make(layout)
	for _, c := range v.router.Scene().Components() {
		l[c.ID] = c.Position
	}
	return l
}

// restore moves every component back to its place in l.
func (v *Viewer) restore(l layout) {
	for _, c := range v.router.Scene().Components() {
		pos, ok := l[c.ID]
		if !ok || pos == c.Position {
			continue
		}
		if err := v.router.MoveComponent(c.ID, pos); err != nil {
			v.status = err.Error()
			return
		}
	}
	cur, total := v.history.Stats()
	v.status = fmt.Sprintf("history %d/%d", cur, total)
}

func (v *Viewer) undo() {
	l, ok := v.history.Undo()
	if !ok {
		v.status = "nothing to undo"
		return
	}
	v.restore(l)
}

func (v *Viewer) redo() {
	l, ok := v.history.Redo()
	if !ok {
		v.status = "nothing to redo"
		return
	}
	v.restore(l)
}

func (v *Viewer) save() {
	if v.Save == nil {
		v.status = "no file to save to"
		return
	}
	if err := v.Save(); err != nil {
		v.status = "save failed: " + err.Error()
		return
	}
	v.status = "saved " + v.filename
}

// Draw renders the scene and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	frame := v.router.Frame()

	text, err := render.NewASCIIRenderer(v.opts).Text(frame)
	if err != nil {
		v.status = err.Error()
	}

	blocked := v.blockedCells(frame)
	sel := v.selectedCells(frame)
	for y, line := range strings.Split(text, "\n") {
		x := 0
		for _, r := range line {
			st := styleDefault
			p := [2]int{x, y}
			switch {
			case sel[p]:
				st = styleSelected
			case blocked[p]:
				st = styleBlocked
			}
			v.screen.SetContent(x, y, r, nil, st)
			x += max(canvas.UnicodeWidth(r), 1)
		}
	}

	v.drawStatus(frame)
	v.screen.Show()
}

func (v *Viewer) cell(p core.Point) (int, int) {
	vp, c := v.opts.Viewport, v.opts.CellSize
	return int(math.Round((p.X - vp.X) / c)), int(math.Round((p.Y - vp.Y) / c))
}

// selectedCells returns the outline cells of the selected component.
func (v *Viewer) selectedCells(f render.Frame) map[[2]int]bool {
	id := v.Selected()
	out := make(map[[2]int]bool)
	for _, c := range f.Components {
		if c.ID != id {
			continue
		}
		x0, y0 := v.cell(core.Pt(c.Bounds.Left(), c.Bounds.Top()))
		x1, y1 := v.cell(core.Pt(c.Bounds.Right(), c.Bounds.Bottom()))
		for x := x0; x <= x1; x++ {
			out[[2]int{x, y0}] = true
			out[[2]int{x, y1}] = true
		}
		for y := y0; y <= y1; y++ {
			out[[2]int{x0, y}] = true
			out[[2]int{x1, y}] = true
		}
	}
	return out
}

// blockedCells returns the cells covered by wires that could not be routed
// clear.
func (v *Viewer) blockedCells(f render.Frame) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for _, w := range f.Wires {
		if w.Clear {
			continue
		}
		for _, s := range w.Path.Segments {
			x0, y0 := v.cell(s.Start)
			x1, y1 := v.cell(s.End)
			for x := min(x0, x1); x <= max(x0, x1); x++ {
				for y := min(y0, y1); y <= max(y0, y1); y++ {
					out[[2]int{x, y}] = true
				}
			}
		}
	}
	return out
}

func (v *Viewer) drawStatus(f render.Frame) {
	w, h := v.screen.Size()
	name := v.filename
	if name == "" {
		name = "untitled"
	}
	sel := v.Selected()
	if sel == "" {
		sel = "-"
	}
	st := v.router.Stats()
	line := fmt.Sprintf("[ %s ] ", name)
	if v.status != "" {
		line += v.status + " | "
	}
	line += fmt.Sprintf("Selected: %s | Components: %d | Wires: %d | Bumps: %d | Plans: %d",
		sel, len(f.Components), len(f.Wires), len(v.router.Bumps()), st.Plans)

	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, styleStatus)
		x += max(canvas.UnicodeWidth(r), 1)
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
}
