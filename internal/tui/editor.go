// Package tui is an interactive terminal editor for a gradient mesh session.
//
// The preview is drawn with upper half blocks, so each terminal cell shows
// two vertically stacked display pixels in truecolor. Mouse input is fed to
// a gesture.Machine; the last row is a status line.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gradmesh"
	"github.com/gogpu/gradmesh/gesture"
)

// Option configures an Editor.
type Option func(*Editor)

// WithExportSize sets the resolution of the export key. The default is the
// session's logical canvas size at the time of the key press.
func WithExportSize(s gradmesh.Size) Option {
	return func(e *Editor) {
		e.exportSize = s
	}
}

// WithSaveFunc binds the save key to fn.
func WithSaveFunc(fn func(*gradmesh.Session) error) Option {
	return func(e *Editor) {
		e.save = fn
	}
}

// Editor drives a session from a tcell screen.
type Editor struct {
	screen   tcell.Screen
	session  *gradmesh.Session
	gestures *gesture.Machine

	buttons    tcell.ButtonMask
	exportSize gradmesh.Size
	save       func(*gradmesh.Session) error
	status     string
}

// New returns an editor for s drawing on screen. The screen must already
// be initialized.
func New(screen tcell.Screen, s *gradmesh.Session, opts ...Option) *Editor {
	e := &Editor{
		screen:   screen,
		session:  s,
		gestures: gesture.New(s),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Gestures returns the editor's gesture state machine.
func (e *Editor) Gestures() *gesture.Machine {
	return e.gestures
}

// Status returns the current status message.
func (e *Editor) Status() string {
	return e.status
}

// pump forwards polled events to out until poll returns nil, which closes
// out, or until ctx is done.
func pump(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run processes screen events until the user quits or ctx is canceled.
func (e *Editor) Run(ctx context.Context) error {
	e.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	defer e.screen.DisableMouse()

	if err := e.Resize(); err != nil {
		return err
	}
	e.Draw()

	events := make(chan tcell.Event, 64)
	go pump(ctx, e.screen.PollEvent, events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if e.HandleEvent(ev) {
				return nil
			}
			e.Draw()
		}
	}
}

// Resize matches the session display to the screen: one pixel per column,
// two per row, minus the status line.
func (e *Editor) Resize() error {
	w, h := e.screen.Size()
	return e.session.NotifyDisplayResize(gradmesh.Sz(max(w, 0), max(h-1, 0)*2))
}

// HandleEvent applies one screen event and reports whether the editor
// should quit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
		e.report(e.Resize())
	case *tcell.EventMouse:
		x, y := ev.Position()
		e.handleMouse(x, y, ev.Buttons())
	case *tcell.EventKey:
		return e.HandleKey(ev.Key(), ev.Rune())
	}
	return false
}

func (e *Editor) handleMouse(x, y int, buttons tcell.ButtonMask) {
	buttons &= tcell.ButtonPrimary | tcell.ButtonSecondary
	prev := e.buttons
	e.buttons = buttons

	// Cell (x,y) covers display pixels (x,2y) and (x,2y+1).
	ev := gesture.Event{X: float64(x), Y: float64(2*y) + 0.5}
	switch {
	case prev == 0 && buttons == 0:
		return
	case prev == 0:
		ev.Phase = gesture.Down
		if buttons&tcell.ButtonPrimary == 0 {
			ev.Button = gesture.Secondary
		}
	case buttons == 0:
		ev.Phase = gesture.Up
	default:
		ev.Phase = gesture.Move
	}
	e.report(e.gestures.Handle(ev))
}

// HandleKey applies a key press and reports whether the editor should quit.
func (e *Editor) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		e.gestures.ClosePicker()
		e.report(e.session.RemoveSelected())
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch r {
	case 'q':
		return true
	case 'c':
		_, err := e.session.AddCenterPoint()
		e.report(err)
	case 'e':
		e.export()
	case 's':
		if e.save == nil {
			e.status = "no scene file"
			return false
		}
		if err := e.save(e.session); err != nil {
			e.report(err)
			return false
		}
		e.status = "saved"
	}
	return false
}

func (e *Editor) export() {
	target := e.exportSize
	if target.Empty() {
		target = e.session.Canvas()
	}
	a, err := e.session.RequestExport(target, nil)
	if err != nil {
		e.report(err)
		return
	}
	e.status = fmt.Sprintf("exported %s (%d bytes)", a.Name, len(a.Data))
}

func (e *Editor) report(err error) {
	if err != nil {
		e.status = "error: " + err.Error()
	}
}

// Draw paints the preview, markers, picker and status line.
func (e *Editor) Draw() {
	e.screen.Clear()
	pm := e.session.PreviewBuffer()
	w, h := e.screen.Size()
	rows := h - 1

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < w; cx++ {
			top := pm.Pixel(cx, 2*cy)
			bottom := pm.Pixel(cx, 2*cy+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			e.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}

	e.drawPicker(pm)
	e.drawMarkers(pm)
	e.drawStatus(w, rows)
	e.screen.Show()
}

func (e *Editor) drawMarkers(pm *gradmesh.Pixmap) {
	canvas, display := e.session.Canvas(), e.session.Display()
	selected, _ := e.session.Selected()
	for _, cp := range e.session.ListPoints() {
		at := gradmesh.ToDisplay(cp.Position, canvas, display)
		cx, cy := int(at.X), int(at.Y)/2
		cx = min(cx, display.Width-1)
		cy = min(cy, display.Height/2-1)
		r := '○'
		if cp.ID == selected {
			r = '●'
		}
		bg := pm.Pixel(cx, 2*cy)
		style := tcell.StyleDefault.Foreground(cellColor(bg.Contrast())).Background(cellColor(cp.Color))
		e.screen.SetContent(cx, cy, r, nil, style)
	}
}

func (e *Editor) drawPicker(pm *gradmesh.Pixmap) {
	p, ok := e.gestures.Picker()
	if !ok {
		return
	}
	y0, y1 := int(p.Y)/2, int(p.Y+p.Height+1)/2
	for cy := y0; cy < y1; cy++ {
		for cx := int(p.X); cx < int(p.X+p.Width) && cx < pm.Width(); cx++ {
			c := p.ColorAt(float64(cx) + 0.5)
			e.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(cellColor(c)))
		}
	}
}

func (e *Editor) drawStatus(w, row int) {
	if row < 0 {
		return
	}
	line := fmt.Sprintf(" %d points  canvas %s  [c]enter [e]xport [s]ave [del] remove [q]uit",
		len(e.session.ListPoints()), e.session.Canvas())
	if e.status != "" {
		line += "  " + e.status
	}
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		e.screen.SetContent(x, row, r, nil, style)
	}
}

func cellColor(c gradmesh.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
