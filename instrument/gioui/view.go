package gioui

import (
	"fmt"
	"image"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/x/stroke"
	"github.com/vsariola/strum/instrument"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// View draws the instrument and feeds the pointer events to the model.
	// The fretboard is recorded once per layout revision into its own ops
	// and replayed every frame; the strings are drawn anew every frame.
	View struct {
		Model  *instrument.Model
		Logger *zap.Logger

		preferences Preferences
		shaper      *text.Shaper

		staticOps op.Ops
		static    op.CallOp
		staticRev int

		pressed  bool
		moved    bool
		pressPos f32.Point
		quit     bool

		segments []stroke.Segment
	}

	C = layout.Context
	D = layout.Dimensions
)

// a press and release closer than this is a click, not a drag
const clickSlop = unit.Dp(4)

func NewView(model *instrument.Model, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &View{
		Model:       model,
		Logger:      logger,
		preferences: MakePreferences(),
		shaper:      text.NewShaper(text.WithCollection(fontCollection)),
		staticRev:   -1,
	}
	if err := v.preferences.YmlError; err != nil {
		logger.Warn("could not read preferences.yml, using defaults", zap.Error(err))
	}
	return v
}

// Main runs the window until it is closed or something is sent to
// Broker.CloseGUI. It must be called from a goroutine other than the one
// running app.Main. Closures from Broker.ToModel are processed in between
// the window events, so the model is only touched from this goroutine.
func (v *View) Main() {
	broker := v.Model.Broker()
	var ops op.Ops
	w := v.newWindow()
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case f := <-broker.ToModel:
			v.Model.Process(f)
			w.Invalidate()
		case <-broker.CloseGUI:
			w.Perform(system.ActionClose)
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				if e.Err != nil {
					v.Logger.Error("window closed with an error", zap.Error(e.Err))
				}
				acks <- struct{}{}
				break F
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				v.Layout(gtx)
				e.Frame(gtx.Ops)
				if v.quit {
					w.Perform(system.ActionClose)
				}
			}
			acks <- struct{}{}
		}
	}
	v.Model.Close()
	close(broker.FinishedGUI)
}

func (v *View) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Title(titleFromSource(v.Model.Config().Source)))
	w.Option(app.Size(v.preferences.WindowSize()))
	if v.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func titleFromSource(source string) string {
	if source == "" {
		return "Strum"
	}
	return fmt.Sprintf("Strum - %s", cases.Title(language.English).String(source))
}

func (v *View) Layout(gtx C) D {
	size := gtx.Constraints.Max
	v.Model.Relayout(float32(size.X), float32(size.Y))
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	v.handleEvents(gtx)
	if v.staticRev != v.Model.LayoutRevision() {
		v.recordStatic(gtx)
	}
	v.static.Add(gtx.Ops)
	v.layoutHover(gtx)
	v.layoutStrings(gtx)
	v.layoutStatus(gtx)
	event.Op(gtx.Ops, v)
	if v.Model.NeedsFrame() {
		gtx.Execute(op.InvalidateCmd{})
	}
	return D{Size: size}
}

func (v *View) handleEvents(gtx C) {
	for {
		ev, ok := gtx.Event(
			pointer.Filter{Target: v, Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Leave | pointer.Cancel},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			break
		}
		switch e := ev.(type) {
		case pointer.Event:
			v.pointerEvent(gtx, e)
		case key.Event:
			if e.State == key.Press {
				v.quit = true
			}
		}
	}
}

func (v *View) pointerEvent(gtx C, e pointer.Event) {
	m := v.Model
	switch e.Kind {
	case pointer.Press:
		v.pressed, v.moved, v.pressPos = true, false, e.Position
		m.PointerDown()
	case pointer.Drag, pointer.Move:
		if v.pressed && !v.moved {
			d := e.Position.Sub(v.pressPos)
			slop := float32(gtx.Dp(clickSlop))
			v.moved = d.X*d.X+d.Y*d.Y > slop*slop
		}
		m.PointerMove(e.Position.X, e.Position.Y)
	case pointer.Release:
		m.PointerUp()
		if v.pressed && !v.moved {
			m.Click(e.Position.X, e.Position.Y)
		}
		v.pressed = false
	case pointer.Cancel:
		m.PointerUp()
		v.pressed = false
	case pointer.Leave:
		m.PointerLeave()
	}
}

// recordStatic records the fretboard bed, the nut and the frets.
func (v *View) recordStatic(gtx C) {
	v.staticOps.Reset()
	ops := &v.staticOps
	macro := op.Record(ops)
	fb := v.Model.Fretboard()
	b := fb.Bounds()
	nut, end := fb.FretX(0), fb.FretX(fb.Frets())
	paint.FillShape(ops, fretboardColor, clip.Rect(image.Rect(int(nut), int(b.Y), int(end), int(b.Y+b.Height))).Op())
	var path clip.Path
	path.Begin(ops)
	for i := 1; i <= fb.Frets(); i++ {
		x := fb.FretX(i)
		path.MoveTo(f32.Pt(x, b.Y))
		path.LineTo(f32.Pt(x, b.Y+b.Height))
	}
	paint.FillShape(ops, fretColor, clip.Stroke{Path: path.End(), Width: float32(gtx.Dp(fretWidth))}.Op())
	path.Begin(ops)
	path.MoveTo(f32.Pt(nut, b.Y))
	path.LineTo(f32.Pt(nut, b.Y+b.Height))
	paint.FillShape(ops, nutColor, clip.Stroke{Path: path.End(), Width: float32(gtx.Dp(nutWidth))}.Op())
	v.static = macro.Stop()
	v.staticRev = v.Model.LayoutRevision()
}

func (v *View) layoutHover(gtx C) {
	c, ok := v.Model.Fretboard().Hover()
	if !ok {
		return
	}
	r := c.Rect
	paint.FillShape(gtx.Ops, hoverColor, clip.Rect(image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))).Op())
}

func (v *View) layoutStrings(gtx C) {
	m := v.Model
	fb := m.Fretboard()
	t := m.Animation().Time(gtx.Now)
	d := float32(gtx.Dp(stopMarkerDiameter))
	for i := 0; i < m.NumStrings(); i++ {
		voice := m.Voice(i)
		if voice.CurrentFret > 0 {
			x := (fb.FretX(voice.CurrentFret-1) + fb.FretX(voice.CurrentFret)) / 2
			rect := image.Rect(int(x-d/2), int(voice.MidlineY-d/2), int(x+d/2), int(voice.MidlineY+d/2))
			paint.FillShape(gtx.Ops, stopMarkerColor, clip.Ellipse(rect).Op(gtx.Ops))
		}
		v.segments = v.segments[:0]
		m.StringPath(i, t, func(x, y float32) bool {
			if len(v.segments) == 0 {
				v.segments = append(v.segments, stroke.MoveTo(f32.Pt(x, y)))
			} else {
				v.segments = append(v.segments, stroke.LineTo(f32.Pt(x, y)))
			}
			return true
		})
		if len(v.segments) < 2 {
			continue
		}
		color := stringColor
		if voice.Playing {
			color = playingStringColor
		}
		// lower strings are thicker
		width := float32(gtx.Dp(unit.Dp(1+0.5*float32(m.NumStrings()-1-i))))
		s := stroke.Stroke{
			Path:  stroke.Path{Segments: v.segments},
			Width: width,
			Cap:   stroke.RoundCap,
			Join:  stroke.RoundJoin,
		}
		paint.FillShape(gtx.Ops, color, s.Op(gtx.Ops))
	}
}

func (v *View) layoutStatus(gtx C) {
	m := v.Model
	var icon = loadingIcon
	var label LabelStyle
	switch m.SamplesState() {
	case instrument.SamplesLoading:
		label = Label(fmt.Sprintf("Loading %s samples...", m.Config().Source), statusTextColor, v.shaper)
	case instrument.SamplesFailed:
		icon = errorIcon
		label = Label(fmt.Sprintf("No sound: %v", m.SamplesError()), errorTextColor, v.shaper)
	default:
		return
	}
	layout.Inset{Top: unit.Dp(8), Left: unit.Dp(8)}.Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				gtx.Constraints.Min = image.Pt(gtx.Dp(statusIconSize), gtx.Dp(statusIconSize))
				gtx.Constraints.Max = gtx.Constraints.Min
				return icon.Layout(gtx, label.Color)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(label.Layout),
		)
	})
}
