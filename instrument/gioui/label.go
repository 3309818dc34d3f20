package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

// LabelStyle is a single line of text with a drop shadow, readable on top of
// the fretboard.
type LabelStyle struct {
	Text       string
	Color      color.NRGBA
	ShadeColor color.NRGBA
	Font       font.Font
	FontSize   unit.Sp
	Shaper     *text.Shaper
}

func (l LabelStyle) Layout(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = image.Point{}
	paint.ColorOp{Color: l.ShadeColor}.Add(gtx.Ops)
	offs := op.Offset(image.Pt(2, 2)).Push(gtx.Ops)
	widget.Label{MaxLines: 1}.Layout(gtx, l.Shaper, l.Font, l.FontSize, l.Text, op.CallOp{})
	offs.Pop()
	paint.ColorOp{Color: l.Color}.Add(gtx.Ops)
	return widget.Label{MaxLines: 1}.Layout(gtx, l.Shaper, l.Font, l.FontSize, l.Text, op.CallOp{})
}

func Label(str string, color color.NRGBA, shaper *text.Shaper) LabelStyle {
	return LabelStyle{Text: str, Color: color, ShadeColor: black, Font: labelDefaultFont, FontSize: labelDefaultFontSize, Shaper: shaper}
}
