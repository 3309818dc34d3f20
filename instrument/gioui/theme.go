package gioui

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
)

var fontCollection []text.FontFace = gofont.Collection()

var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
var fretboardColor = color.NRGBA{R: 66, G: 40, B: 24, A: 255}
var nutColor = color.NRGBA{R: 230, G: 222, B: 200, A: 255}
var fretColor = color.NRGBA{R: 170, G: 170, B: 176, A: 255}
var stringColor = color.NRGBA{R: 200, G: 200, B: 190, A: 255}
var playingStringColor = color.NRGBA{R: 255, G: 255, B: 130, A: 255}
var hoverColor = color.NRGBA{R: 100, G: 140, B: 255, A: 64}
var stopMarkerColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}

var statusTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var errorTextColor = color.NRGBA{R: 255, G: 120, B: 100, A: 255}

var labelDefaultFont = fontCollection[6].Font
var labelDefaultFontSize = unit.Sp(16)

var nutWidth = unit.Dp(6)
var fretWidth = unit.Dp(2)
var stopMarkerDiameter = unit.Dp(10)
var statusIconSize = unit.Dp(20)
