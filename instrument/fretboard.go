package instrument

import "github.com/vsariola/strum"

type (
	// FretboardCell is the hit region of one fret on one string. Fret is
	// 0-based here: clicking the cell selects fret Fret+1 of the string.
	FretboardCell struct {
		Rect   strum.Rect
		String int
		Fret   int
	}

	// Fretboard is the grid of cells the user clicks to fret the strings.
	// It is rebuilt whenever the layout changes.
	Fretboard struct {
		bounds    strum.Rect
		strings   int
		frets     int
		nutX      float32
		cellWidth float32
		cells     []FretboardCell
		hover     int // index to cells, -1 = none
	}
)

// NewFretboard builds a strings x frets grid in bounds. The first nutMargin
// fraction of the width is left for the head of the instrument; the cells
// cover the next neckFraction of the width. Strings divide the height evenly.
func NewFretboard(bounds strum.Rect, strings, frets int, neckFraction, nutMargin float32) *Fretboard {
	strings = max(strings, 0)
	frets = max(frets, 0)
	f := &Fretboard{
		bounds:  bounds,
		strings: strings,
		frets:   frets,
		nutX:    bounds.X + nutMargin*bounds.Width,
		hover:   -1,
	}
	if frets > 0 {
		f.cellWidth = neckFraction * bounds.Width / float32(frets)
	}
	f.cells = make([]FretboardCell, 0, strings*frets)
	h := f.stringHeight()
	for s := 0; s < strings; s++ {
		for i := 0; i < frets; i++ {
			f.cells = append(f.cells, FretboardCell{
				Rect:   strum.NewRect(f.FretX(i), bounds.Y+float32(s)*h, f.cellWidth, h),
				String: s,
				Fret:   i,
			})
		}
	}
	return f
}

func (f *Fretboard) Bounds() strum.Rect { return f.bounds }
func (f *Fretboard) Strings() int       { return f.strings }
func (f *Fretboard) Frets() int         { return f.frets }

// Cells returns the cells ordered by string and then by fret. The slice must
// not be modified.
func (f *Fretboard) Cells() []FretboardCell { return f.cells }

// Cell returns the cell of a string and a 0-based fret.
func (f *Fretboard) Cell(str, fret int) (FretboardCell, bool) {
	if str < 0 || str >= f.strings || fret < 0 || fret >= f.frets {
		return FretboardCell{}, false
	}
	return f.cells[str*f.frets+fret], true
}

// CellAt returns the cell containing the point. Cells share their edges;
// the first one in Cells order wins.
func (f *Fretboard) CellAt(px, py float32) (FretboardCell, bool) {
	for _, c := range f.cells {
		if c.Rect.Contains(px, py) {
			return c, true
		}
	}
	return FretboardCell{}, false
}

// FretX returns the x coordinate of the stop of a fret; fret 0 is the nut.
func (f *Fretboard) FretX(fret int) float32 {
	return f.nutX + float32(fret)*f.cellWidth
}

// Midline returns the y coordinate of a string.
func (f *Fretboard) Midline(str int) float32 {
	return f.bounds.Y + (float32(str)+.5)*f.stringHeight()
}

func (f *Fretboard) stringHeight() float32 {
	if f.strings == 0 {
		return 0
	}
	return f.bounds.Height / float32(f.strings)
}

func (f *Fretboard) SetHover(c FretboardCell) {
	if _, ok := f.Cell(c.String, c.Fret); !ok {
		f.hover = -1
		return
	}
	f.hover = c.String*f.frets + c.Fret
}

func (f *Fretboard) ClearHover() { f.hover = -1 }

func (f *Fretboard) Hover() (FretboardCell, bool) {
	if f.hover < 0 {
		return FretboardCell{}, false
	}
	return f.cells[f.hover], true
}
