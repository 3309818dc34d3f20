package instrument_test

import (
	"testing"

	"github.com/vsariola/strum"
	"github.com/vsariola/strum/instrument"
)

func TestFretboardGeometry(t *testing.T) {
	fb := instrument.NewFretboard(strum.NewRect(0, 0, 1000, 400), 4, 10, 0.8, 0.1)
	if len(fb.Cells()) != 40 {
		t.Fatalf("expected 40 cells, got %d", len(fb.Cells()))
	}
	if fb.FretX(0) != 100 || fb.FretX(10) != 900 {
		t.Fatalf("unexpected fret stops %v .. %v", fb.FretX(0), fb.FretX(10))
	}
	c, ok := fb.Cell(3, 9)
	if !ok || c.Rect != strum.NewRect(820, 300, 80, 100) {
		t.Fatalf("unexpected last cell %v %v", c, ok)
	}
	if fb.Midline(0) != 50 || fb.Midline(3) != 350 {
		t.Fatalf("unexpected midlines %v, %v", fb.Midline(0), fb.Midline(3))
	}
	if _, ok := fb.Cell(4, 0); ok {
		t.Fatal("cell of a missing string should not exist")
	}
}

func TestFretboardCellAt(t *testing.T) {
	fb := instrument.NewFretboard(strum.NewRect(0, 0, 1000, 400), 4, 10, 0.8, 0.1)
	tests := []struct {
		x, y      float32
		ok        bool
		str, fret int
	}{
		{150, 50, true, 0, 0},
		{100, 0, true, 0, 0},     // corner
		{180, 50, true, 0, 0},    // shared edge goes to the first cell
		{900, 400, true, 3, 9},   // far corner
		{99.9, 50, false, 0, 0},  // nut region
		{900.1, 50, false, 0, 0}, // beyond the neck
		{500, 401, false, 0, 0},
	}
	for _, tt := range tests {
		c, ok := fb.CellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && (c.String != tt.str || c.Fret != tt.fret)) {
			t.Errorf("CellAt(%v, %v) = %v %v, expected %d/%d %v", tt.x, tt.y, c, ok, tt.str, tt.fret, tt.ok)
		}
	}
}

func TestFretboardHover(t *testing.T) {
	fb := instrument.NewFretboard(strum.NewRect(0, 0, 1000, 400), 4, 10, 0.8, 0.1)
	if _, ok := fb.Hover(); ok {
		t.Fatal("nothing should be hovered initially")
	}
	a, _ := fb.Cell(1, 1)
	b, _ := fb.Cell(2, 2)
	fb.SetHover(a)
	fb.SetHover(b)
	if h, ok := fb.Hover(); !ok || h != b {
		t.Fatalf("expected only the last cell hovered, got %v %v", h, ok)
	}
	fb.SetHover(instrument.FretboardCell{String: 7, Fret: 1})
	if _, ok := fb.Hover(); ok {
		t.Fatal("hovering an invalid cell should clear the hover")
	}
	fb.SetHover(a)
	fb.ClearHover()
	if _, ok := fb.Hover(); ok {
		t.Fatal("ClearHover should clear the hover")
	}
}

func TestFretboardEmpty(t *testing.T) {
	fb := instrument.NewFretboard(strum.Rect{}, 6, 19, 0.8, 0.1)
	if c, ok := fb.CellAt(0, 0); ok && (c.Rect.Width != 0 || c.Rect.Height != 0) {
		t.Fatalf("zero sized board should have zero sized cells, got %v", c)
	}
}
