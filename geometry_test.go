package strum_test

import (
	"testing"

	"github.com/vsariola/strum"
)

func TestRectContains(t *testing.T) {
	r := strum.NewRect(10, 20, 30, 40)
	inside := [][2]float32{{10, 20}, {40, 20}, {10, 60}, {40, 60}, {25, 40}}
	for _, p := range inside {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("%v should contain %v", r, p)
		}
	}
	outside := [][2]float32{{9.99, 30}, {40.01, 30}, {20, 19.99}, {20, 60.01}}
	for _, p := range outside {
		if r.Contains(p[0], p[1]) {
			t.Errorf("%v should not contain %v", r, p)
		}
	}
}

func TestNewRectNegativeSize(t *testing.T) {
	r := strum.NewRect(10, 10, -4, -6)
	if r.Width != 4 || r.Height != 6 || r.X != 6 || r.Y != 4 {
		t.Fatalf("expected {6 4 4 6}, got %v", r)
	}
	if !r.Contains(8, 7) {
		t.Fatal("folded rectangle should cover the original area")
	}
}

func TestRectZeroSize(t *testing.T) {
	r := strum.NewRect(5, 5, 0, 0)
	if !r.Contains(5, 5) {
		t.Fatal("a degenerate rectangle contains its origin")
	}
	if r.Contains(5, 5.001) {
		t.Fatal("a degenerate rectangle contains only its origin")
	}
}
