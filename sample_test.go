package strum_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vsariola/strum"
)

func names(samples []*strum.Sample) []string {
	ret := make([]string, len(samples))
	for i, s := range samples {
		ret[i] = s.Name
	}
	return ret
}

func TestNewSampleSet(t *testing.T) {
	var samples []*strum.Sample
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		samples = append(samples, &strum.Sample{Name: n})
	}
	set, err := strum.NewSampleSet(samples, []int{2, 0, 3})
	if err != nil {
		t.Fatalf("NewSampleSet failed: %v", err)
	}
	want := [][]string{{"a", "b"}, {}, {"c", "d", "e"}}
	for i, w := range want {
		if diff := cmp.Diff(w, names(set.String(i))); diff != "" {
			t.Errorf("string %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	if s, ok := set.Sample(2, 1); !ok || s.Name != "d" {
		t.Errorf("Sample(2, 1) = %v, %v, expected d", s, ok)
	}
	if _, ok := set.Sample(1, 0); ok {
		t.Error("string 1 has no samples")
	}
	if _, ok := set.Sample(7, 0); ok {
		t.Error("string 7 does not exist")
	}
}

func TestNewSampleSetMismatch(t *testing.T) {
	samples := []*strum.Sample{{Name: "a"}, {Name: "b"}}
	for _, counts := range [][]int{{1}, {3}, {1, 2}, {-1, 3}} {
		if _, err := strum.NewSampleSet(samples, counts); !errors.Is(err, strum.ErrSampleCount) {
			t.Errorf("counts %v: expected ErrSampleCount, got %v", counts, err)
		}
	}
}

func TestSampleDuration(t *testing.T) {
	s := &strum.Sample{SampleRate: 100, Data: make([]float32, 2*150)}
	if s.Frames() != 150 {
		t.Fatalf("expected 150 frames, got %v", s.Frames())
	}
	if s.Duration() != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v", s.Duration())
	}
	if (&strum.Sample{}).Duration() != 0 {
		t.Fatal("a sample without a rate has no duration")
	}
}

func TestManifestForms(t *testing.T) {
	var legacy, full strum.Manifest
	if err := json.Unmarshal([]byte(` ["a.mp3", "b.mp3"]`), &legacy); err != nil {
		t.Fatalf("array form: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"files": ["a.mp3", "b.mp3"], "counts": [2]}`), &full); err != nil {
		t.Fatalf("object form: %v", err)
	}
	if diff := cmp.Diff(legacy.Files, full.Files); diff != "" {
		t.Fatalf("files differ (-array +object):\n%s", diff)
	}
	if len(legacy.Counts) != 0 || len(full.Counts) != 1 {
		t.Fatalf("unexpected counts %v / %v", legacy.Counts, full.Counts)
	}
	var bad strum.Manifest
	if err := json.Unmarshal([]byte(`[1, 2]`), &bad); err == nil {
		t.Fatal("expected an error for a list of numbers")
	}
}

func TestManifestStringCounts(t *testing.T) {
	m := strum.Manifest{Files: []string{"a", "b", "c", "d", "e", "f"}}
	tests := []struct {
		name               string
		manifest           strum.Manifest
		strings, perString int
		want               []int
		wantErr            bool
	}{
		{"even split", m, 3, 0, []int{2, 2, 2}, false},
		{"uneven split", m, 4, 0, nil, true},
		{"per string", m, 2, 3, []int{3, 3}, false},
		{"per string mismatch", m, 2, 2, nil, true},
		{"explicit", strum.Manifest{Files: m.Files, Counts: []int{1, 5}}, 2, 4, []int{1, 5}, false},
		{"explicit wrong strings", strum.Manifest{Files: m.Files, Counts: []int{6}}, 2, 0, nil, true},
		{"no strings", m, 0, 0, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.manifest.StringCounts(tt.strings, tt.perString)
			if tt.wantErr {
				if !errors.Is(err, strum.ErrSampleCount) {
					t.Fatalf("expected ErrSampleCount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StringCounts failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("counts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManifestValidate(t *testing.T) {
	if err := (strum.Manifest{}).Validate(); err == nil {
		t.Error("empty manifest should not validate")
	}
	if err := (strum.Manifest{Files: []string{"a", ""}}).Validate(); err == nil {
		t.Error("manifest with an empty name should not validate")
	}
	if err := (strum.Manifest{Files: []string{"a"}}).Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
