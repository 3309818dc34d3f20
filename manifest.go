package strum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Manifest lists the sample files of a source in playing order. Counts, when
// present, tells how many of the files belong to each string; the files of
// string 0 come first.
//
// On the wire a manifest is either a bare JSON array of file names or an
// object with "files" and "counts".
type Manifest struct {
	Files  []string `json:"files" yaml:"files"`
	Counts []int    `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// MarshalJSON writes a manifest without counts in the bare array form.
func (m Manifest) MarshalJSON() ([]byte, error) {
	if len(m.Counts) == 0 {
		files := m.Files
		if files == nil {
			files = []string{}
		}
		return json.Marshal(files)
	}
	type plain Manifest
	return json.Marshal(plain(m))
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var files []string
		if err := json.Unmarshal(data, &files); err != nil {
			return fmt.Errorf("manifest is not a list of file names: %w", err)
		}
		*m = Manifest{Files: files}
		return nil
	}
	type plain Manifest // plain has no UnmarshalJSON, so no recursion
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("manifest is not a files/counts object: %w", err)
	}
	*m = Manifest(p)
	return nil
}

// StringCounts returns the number of samples of each string. Explicit counts
// in the manifest win; otherwise every string gets perString samples, or, if
// perString is not positive, the files are split evenly. Every failure wraps
// ErrSampleCount.
func (m Manifest) StringCounts(numStrings, perString int) ([]int, error) {
	if numStrings <= 0 {
		return nil, fmt.Errorf("instrument has %d strings: %w", numStrings, ErrSampleCount)
	}
	if len(m.Counts) > 0 {
		if len(m.Counts) != numStrings {
			return nil, fmt.Errorf("manifest has counts for %d strings, instrument has %d: %w", len(m.Counts), numStrings, ErrSampleCount)
		}
		return m.Counts, nil
	}
	if perString <= 0 {
		if len(m.Files)%numStrings != 0 {
			return nil, fmt.Errorf("%d files cannot be split evenly over %d strings: %w", len(m.Files), numStrings, ErrSampleCount)
		}
		perString = len(m.Files) / numStrings
	}
	if perString*numStrings != len(m.Files) {
		return nil, fmt.Errorf("expected %d samples per string for %d strings, got %d files: %w", perString, numStrings, len(m.Files), ErrSampleCount)
	}
	ret := make([]int, numStrings)
	for i := range ret {
		ret[i] = perString
	}
	return ret, nil
}

// Validate checks that the manifest names at least one file and that none of
// the names is empty.
func (m Manifest) Validate() error {
	if len(m.Files) == 0 {
		return errors.New("manifest lists no files")
	}
	for i, f := range m.Files {
		if f == "" {
			return fmt.Errorf("manifest entry %d is empty", i)
		}
	}
	return nil
}
