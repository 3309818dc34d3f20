package strum

import (
	"errors"
	"fmt"
)

var (
	// ErrSampleCount is wrapped by a ManifestError when the per-string sample
	// counts do not add up to the number of files in the manifest.
	ErrSampleCount = errors.New("sample count mismatch")
	// ErrUnsupportedFormat is wrapped by a DecodeError when no decoder is
	// registered for the file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

type (
	// ManifestError means the list of samples for a source could not be
	// obtained or did not make sense.
	ManifestError struct {
		Source string
		Err    error
	}

	// AssetFetchError means the bytes of a single sample file could not be
	// retrieved.
	AssetFetchError struct {
		Source string
		Name   string
		Err    error
	}

	// DecodeError means the bytes of a sample file were not valid audio.
	DecodeError struct {
		Name string
		Err  error
	}
)

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest for source %q: %v", e.Source, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("fetching sample %q of source %q: %v", e.Name, e.Source, e.Err)
}

func (e *AssetFetchError) Unwrap() error { return e.Err }

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding sample %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
