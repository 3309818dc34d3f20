package instrument

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Config describes the instrument: the number of strings and frets, where
	// the samples come from, and the constants of the layout, the pluck
	// envelope and the string animation.
	Config struct {
		Strings int
		Frets   int

		// Source identifies the sample set, e.g. "guitar". SampleRoot is
		// either a http(s) URL or a local directory containing one
		// subdirectory per source.
		Source     string
		SampleRoot string
		// ManifestURL and AssetURL override the URL templates used when
		// SampleRoot is a URL.
		ManifestURL string `yaml:",omitempty"`
		AssetURL    string `yaml:",omitempty"`
		// SamplesPerString is used when the manifest does not list counts.
		// 0 means the samples are split evenly between the strings.
		SamplesPerString int

		// Tuning is the MIDI pitch of each open string, lowest string first.
		Tuning []int

		Layout   LayoutConfig
		Envelope EnvelopeConfig
		Wave     WaveConfig
	}

	LayoutConfig struct {
		// NeckFraction is the fraction of the width covered by the fret
		// cells, starting after the nut.
		NeckFraction float32
		// NutMargin is the fraction of the width reserved left of the nut.
		NutMargin float32
		// HitboxHeight is the height of the band around each string, in
		// pixels, where dragging the pointer plucks it.
		HitboxHeight float32
	}

	EnvelopeConfig struct {
		TickInterval    time.Duration
		DecayStep       float32
		RepeatDelay     time.Duration
		PlayingFraction float32
	}

	WaveConfig struct {
		BaseAmplitude      float32
		WavelengthFraction float32
	}
)

//go:embed instrument.yml
var defaultConfigYaml []byte

// DefaultConfig returns the embedded default configuration of a six string
// guitar.
func DefaultConfig() Config {
	var c Config
	if err := decodeConfig(defaultConfigYaml, &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal the default instrument config: %w", err))
	}
	return c
}

// ReadConfig reads a YAML configuration on top of the default configuration,
// so only the fields that differ need to be given. Unknown fields are errors.
func ReadConfig(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	c := DefaultConfig()
	if err := decodeConfig(data, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads the configuration from a file. An empty path gives the
// default configuration.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not open instrument config: %w", err)
	}
	defer f.Close()
	c, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeConfig(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Strings < 1:
		return fmt.Errorf("strings should be at least 1, got %d", c.Strings)
	case c.Frets < 1:
		return fmt.Errorf("frets should be at least 1, got %d", c.Frets)
	case c.SamplesPerString < 0:
		return fmt.Errorf("samplesperstring should not be negative, got %d", c.SamplesPerString)
	case len(c.Tuning) != c.Strings:
		return fmt.Errorf("tuning has %d pitches for %d strings", len(c.Tuning), c.Strings)
	case c.Layout.NeckFraction <= 0 || c.Layout.NutMargin < 0 || c.Layout.NeckFraction+c.Layout.NutMargin > 1:
		return fmt.Errorf("neckfraction %v and nutmargin %v should be positive and add up to at most 1", c.Layout.NeckFraction, c.Layout.NutMargin)
	case c.Layout.HitboxHeight <= 0:
		return fmt.Errorf("hitboxheight should be positive, got %v", c.Layout.HitboxHeight)
	case c.Envelope.TickInterval <= 0:
		return fmt.Errorf("tickinterval should be positive, got %v", c.Envelope.TickInterval)
	case c.Envelope.DecayStep <= 0 || c.Envelope.DecayStep > 1:
		return fmt.Errorf("decaystep should be in (0, 1], got %v", c.Envelope.DecayStep)
	case c.Envelope.RepeatDelay < 0:
		return fmt.Errorf("repeatdelay should not be negative, got %v", c.Envelope.RepeatDelay)
	case c.Envelope.PlayingFraction <= 0 || c.Envelope.PlayingFraction > 1:
		return fmt.Errorf("playingfraction should be in (0, 1], got %v", c.Envelope.PlayingFraction)
	case c.Wave.BaseAmplitude < 0:
		return fmt.Errorf("baseamplitude should not be negative, got %v", c.Wave.BaseAmplitude)
	case c.Wave.WavelengthFraction <= 0:
		return fmt.Errorf("wavelengthfraction should be positive, got %v", c.Wave.WavelengthFraction)
	}
	for i, p := range c.Tuning {
		if p < 0 || p > 127 {
			return fmt.Errorf("tuning of string %d is not a MIDI pitch: %d", i, p)
		}
	}
	return nil
}
