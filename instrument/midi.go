package instrument

import "strings"

type (
	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int

	// NotePlayer is what MIDI input drives; Model implements it.
	NotePlayer interface {
		PlayNote(pitch, velocity int) bool
	}
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

func (s MIDISupport) String() string {
	switch s {
	case MIDISupportNotCompiled:
		return "not compiled"
	case MIDISupportNoDriver:
		return "no driver"
	default:
		return "supported"
	}
}

// FindMIDIInput returns the first input whose name starts with prefix. An
// empty prefix matches the first input.
func FindMIDIInput(c MIDIContext, prefix string) (MIDIInputDevice, bool) {
	for input := range c.Inputs {
		if strings.HasPrefix(input.String(), prefix) {
			return input, true
		}
	}
	return nil, false
}

// NullMIDIContext is a mockup MIDIContext if you don't want to create a real
// one.
type NullMIDIContext struct{}

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }
