//go:build !cgo

package cmd

import (
	"github.com/vsariola/strum/instrument"
	"go.uber.org/zap"
)

func NewMIDIContext(broker *instrument.Broker, player instrument.NotePlayer, logger *zap.Logger) instrument.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return instrument.NullMIDIContext{}
}
