//go:build cgo

package cmd

import (
	"github.com/vsariola/strum/instrument"
	"github.com/vsariola/strum/instrument/gomidi"
	"go.uber.org/zap"
)

func NewMIDIContext(broker *instrument.Broker, player instrument.NotePlayer, logger *zap.Logger) instrument.MIDIContext {
	return gomidi.NewContext(broker, player, logger)
}
