package gomidi

import (
	"errors"
	"fmt"

	"github.com/vsariola/strum/instrument"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/zap"
)

type (
	// RTMIDIContext listens to one MIDI input at a time and posts its note
	// on messages to the model goroutine as PlayNote calls.
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		broker    *instrument.Broker
		player    instrument.NotePlayer
		logger    *zap.Logger
		currentIn drivers.In
		stop      func()
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the rtmidi driver. If that fails, the context has no
// inputs and reports MIDISupportNoDriver.
func NewContext(broker *instrument.Broker, player instrument.NotePlayer, logger *zap.Logger) *RTMIDIContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := RTMIDIContext{broker: broker, player: player, logger: logger}
	var err error
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	if m.driver, err = rtmididrv.New(); err != nil {
		m.driver = nil
		logger.Warn("no MIDI driver available", zap.Error(err))
	}
	return &m
}

func (m *RTMIDIContext) Inputs(yield func(instrument.MIDIInputDevice) bool) {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		m.logger.Warn("listing MIDI inputs failed", zap.Error(err))
		return
	}
	for i := 0; i < len(ins); i++ {
		if !yield(RTMIDIDevice{context: m, in: ins[i]}) {
			break
		}
	}
}

func (m *RTMIDIContext) Support() instrument.MIDISupport {
	if m.driver == nil {
		return instrument.MIDISupportNoDriver
	}
	return instrument.MIDISupported
}

func (m *RTMIDIContext) Close() {
	if m.driver == nil {
		return
	}
	m.closeInput()
	m.driver.Close()
}

func (m *RTMIDIContext) HasDeviceOpen() bool {
	return m.currentIn != nil && m.currentIn.IsOpen()
}

func (m *RTMIDIContext) closeInput() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
	if m.HasDeviceOpen() {
		m.currentIn.Close()
	}
	m.currentIn = nil
}

// Open an input device while closing the currently open if necessary.
func (d RTMIDIDevice) Open() error {
	m := d.context
	if m.currentIn == d.in && m.HasDeviceOpen() {
		return nil
	}
	if m.driver == nil {
		return errors.New("no driver available")
	}
	m.closeInput()
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, m.HandleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	m.currentIn, m.stop = d.in, stop
	m.logger.Info("opened MIDI input", zap.String("device", d.in.String()))
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn == d.in {
		d.context.closeInput()
		return nil
	}
	return d.in.Close()
}

func (d RTMIDIDevice) IsOpen() bool   { return d.in.IsOpen() }
func (d RTMIDIDevice) String() string { return d.in.String() }

// HandleMessage is called by the driver on its own goroutine. Note ons are
// posted to the model; if the queue is full, the note is dropped.
func (m *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	if !msg.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
		return
	}
	player := m.player
	if !instrument.TrySend(m.broker.ToModel, func() { player.PlayNote(int(key), int(velocity)) }) {
		m.logger.Debug("MIDI note dropped, model queue full", zap.Uint8("key", key))
	}
}
