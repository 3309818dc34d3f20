package gomidi_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vsariola/strum/instrument"
	"github.com/vsariola/strum/instrument/gomidi"
	"gitlab.com/gomidi/midi/v2"
)

type notes [][2]int

func (n *notes) PlayNote(pitch, velocity int) bool {
	*n = append(*n, [2]int{pitch, velocity})
	return true
}

func TestHandleMessagePostsNoteOns(t *testing.T) {
	broker := instrument.NewBroker()
	var played notes
	c := gomidi.NewContext(broker, &played, nil)
	defer c.Close()
	c.HandleMessage(midi.NoteOn(0, 60, 100), 0)
	c.HandleMessage(midi.NoteOff(0, 60), 10)
	c.HandleMessage(midi.NoteOn(3, 40, 0), 20)
	c.HandleMessage(midi.ControlChange(0, 7, 64), 30)
	c.HandleMessage(midi.NoteOn(1, 45, 127), 40)
	for len(broker.ToModel) > 0 {
		(<-broker.ToModel)()
	}
	if diff := cmp.Diff(notes{{60, 100}, {45, 127}}, played); diff != "" {
		t.Fatalf("played notes mismatch (-want +got):\n%s", diff)
	}
}

func TestFindMIDIInputWithoutDevices(t *testing.T) {
	if _, ok := instrument.FindMIDIInput(instrument.NullMIDIContext{}, ""); ok {
		t.Fatal("null context should have no inputs")
	}
}
