package instrument

import "time"

type (
	// Broker carries messages to the goroutine that owns the Model. At the
	// moment, the only messages are closures to be executed with
	// Model.Process.
	//
	// CloseGUI has a capacity of 1, so an empty struct can always be sent to
	// it without blocking; if it is already full, someone else has requested
	// the closing already. FinishedGUI is closed by the GUI when it has
	// stopped, after which nothing reads ToModel anymore.
	Broker struct {
		ToModel chan func()

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:     make(chan func(), 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
	}
}

// Post sends f to the model goroutine, blocking while the queue is full.
// Returns false if the GUI has already finished and f will never run.
func (b *Broker) Post(f func()) bool {
	select {
	case b.ToModel <- f:
		return true
	case <-b.FinishedGUI:
		return false
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
