package instrument

import "time"

type (
	// Clock is the source of time for the voices. AfterFunc callbacks must be
	// run on the goroutine that owns the Model.
	Clock interface {
		Now() time.Time
		AfterFunc(d time.Duration, f func()) Timer
	}

	Timer interface {
		Stop() bool
	}

	// BrokerClock is the wall clock. Its timers fire on their own goroutines
	// and post the callback to the broker, so the callback runs when the
	// owner of the model processes it.
	BrokerClock struct {
		Broker *Broker
	}
)

func (c BrokerClock) Now() time.Time { return time.Now() }

func (c BrokerClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { c.Broker.Post(f) })
}
