/*
Package instrument contains the GUI-independent model of the strum instrument.

The Model owns one StringVoice per string and a Fretboard. The GUI translates
pointer events into calls such as PointerMove and Click, and asks the model for
the string polylines to draw each frame with StringPath.

The Model is owned by a single goroutine, normally the GUI goroutine. Work that
completes elsewhere, like timer callbacks and sample loading, is posted as
func() closures to Broker.ToModel, and the owner runs them with Process. Thus
no locks are needed inside the model.
*/
package instrument
