package receiver

import "github.com/chabad360/oscbridge/osc"

// Event carries one decoded message into the host's event stream.
type Event struct {
	// Receiver is the name of the receiver that read the message.
	Receiver string
	// Seq numbers events in publish order, starting at 1.
	Seq     uint64
	Message *osc.Message
}

// EventWriter is the host's per-cycle event stream.
type EventWriter interface {
	Send(Event)
}

// EventWriterFunc adapts a function to an EventWriter.
type EventWriterFunc func(Event)

// Send implements EventWriter.
func (f EventWriterFunc) Send(e Event) {
	f(e)
}

// Bridge appends decoded messages to an EventWriter, one Event per message,
// in the order given. It is not safe for concurrent use and is meant to be
// called from the goroutine that owns the host cycle.
type Bridge struct {
	w   EventWriter
	seq uint64
}

// NewBridge returns a Bridge writing to w.
func NewBridge(w EventWriter) *Bridge {
	return &Bridge{w: w}
}

// Publish sends one Event per message, preserving order.
func (b *Bridge) Publish(from string, msgs []*osc.Message) {
	for _, m := range msgs {
		b.send(from, m)
	}
}

func (b *Bridge) publishDelivery(d Delivery) {
	b.send(d.Receiver, d.Message)
}

func (b *Bridge) send(from string, m *osc.Message) {
	b.seq++
	b.w.Send(Event{Receiver: from, Seq: b.seq, Message: m})
}

// Published returns the number of events sent so far.
func (b *Bridge) Published() uint64 {
	return b.seq
}
