package receiver

import (
	"sync"

	"github.com/chabad360/oscbridge/osc"
)

// Delivery is a decoded message tagged with the receiver that read it.
type Delivery struct {
	Receiver string
	Message  *osc.Message
}

// Inbox is the FIFO between threaded readers and the host cycle. A single
// mutex covers Push and Drain, so a drain observes each delivery exactly once.
//
// The inbox_depth gauge of each receiver tracks how many of its deliveries
// are queued; Drain resets every receiver it holds deliveries for.
type Inbox struct {
	mu    sync.Mutex
	queue []Delivery
	depth map[string]int
}

// Push appends msgs, in order, at the tail of the inbox and returns the new
// total depth.
func (in *Inbox) Push(from string, msgs ...*osc.Message) int {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, m := range msgs {
		in.queue = append(in.queue, Delivery{Receiver: from, Message: m})
	}

	if in.depth == nil {
		in.depth = make(map[string]int)
	}
	in.depth[from] += len(msgs)
	inboxDepth.WithLabelValues(from).Set(float64(in.depth[from]))

	return len(in.queue)
}

// Drain calls fn for every queued delivery from head to tail, then empties
// the inbox. It returns the number of deliveries drained. fn runs with the
// inbox locked and must not call back into the inbox.
func (in *Inbox) Drain(fn func(Delivery)) int {
	in.mu.Lock()
	defer in.mu.Unlock()

	n := len(in.queue)
	for _, d := range in.queue {
		fn(d)
	}
	clear(in.queue)
	in.queue = in.queue[:0]

	for from := range in.depth {
		inboxDepth.WithLabelValues(from).Set(0)
	}
	clear(in.depth)
	return n
}

// Len returns the number of queued deliveries.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()

	return len(in.queue)
}

// Depth returns the number of queued deliveries read by the named receiver.
func (in *Inbox) Depth(from string) int {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.depth[from]
}
