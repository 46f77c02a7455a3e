package host

// EventQueue is a double-buffered, per-cycle event list. Events sent during
// one cycle are readable during the next; Swap advances the cycle. An
// EventQueue belongs to the goroutine running the Loop and is not safe for
// concurrent use.
type EventQueue[T any] struct {
	prev []T
	cur  []T
}

// NewEventQueue returns an empty queue.
func NewEventQueue[T any]() *EventQueue[T] {
	return &EventQueue[T]{}
}

// Send appends e to the current cycle.
func (q *EventQueue[T]) Send(e T) {
	q.cur = append(q.cur, e)
}

// Read returns the events sent during the previous cycle, in send order. The
// slice is only valid until the next Swap.
func (q *EventQueue[T]) Read() []T {
	return q.prev
}

// Pending returns the number of events sent during the current cycle.
func (q *EventQueue[T]) Pending() int {
	return len(q.cur)
}

// Swap starts a new cycle: the current events become readable and the old
// readable events are discarded.
func (q *EventQueue[T]) Swap() {
	clear(q.prev)
	q.prev, q.cur = q.cur, q.prev[:0]
}

// Run implements System by swapping at the start of every cycle. Add the
// queue to a Loop before the systems that send to or read from it.
func (q *EventQueue[T]) Run(uint64) {
	q.Swap()
}
