package receiver

// Hub owns the shared state of threaded receivers: the Inbox they push into
// and the Registry of their socket handles. Receivers sharing a Hub fan in to
// one Inbox; a Hub lives as long as its owner keeps it, not the process.
type Hub struct {
	inbox    Inbox
	registry Registry
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{}
}

// Inbox returns the hub's inbox.
func (h *Hub) Inbox() *Inbox {
	return &h.inbox
}

// Registry returns the hub's socket registry.
func (h *Hub) Registry() *Registry {
	return &h.registry
}

// Drain empties the inbox into fn in arrival order.
func (h *Hub) Drain(fn func(Delivery)) int {
	return h.inbox.Drain(fn)
}

// Close closes every registered socket handle, which stops the readers
// blocked on them.
func (h *Hub) Close() error {
	return h.registry.closeAll()
}
