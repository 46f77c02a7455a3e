package receiver

import (
	"errors"
	"net"
	"sync"
)

// Registry is an append-only, indexed set of socket handles owned by threaded
// readers. An index returned by Register stays valid for the registry's life.
type Registry struct {
	mu    sync.RWMutex
	conns []net.PacketConn
}

// Register appends conn and returns its index.
func (r *Registry) Register(conn net.PacketConn) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns = append(r.conns, conn)
	return len(r.conns) - 1
}

// Get returns the handle registered at index i.
func (r *Registry) Get(i int) (net.PacketConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i < 0 || i >= len(r.conns) {
		return nil, false
	}
	return r.conns[i], true
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// closeAll closes every registered handle. Entries stay registered.
func (r *Registry) closeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, c := range r.conns {
		if err := c.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
