package receiver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrStarted is returned when a Reader is started twice.
var ErrStarted = errors.New("reader already started")

// Reader runs a receive loop on its own goroutine, pushing every decoded
// message onto its Hub's Inbox. Its throughput is independent of the host
// cycle; the Inbox grows without bound if the host stops draining it.
type Reader struct {
	name    string
	hub     *Hub
	conn    net.PacketConn
	pipe    *pipeline
	index   int
	started bool
	done    chan struct{}
}

// NewReader returns a Reader that will read from conn into hub.
func NewReader(name string, hub *Hub, conn net.PacketConn, opts ...Option) *Reader {
	o := newOptions(opts)
	o.logger = o.logger.With().Str("receiver", name).Logger()
	return newReader(name, hub, conn, o)
}

func newReader(name string, hub *Hub, conn net.PacketConn, o options) *Reader {
	return &Reader{
		name:  name,
		hub:   hub,
		conn:  conn,
		pipe:  o.newPipeline(name, Threaded),
		index: -1,
		done:  make(chan struct{}),
	}
}

// Start registers the reader's socket handle with the Hub and starts the
// receive loop. The loop runs until the handle is closed or ctx is done.
// It returns the handle's Registry index.
func (r *Reader) Start(ctx context.Context) (int, error) {
	if r.started {
		return r.index, fmt.Errorf("Start: %w", ErrStarted)
	}
	r.started = true
	r.index = r.hub.Registry().Register(r.conn)

	go r.run(ctx, r.index)
	return r.index, nil
}

// Index returns the Registry index of the reader's handle, or -1 before
// Start.
func (r *Reader) Index() int {
	return r.index
}

// Done is closed when the receive loop has exited.
func (r *Reader) Done() <-chan struct{} {
	return r.done
}

// Close closes the reader's socket handle, which ends the receive loop.
func (r *Reader) Close() error {
	return r.conn.Close()
}

func (r *Reader) run(ctx context.Context, index int) {
	defer close(r.done)

	conn, ok := r.hub.Registry().Get(index)
	if !ok {
		r.pipe.log.Error().Int("index", index).Msg("socket handle not registered")
		return
	}

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	var tempDelay time.Duration
	for {
		msgs, err := r.pipe.receive(conn)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				r.pipe.log.Debug().Msg("socket closed, reader stopped")
				return
			}
			r.pipe.logReceiveError(err)

			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			if max := 1 * time.Second; tempDelay > max {
				tempDelay = max
			}
			t := time.NewTimer(tempDelay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return
			}
			continue
		}
		tempDelay = 0

		if len(msgs) > 0 {
			r.hub.Inbox().Push(r.name, msgs...)
		}
	}
}
