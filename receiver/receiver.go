package receiver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrClosed is returned by operations on a closed Receiver.
var ErrClosed = errors.New("receiver closed")

// Receiver owns a bound socket and the strategy that bridges it into the
// host cycle.
type Receiver struct {
	id     uuid.UUID
	cfg    Config
	log    zerolog.Logger
	socket *Socket

	poller *Poller
	reader *Reader
	hub    *Hub
	ownHub bool

	closeOnce sync.Once
	closed    bool
	closeErr  error
}

// New binds the socket described by cfg and builds the strategy selected by
// cfg.Mode. A bind failure is returned and not retried.
func New(cfg Config, opts ...Option) (*Receiver, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	o := newOptions(opts)
	o.debug = o.debug || cfg.DebugPrint

	r := &Receiver{
		id:  uuid.New(),
		cfg: cfg,
	}
	o.logger = o.logger.With().
		Str("receiver", cfg.Name).
		Str("instance", r.id.String()).
		Logger()
	r.log = o.logger

	s, err := Bind(cfg)
	if err != nil {
		r.log.Error().Err(err).Int("port", cfg.Port).Msg("failed to bind socket")
		return nil, fmt.Errorf("New: %w", err)
	}
	r.socket = s
	if o.debug {
		r.log.Info().Msgf("Listening for OSC on %v", s.LocalAddr())
	}

	clone, err := s.Clone()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("New: %w", err)
	}

	switch cfg.Mode {
	case Cooperative:
		r.poller = newPoller(cfg.Name, clone, o)
	case Threaded:
		r.hub = o.hub
		if r.hub == nil {
			r.hub = NewHub()
			r.ownHub = true
		}
		r.reader = newReader(cfg.Name, r.hub, clone, o)
	}

	r.log.Debug().Str("mode", string(cfg.Mode)).Str("family", string(cfg.AddressFamily)).Msg("receiver ready")
	return r, nil
}

// Start starts the background reader of a threaded receiver. It does
// nothing for a cooperative receiver, whose work happens in Update.
func (r *Receiver) Start(ctx context.Context) error {
	if r.closed {
		return fmt.Errorf("Start: %w", ErrClosed)
	}
	if r.reader == nil {
		return nil
	}
	if _, err := r.reader.Start(ctx); err != nil {
		return fmt.Errorf("Start: %w", err)
	}
	return nil
}

// Update runs one host cycle and returns the number of events published.
//
// A cooperative receiver advances its Poller once and publishes what it
// returns. A threaded receiver drains its Hub; when several receivers share
// a Hub the first Update in a cycle publishes for all of them.
func (r *Receiver) Update(b *Bridge) int {
	if r.closed {
		return 0
	}
	if r.poller != nil {
		msgs := r.poller.Poll()
		b.Publish(r.cfg.Name, msgs)
		return len(msgs)
	}

	return r.hub.Drain(b.publishDelivery)
}

// Close closes the receiver's socket and its cloned handle. A threaded
// receiver's loop exits once its handle is closed. Close is idempotent.
func (r *Receiver) Close() error {
	r.closeOnce.Do(func() {
		r.closed = true

		var errs []error
		if r.poller != nil {
			errs = append(errs, r.poller.Close())
		}
		if r.reader != nil {
			errs = append(errs, r.reader.Close())
		}
		if r.ownHub {
			errs = append(errs, r.hub.Close())
		}
		errs = append(errs, r.socket.Close())

		for i, err := range errs {
			if errors.Is(err, net.ErrClosed) {
				errs[i] = nil
			}
		}
		r.closeErr = errors.Join(errs...)
		r.log.Debug().Msg("receiver closed")
	})
	return r.closeErr
}

// ID returns the receiver's instance id.
func (r *Receiver) ID() uuid.UUID {
	return r.id
}

// Name returns the configured name.
func (r *Receiver) Name() string {
	return r.cfg.Name
}

// Mode returns the concurrency mode.
func (r *Receiver) Mode() Mode {
	return r.cfg.Mode
}

// LocalAddr returns the bound address.
func (r *Receiver) LocalAddr() net.Addr {
	return r.socket.LocalAddr()
}

// Port returns the bound port.
func (r *Receiver) Port() int {
	return r.socket.Port()
}

// Hub returns the Hub of a threaded receiver, or nil.
func (r *Receiver) Hub() *Hub {
	return r.hub
}

// Poller returns the Poller of a cooperative receiver, or nil.
func (r *Receiver) Poller() *Poller {
	return r.poller
}
