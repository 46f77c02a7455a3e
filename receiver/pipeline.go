package receiver

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/chabad360/oscbridge/osc"
)

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, osc.MaxPacketSize)
		return &b
	},
}

// DecodeError reports a datagram that was read but could not be decoded.
type DecodeError struct {
	From net.Addr
	Size int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %d bytes from %v: %v", e.Size, e.From, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// readPacket reads one datagram from c and returns its flattened messages.
// Socket errors are returned as is; decoding failures as a *DecodeError.
func readPacket(c net.PacketConn) ([]*osc.Message, net.Addr, error) {
	b := bufPool.Get().(*[]byte)
	defer bufPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}

	// ParsePacket copies, so the pooled buffer can be reused.
	p, err := osc.ParsePacket((*b)[:n])
	if err != nil {
		return nil, a, &DecodeError{From: a, Size: n, Err: err}
	}

	msgs, err := osc.Flatten(p)
	if err != nil {
		return nil, a, &DecodeError{From: a, Size: n, Err: err}
	}
	return msgs, a, nil
}

// pipeline is the receive step shared by both strategies: read, decode,
// flatten, count and optionally debug print.
type pipeline struct {
	log    zerolog.Logger
	debug  bool
	stats  *stats
	now    func() time.Time
	errLog *rate.Sometimes
}

// receive reads and decodes one datagram. A datagram that fails to decode is
// logged and dropped, yielding no messages and no error; socket errors are
// returned for the caller to handle.
func (p *pipeline) receive(c net.PacketConn) ([]*osc.Message, error) {
	msgs, from, err := readPacket(c)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			p.stats.datagrams.Inc()
			p.stats.decodeErrors.Inc()
			p.log.Warn().Err(de.Err).Stringer("from", addrStringer{from}).Int("size", de.Size).Msg("dropping malformed OSC packet")
			return nil, nil
		}
		if !errors.Is(err, net.ErrClosed) {
			p.stats.receiveErrors.Inc()
		}
		return nil, err
	}

	p.stats.datagrams.Inc()
	p.stats.messages.Add(float64(len(msgs)))

	if p.debug {
		now := p.now()
		for _, m := range msgs {
			p.log.Info().Msg(Format(m, now))
		}
	}
	return msgs, nil
}

// logReceiveError logs a socket error, at most about once a second so a
// failing socket cannot flood the log.
func (p *pipeline) logReceiveError(err error) {
	p.errLog.Do(func() {
		p.log.Warn().Err(err).Msg("error receiving from socket")
	})
}

// addrStringer keeps a nil net.Addr from panicking in Stringer.
type addrStringer struct {
	a net.Addr
}

func (s addrStringer) String() string {
	if s.a == nil {
		return "unknown"
	}
	return s.a.String()
}
