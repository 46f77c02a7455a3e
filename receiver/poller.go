package receiver

import (
	"errors"
	"net"

	"github.com/chabad360/oscbridge/osc"
)

// State is the state of a Poller's receive operation.
type State int

const (
	// Idle means no receive is in flight; the next Poll starts one.
	Idle State = iota
	// Pending means a receive is in flight and has not completed.
	Pending
	// Finished means the last receive completed and its result was returned.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Finished:
		return "finished"
	}
	return "unknown"
}

type result struct {
	msgs []*osc.Message
	err  error
}

// Poller integrates a blocking receive into a host cycle. Each call to Poll
// advances it one step of Idle → Pending → Finished → Idle; the blocking read
// itself runs on an Executor. A Poller must be driven from a single
// goroutine.
type Poller struct {
	conn   net.PacketConn
	exec   Executor
	pipe   *pipeline
	state  State
	done   chan result
	closed bool
}

// NewPoller returns a Poller reading from conn.
func NewPoller(name string, conn net.PacketConn, opts ...Option) *Poller {
	o := newOptions(opts)
	o.logger = o.logger.With().Str("receiver", name).Logger()
	return newPoller(name, conn, o)
}

func newPoller(name string, conn net.PacketConn, o options) *Poller {
	exec := o.executor
	if exec == nil {
		exec = NewPool(1)
	}
	return &Poller{
		conn: conn,
		exec: exec,
		pipe: o.newPipeline(name, Cooperative),
		done: make(chan result, 1),
	}
}

// State returns the current state.
func (p *Poller) State() State {
	return p.state
}

// Poll advances the poller by one host cycle. It returns the messages of the
// receive that completed since the previous call, if any, and never blocks.
// A new receive is only started once the previous result has been returned,
// so at most one datagram's messages are returned per call.
func (p *Poller) Poll() []*osc.Message {
	if p.closed {
		return nil
	}

	switch p.state {
	case Idle, Finished:
		p.state = Idle
		if p.start() {
			p.state = Pending
		}
		return nil

	case Pending:
		select {
		case r := <-p.done:
			p.state = Finished
			return p.collect(r)
		default:
			return nil
		}
	}

	return nil
}

// start submits one receive. The result is delivered only after the job has
// released its Executor slot, so the Poll that consumes it can start the next
// receive straight away.
func (p *Poller) start() bool {
	var r result
	return p.exec.TryGo(
		func() { r.msgs, r.err = p.pipe.receive(p.conn) },
		func() { p.done <- r },
	)
}

func (p *Poller) collect(r result) []*osc.Message {
	if r.err != nil {
		if errors.Is(r.err, net.ErrClosed) {
			p.closed = true
			p.pipe.log.Debug().Msg("socket closed, poller stopped")
			return nil
		}
		p.pipe.logReceiveError(r.err)
		return nil
	}
	return r.msgs
}

// Close closes the poller's socket handle. A pending receive returns and its
// result is discarded.
func (p *Poller) Close() error {
	p.closed = true
	return p.conn.Close()
}
