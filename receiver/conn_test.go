package receiver

import (
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chabad360/oscbridge/osc"
)

var fakeAddr = &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}

// fakeConn is a PacketConn whose reads block until a datagram is queued or
// the conn is closed.
type fakeConn struct {
	packets chan []byte
	closed  chan struct{}
	once    sync.Once
	reads   atomic.Int32
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		packets: make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) ReadFrom(b []byte) (int, net.Addr, error) {
	c.reads.Add(1)
	select {
	case <-c.closed:
		return 0, nil, net.ErrClosed
	default:
	}
	select {
	case p := <-c.packets:
		return copy(b, p), fakeAddr, nil
	case <-c.closed:
		return 0, nil, net.ErrClosed
	}
}

func (c *fakeConn) WriteTo(b []byte, _ net.Addr) (int, error) { return len(b), nil }
func (c *fakeConn) LocalAddr() net.Addr                       { return fakeAddr }
func (c *fakeConn) SetDeadline(time.Time) error               { return nil }
func (c *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error          { return nil }

func (c *fakeConn) Close() error {
	err := net.ErrClosed
	c.once.Do(func() {
		close(c.closed)
		err = nil
	})
	return err
}

// queue encodes p and queues it as one datagram.
func (c *fakeConn) queue(t *testing.T, p osc.Packet) {
	t.Helper()
	b, err := p.MarshalBinary()
	require.NoError(t, err)
	c.packets <- b
}

// refusingExecutor never has capacity.
type refusingExecutor struct{}

func (refusingExecutor) TryGo(_, _ func()) bool { return false }

func addresses(msgs []*osc.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Address
	}
	return out
}

// testName returns a receiver name unique to the test, keeping metric
// children apart.
func testName(t *testing.T) string {
	return "test/" + t.Name()
}
