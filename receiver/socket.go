package receiver

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrBind is returned when a receiver's socket cannot be bound. It is not
// retried: without a socket the receiver has nothing to do.
var ErrBind = errors.New("failed to bind socket")

// Socket is a bound UDP socket. It satisfies net.PacketConn.
type Socket struct {
	*net.UDPConn
	family AddressFamily
}

// bindHost returns the network and default host for the family.
func (f AddressFamily) bindHost() (network, host string) {
	if f == IPv6 {
		return "udp6", "::1"
	}
	return "udp4", "0.0.0.0"
}

// Bind binds a UDP socket for receiving on c.Port using c.AddressFamily.
func Bind(c Config) (*Socket, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("Bind: %w: %v", ErrBind, err)
	}

	network, host := c.AddressFamily.bindHost()
	if c.BindAddress != "" {
		host = c.BindAddress
	}

	addr, err := net.ResolveUDPAddr(network, net.JoinHostPort(host, strconv.Itoa(c.Port)))
	if err != nil {
		return nil, fmt.Errorf("Bind: %w: %v", ErrBind, err)
	}

	conn, err := net.ListenUDP(network, addr)
	if err != nil {
		return nil, fmt.Errorf("Bind: %w: %v", ErrBind, err)
	}

	return &Socket{UDPConn: conn, family: c.AddressFamily}, nil
}

// Family returns the address family the socket is bound to.
func (s *Socket) Family() AddressFamily {
	return s.family
}

// Port returns the local port, useful when bound to port 0.
func (s *Socket) Port() int {
	if a, ok := s.LocalAddr().(*net.UDPAddr); ok {
		return a.Port
	}
	return 0
}

// Clone returns an independent handle on the same underlying socket by
// duplicating its file descriptor. Closing the clone leaves s open, and
// datagrams are delivered to whichever handle reads first.
func (s *Socket) Clone() (*Socket, error) {
	f, err := s.File()
	if err != nil {
		return nil, fmt.Errorf("Clone: %w", err)
	}
	defer f.Close()

	pc, err := net.FilePacketConn(f)
	if err != nil {
		return nil, fmt.Errorf("Clone: %w", err)
	}

	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("Clone: unexpected connection type %T", pc)
	}

	return &Socket{UDPConn: conn, family: s.family}, nil
}
