package osc

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Client enables you to send OSC Packets to a specified server.
type Client struct {
	conn *net.UDPConn
}

// Dial creates a new OSC Client with a connection to the specified server.
func Dial(addr string) (*Client, error) {
	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialUDP("udp", nil, a)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send sends an OSC Packet to the server.
func (c *Client) Send(packet Packet) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = c.conn.Write(data)
	return err
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Sender sends fire-and-forget OSC datagrams to Host:Port. Each send uses a
// fresh ephemeral socket; IPv6 is used when Host contains a colon.
type Sender struct {
	Host string
	Port int
}

// NewSender returns a Sender for the given host and port.
func NewSender(host string, port int) *Sender {
	return &Sender{Host: host, Port: port}
}

// IPv6 reports whether the destination is an IPv6 host.
func (s *Sender) IPv6() bool {
	return strings.Contains(s.Host, ":")
}

// Addr returns the destination in host:port form.
func (s *Sender) Addr() string {
	return net.JoinHostPort(strings.Trim(s.Host, "[]"), strconv.Itoa(s.Port))
}

// Send encodes a message with the given address and arguments and sends it
// as a single datagram.
func (s *Sender) Send(address string, args ...interface{}) error {
	return s.SendPacket(NewMessage(address, args...))
}

// SendPacket encodes p and sends it as a single datagram.
func (s *Sender) SendPacket(p Packet) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return fmt.Errorf("Send: %w", err)
	}

	network, local := "udp4", "0.0.0.0:0"
	if s.IPv6() {
		network, local = "udp6", "[::]:0"
	}

	dst, err := net.ResolveUDPAddr(network, s.Addr())
	if err != nil {
		return fmt.Errorf("Send: %w", err)
	}

	conn, err := net.ListenPacket(network, local)
	if err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	defer conn.Close()

	if _, err = conn.WriteTo(data, dst); err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	return nil
}
