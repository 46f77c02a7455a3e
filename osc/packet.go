package osc

import (
	"encoding"
	"errors"
	"fmt"
)

// MaxBundleDepth is the deepest level of bundle nesting that is encoded,
// decoded or flattened. A top-level bundle is at depth 0.
const MaxBundleDepth = 16

var (
	// ErrBundleTooDeep is returned when bundles are nested deeper than MaxBundleDepth.
	ErrBundleTooDeep = errors.New("bundle nested too deeply")

	// ErrInvalidPacket is returned for data that is neither a message nor a bundle.
	ErrInvalidPacket = errors.New("invalid OSC packet")
)

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// ParsePacket parses the given data into an OSC Message or Bundle. The data
// is copied, so the caller may reuse it once ParsePacket returns.
func ParsePacket(d []byte) (Packet, error) {
	data := make([]byte, len(d))
	copy(data, d)

	return parsePacket(data, 0)
}

// parsePacket doesn't copy data; depth is the number of enclosing bundles.
func parsePacket(data []byte, depth int) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ParsePacket: %w: empty packet", ErrInvalidPacket)
	}

	switch data[0] {
	case '/':
		m := &Message{}
		if err := m.unmarshalBinary(data); err != nil {
			return nil, err
		}
		return m, nil

	case '#':
		b := &Bundle{}
		if err := b.unmarshalBinary(data, depth); err != nil {
			return nil, err
		}
		return b, nil
	}

	return nil, fmt.Errorf("ParsePacket: %w: leading byte %q", ErrInvalidPacket, data[0])
}

// Flatten returns the messages contained in p in depth-first, left-to-right
// order. A Message yields itself; a Bundle yields the messages of each of its
// elements in turn.
func Flatten(p Packet) ([]*Message, error) {
	return appendFlattened(nil, p, 0)
}

func appendFlattened(out []*Message, p Packet, depth int) ([]*Message, error) {
	switch t := p.(type) {
	case *Message:
		return append(out, t), nil

	case *Bundle:
		if depth >= MaxBundleDepth {
			return nil, fmt.Errorf("Flatten: %w", ErrBundleTooDeep)
		}
		var err error
		for _, elem := range t.Elements {
			if out, err = appendFlattened(out, elem, depth+1); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("Flatten: %w: %T", ErrInvalidPacket, p)
}
