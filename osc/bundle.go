package osc

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	bundleTagString = "#bundle"

	// bundleHeaderSize is the size of "#bundle\0" followed by the time tag.
	bundleHeaderSize = 16
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns an OSC Bundle, to be delivered immediately, holding the
// given elements.
func NewBundle(elems ...Packet) *Bundle {
	return &Bundle{Timetag: NewImmediateTimetag(), Elements: elems}
}

// NewBundleWithTime returns an empty OSC Bundle with the given time tag.
func NewBundleWithTime(time time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(time)}
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("unsupported OSC packet type: only Bundle and Message are supported")

	case *Bundle, *Message:
		b.Elements = append(b.Elements, t)
	}

	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	buf := bPool.Get().(*[]byte)
	defer bPool.Put(buf)

	bb, err := b.appendBinary((*buf)[:0], 0)
	if err != nil {
		return nil, err
	}
	*buf = bb[:0]

	out := make([]byte, len(bb))
	copy(out, bb)
	return out, nil
}

// appendBinary appends the encoded bundle to data with the following layout:
// 1. Bundle string: '#bundle'
// 2. OSC timetag
// 3. Length of first OSC bundle element
// 4. First bundle element
// 5. Length of n OSC bundle element
// 6. n bundle element
func (b *Bundle) appendBinary(data []byte, depth int) ([]byte, error) {
	if depth >= MaxBundleDepth {
		return data, fmt.Errorf("MarshalBinary: %w", ErrBundleTooDeep)
	}

	start := len(data)
	data = appendPaddedString(data, bundleTagString)
	data = binary.BigEndian.AppendUint64(data, uint64(b.Timetag))

	for _, elem := range b.Elements {
		// Reserve the size field and fill it in once the element is written.
		sizeAt := len(data)
		data = append(data, 0, 0, 0, 0)

		var err error
		switch e := elem.(type) {
		case *Message:
			data, err = e.appendBinary(data)
		case *Bundle:
			data, err = e.appendBinary(data, depth+1)
		default:
			err = fmt.Errorf("MarshalBinary: unsupported OSC packet type: %T", elem)
		}
		if err != nil {
			return data[:start], err
		}

		binary.BigEndian.PutUint32(data[sizeAt:], uint32(len(data)-sizeAt-bit32Size))
	}

	if len(data)-start > MaxPacketSize {
		return data[:start], fmt.Errorf("MarshalBinary: packet too large: %d", len(data)-start)
	}

	return data, nil
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (b *Bundle, err error) {
	b = &Bundle{}
	if err = b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(d []byte) error {
	data := make([]byte, len(d))
	copy(data, d)

	return b.unmarshalBinary(data, 0)
}

// unmarshalBinary is the actual implementation, it doesn't copy, so we can use a single copy for bundles.
func (b *Bundle) unmarshalBinary(data []byte, depth int) error {
	if depth >= MaxBundleDepth {
		return fmt.Errorf("UnmarshalBinary: %w", ErrBundleTooDeep)
	}

	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly")
	}

	if len(data) < bundleHeaderSize {
		return fmt.Errorf("UnmarshalBinary: bundle is too short")
	}

	// Read the '#bundle' OSC string
	startTag, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	data = data[n:]

	if startTag != bundleTagString {
		return fmt.Errorf("invalid bundle start tag: %s", startTag)
	}

	// Read the timetag
	b.Timetag = Timetag(binary.BigEndian.Uint64(data[:bit64Size]))
	data = data[bit64Size:]
	b.Elements = nil

	// Read until the end of the buffer
	for len(data) > 0 {
		if len(data) < bit32Size {
			return fmt.Errorf("UnmarshalBinary: truncated bundle element size")
		}

		// Read the size of the bundle element
		length := int(binary.BigEndian.Uint32(data[:bit32Size]))
		data = data[bit32Size:]
		if length > len(data) {
			return fmt.Errorf("invalid bundle element length: %d", length)
		}

		p, err := parsePacket(data[:length], depth+1)
		if err != nil {
			return err
		}
		data = data[length:]
		b.Elements = append(b.Elements, p)
	}

	return nil
}
