package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	bit32Size = 4
	bit64Size = 8

	// MaxPacketSize is the largest OSC packet that will be read or written.
	MaxPacketSize = 65507
)

////
// De/Encoding functions
////

// parseBlob parses an OSC blob from the blob byte array. Padding bytes are
// consumed but not returned.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: %w", io.ErrUnexpectedEOF)
	}

	// First, get the length
	blobLen := int(binary.BigEndian.Uint32(data[:bit32Size]))
	data = data[bit32Size:]

	if blobLen < 0 || blobLen > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: invalid blob length %d", blobLen)
	}

	n := bit32Size + blobLen
	return data[:blobLen], n + padBytesNeeded(n), nil
}

// appendBlob appends data as an OSC blob to b. If the length of data isn't
// 32-bit aligned, padding bytes will be added.
func appendBlob(b []byte, data []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(data)))
	b = append(b, data...)
	return appendPadding(b, bit32Size+len(data))
}

// parsePaddedString reads a padded string from the given slice and returns the
// string and the number of bytes consumed, padding included.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("parsePaddedString: %w", io.EOF)
	}

	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(data) {
		return "", 0, fmt.Errorf("parsePaddedString: %w", io.ErrUnexpectedEOF)
	}

	return string(data[:pos]), n, nil
}

// appendPaddedString appends a null terminated, 32-bit aligned string to b.
func appendPaddedString(b []byte, str string) []byte {
	b = append(b, str...)
	b = append(b, 0)
	return appendPadding(b, len(str)+1)
}

// appendPadding appends the zero bytes needed to align an element of
// elementLen bytes.
func appendPadding(b []byte, elementLen int) []byte {
	for i := padBytesNeeded(elementLen); i > 0; i-- {
		b = append(b, 0)
	}
	return b
}

// appendTypeTags appends the padded type tag string for elems to b.
func appendTypeTags(b []byte, elems []interface{}) ([]byte, error) {
	start := len(b)
	b = append(b, ',')
	for _, elem := range elems {
		s := ToTypeTag(elem)
		if s == TypeInvalid {
			return b[:start], fmt.Errorf("appendTypeTags: unsupported type: %T", elem)
		}
		b = append(b, byte(s))
	}
	b = append(b, 0)

	return appendPadding(b, len(b)-start), nil
}

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
