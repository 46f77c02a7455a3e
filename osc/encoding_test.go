package osc

import (
	"errors"
	"io"
	"testing"
)

func TestParsePaddedString(t *testing.T) {
	for _, tt := range []struct {
		buf   []byte // buffer
		want  int    // bytes needed
		want1 string // resulting string
		err   error
	}{
		{[]byte{'t', 'e', 's', 't', 's', 't', 'r', 'i', 'n', 'g', 0, 0}, 12, "teststring", nil},
		{[]byte{'t', 'e', 's', 't', 'e', 'r', 's', 0}, 8, "testers", nil},
		{[]byte{'t', 'e', 's', 't', 's', 0, 0, 0}, 8, "tests", nil},
		{[]byte{'t', 'e', 's', 0, 0, 0, 0, 0}, 4, "tes", nil}, // OSC uses null terminated strings
		{[]byte{'t', 'e', 's', 't'}, 0, "", io.EOF},           // if there is no null byte at the end, it doesn't work.
		{[]byte{'t', 'e', 's', 't', 's', 0}, 0, "", io.ErrUnexpectedEOF},
	} {
		got, got1, err := parsePaddedString(tt.buf)
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: Error reading padded string: %s", tt.want1, err)
		}
		if got1 != tt.want {
			t.Errorf("%s: Bytes needed don't match; got = %d, want = %d", tt.want1, got1, tt.want)
		}
		if got != tt.want1 {
			t.Errorf("%s: Strings don't match; got = %b, want = %b", tt.want1, []byte(got), []byte(tt.want1))
		}
	}
}

func TestAppendPaddedString(t *testing.T) {
	for _, tt := range []struct {
		str  string
		want int
	}{
		{"testString", 12},
		{"abc", 4},
		{"abcd", 8},
		{"", 4},
	} {
		got := appendPaddedString(nil, tt.str)
		if len(got) != tt.want {
			t.Errorf("%q: number of written bytes should be %d and is %d", tt.str, tt.want, len(got))
		}
		for _, c := range got[len(tt.str):] {
			if c != 0 {
				t.Errorf("%q: padding isn't zeroed: %v", tt.str, got)
				break
			}
		}
	}
}

func TestBlob(t *testing.T) {
	for _, data := range [][]byte{{}, {1}, {1, 2, 3, 4}, {1, 2, 3, 4, 5}} {
		b := appendBlob(nil, data)
		if len(b)%4 != 0 {
			t.Errorf("%v: blob isn't 32-bit aligned: %d", data, len(b))
		}
		got, n, err := parseBlob(b)
		if err != nil {
			t.Fatalf("%v: parseBlob() error = %v", data, err)
		}
		if n != len(b) {
			t.Errorf("%v: parseBlob() consumed %d, want %d", data, n, len(b))
		}
		if string(got) != string(data) {
			t.Errorf("parseBlob() = %v, want %v", got, data)
		}
	}

	if _, _, err := parseBlob([]byte{0, 0}); err == nil {
		t.Errorf("parseBlob() of a truncated size should fail")
	}
}

func TestPadBytesNeeded(t *testing.T) {
	var n int
	n = padBytesNeeded(4)
	if n != 0 {
		t.Errorf("Number of pad bytes should be 0 and is: %d", n)
	}

	n = padBytesNeeded(3)
	if n != 1 {
		t.Errorf("Number of pad bytes should be 1 and is: %d", n)
	}

	n = padBytesNeeded(1)
	if n != 3 {
		t.Errorf("Number of pad bytes should be 3 and is: %d", n)
	}

	n = padBytesNeeded(0)
	if n != 0 {
		t.Errorf("Number of pad bytes should be 0 and is: %d", n)
	}

	n = padBytesNeeded(32)
	if n != 0 {
		t.Errorf("Number of pad bytes should be 0 and is: %d", n)
	}

	n = padBytesNeeded(63)
	if n != 1 {
		t.Errorf("Number of pad bytes should be 1 and is: %d", n)
	}

	n = padBytesNeeded(10)
	if n != 2 {
		t.Errorf("Number of pad bytes should be 2 and is: %d", n)
	}
}
