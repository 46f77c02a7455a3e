package osc

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestBundle_MarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.obj.MarshalBinary()
			if (err != nil) != tt.wantErr {
				t.Errorf("MarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.raw) {
				t.Errorf("MarshalBinary() got = %q, want %q", got, tt.raw)
			}
		})
	}
}

func TestBundle_UnmarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			m := new(Bundle)
			if err := m.UnmarshalBinary(tt.raw); (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(m, tt.obj) {
				t.Errorf("UnmarshalBinary() got = %v, want %v", m, tt.obj)
			}
		})
	}
}

func TestBundle_UnmarshalBinaryMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"too_short", []byte("#bundle\x00")},
		{"unaligned", cat(immediate, "\x00")},
		{"bad_tag", []byte("#bundlx\x00\x00\x00\x00\x00\x00\x00\x00\x01")},
		{"element_too_long", cat(immediate, "\x00\x00\x00\x10", msgA1)},
		{"bad_element", cat(immediate, "\x00\x00\x00\x04", "abc\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBundleFromData(tt.raw); err == nil {
				t.Errorf("NewBundleFromData(%q) should fail", tt.raw)
			}
		})
	}
}

func TestBundle_Append(t *testing.T) {
	b := NewBundleWithTime(time.Now())
	if err := b.Append(NewMessage("/a")); err != nil {
		t.Fatalf("Append(message) error = %v", err)
	}
	if err := b.Append(NewBundle()); err != nil {
		t.Fatalf("Append(bundle) error = %v", err)
	}
	if err := b.Append(Timetag(1)); err == nil {
		t.Errorf("Append(Timetag) should fail")
	}
	if len(b.Elements) != 2 {
		t.Errorf("len(Elements) = %d, want 2", len(b.Elements))
	}
}

// nestBundles wraps msg in depth bundles.
func nestBundles(msg *Message, depth int) Packet {
	var p Packet = msg
	for i := 0; i < depth; i++ {
		p = NewBundle(p)
	}
	return p
}

func TestBundle_Depth(t *testing.T) {
	ok := nestBundles(NewMessage("/deep", int32(1)), MaxBundleDepth)
	data, err := ok.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() at MaxBundleDepth error = %v", err)
	}
	if _, err = ParsePacket(data); err != nil {
		t.Fatalf("ParsePacket() at MaxBundleDepth error = %v", err)
	}

	tooDeep := nestBundles(NewMessage("/deep", int32(1)), MaxBundleDepth+1)
	if _, err = tooDeep.MarshalBinary(); !errors.Is(err, ErrBundleTooDeep) {
		t.Errorf("MarshalBinary() error = %v, want %v", err, ErrBundleTooDeep)
	}

	// Hand-build the over-deep encoding by wrapping a valid one.
	raw := data
	size := []byte{0, 0, 0, 0}
	n := len(raw)
	size[0], size[1], size[2], size[3] = byte(n>>24), byte(n>>16), byte(n>>8), byte(n)
	raw = cat(immediate, string(size), string(raw))
	if _, err = ParsePacket(raw); !errors.Is(err, ErrBundleTooDeep) {
		t.Errorf("ParsePacket() error = %v, want %v", err, ErrBundleTooDeep)
	}
}
