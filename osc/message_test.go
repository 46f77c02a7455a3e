package osc

import (
	"reflect"
	"testing"
)

func TestMessage_Append(t *testing.T) {
	oscAddress := "/address"
	message := NewMessage(oscAddress)

	if err := message.Append("string argument", int32(123456789), true); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if len(message.Arguments) != 3 {
		t.Errorf("Number of arguments should be %d and is %d", 3, len(message.Arguments))
	}

	if err := message.Append(42); err == nil {
		t.Errorf("Append() of an int should fail")
	}
	if len(message.Arguments) != 3 {
		t.Errorf("failed Append() changed the arguments: %v", message.Arguments)
	}
}

func TestOscMessageMatch(t *testing.T) {
	tc := []struct {
		desc        string
		addr        string
		addrPattern string
		want        bool
	}{
		{
			"match everything",
			"*",
			"/a/b",
			true,
		},
		{
			"don't match",
			"/a/b",
			"/a",
			false,
		},
		{
			"match alternatives",
			"/a/{foo,bar}",
			"/a/foo",
			true,
		},
		{
			"don't match if address is not part of the alternatives",
			"/a/{foo,bar}",
			"/a/bob",
			false,
		},
	}

	for _, tt := range tc {
		msg := NewMessage(tt.addr)

		got := msg.Match(tt.addrPattern)
		if got != tt.want {
			t.Errorf("%s: msg.Match('%s') = '%t', want = '%t'", tt.desc, tt.addrPattern, got, tt.want)
		}
	}
}

func TestMessage_TypeTags(t *testing.T) {
	msg := NewMessage("/test", int32(1), float32(2), "a", []byte{1}, true, false, nil, int64(3), float64(4), Timetag(5))
	got, err := msg.TypeTags()
	if err != nil {
		t.Fatalf("TypeTags() error = %v", err)
	}
	if want := ",ifsbTFNhdt"; got != want {
		t.Errorf("TypeTags() = %q, want %q", got, want)
	}

	if _, err := NewMessage("/bad", uint8(1)).TypeTags(); err == nil {
		t.Errorf("TypeTags() with uint8 should fail")
	}

	var nilMsg *Message
	if _, err := nilMsg.TypeTags(); err == nil {
		t.Errorf("TypeTags() on nil message should fail")
	}
}

func TestMessage_String(t *testing.T) {
	msg := NewMessage("/test", int32(1), float32(2.5), "a", []byte{1}, nil)
	if got, want := msg.String(), "/test ,ifsbN 1 2.5 a blob Nil"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMessage_MarshalBinary(t *testing.T) {
	for _, tt := range messageTestCases {
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

func TestMessage_MarshalBinaryUnsupported(t *testing.T) {
	msg := NewMessage("/bad", struct{}{})
	if _, err := msg.MarshalBinary(); err == nil {
		t.Errorf("MarshalBinary() of an unsupported argument should fail")
	}
}

func TestMessage_UnmarshalBinary(t *testing.T) {
	for _, tt := range messageTestCases {
		t.Run(tt.name, func(t *testing.T) {
			m := new(Message)
			if err := m.UnmarshalBinary(tt.raw); (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(m, tt.obj) {
				t.Errorf("UnmarshalBinary() got = %v, want %v", m, tt.obj)
			}
		})
	}
}

func TestMessage_UnmarshalBinaryMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"no_slash", []byte("abc\x00")},
		{"unaligned", []byte("/ab\x00,")},
		{"unterminated_address", []byte("/abc")},
		{"bad_typetag_string", []byte("/a\x00\x00i\x00\x00\x00")},
		{"unknown_typetag", []byte("/a\x00\x00,x\x00\x00")},
		{"missing_int", []byte("/a\x00\x00,i\x00\x00")},
		{"missing_double", []byte("/a\x00\x00,d\x00\x00\x00\x00\x00\x01")},
		{"blob_too_long", cat("/a\x00\x00", ",b\x00\x00", "\x00\x00\x00\x09\x01\x02\x03\x04")},
		{"string_unterminated", cat("/a\x00\x00", ",s\x00\x00", "abcd")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMessageFromData(tt.raw); err == nil {
				t.Errorf("NewMessageFromData(%q) should fail", tt.raw)
			}
		})
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	args := []interface{}{
		int32(-7), float32(1.25), float64(-3.5), "hello world", []byte{0xde, 0xad, 0xbe, 0xef, 0x01},
		true, false, nil, int64(1 << 40), Timetag(0x0102030405060708), "",
	}
	for i := range args {
		orig := NewMessage("/round/trip", args[i:]...)
		data, err := orig.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() error = %v", err)
		}
		got, err := NewMessageFromData(data)
		if err != nil {
			t.Fatalf("NewMessageFromData() error = %v", err)
		}
		if !reflect.DeepEqual(got, orig) {
			t.Errorf("round trip got = %v, want %v", got, orig)
		}
	}
}
