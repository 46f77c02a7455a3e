package osc

// testCase pairs an encoded packet with its decoded form.
type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

var result Packet

// cat joins raw fragments into one encoded packet.
func cat(parts ...string) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

const (
	msgA1 = "/a\x00\x00,i\x00\x00\x00\x00\x00\x01"
	msgB  = "/b\x00\x00,\x00\x00\x00"
	// immediate is "#bundle" with the immediate time tag.
	immediate = "#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01"
)

var messageTestCases = []testCase{
	{
		name: "no_arguments",
		obj:  &Message{Address: "/b"},
		raw:  []byte(msgB),
	},
	{
		name: "int32",
		obj:  &Message{Address: "/a", Arguments: []interface{}{int32(1)}},
		raw:  []byte(msgA1),
	},
	{
		name: "int_float_string",
		obj:  &Message{Address: "/test", Arguments: []interface{}{int32(1), float32(2), "a"}},
		raw: cat("/test\x00\x00\x00", ",ifs\x00\x00\x00\x00",
			"\x00\x00\x00\x01", "\x40\x00\x00\x00", "a\x00\x00\x00"),
	},
	{
		name: "blob_bools_nil",
		obj:  &Message{Address: "/b", Arguments: []interface{}{[]byte{1, 2, 3}, true, nil, false}},
		raw:  cat("/b\x00\x00", ",bTNF\x00\x00\x00", "\x00\x00\x00\x03\x01\x02\x03\x00"),
	},
	{
		name: "int64_double_timetag",
		obj:  &Message{Address: "/w", Arguments: []interface{}{int64(-1), float64(0.5), Timetag(1)}},
		raw: cat("/w\x00\x00", ",hdt\x00\x00\x00\x00",
			"\xff\xff\xff\xff\xff\xff\xff\xff",
			"\x3f\xe0\x00\x00\x00\x00\x00\x00",
			"\x00\x00\x00\x00\x00\x00\x00\x01"),
	},
}

var bundleTestCases = []testCase{
	{
		name: "empty",
		obj:  &Bundle{Timetag: 1},
		raw:  []byte(immediate),
	},
	{
		name: "single_message",
		obj: &Bundle{Timetag: 1, Elements: []Packet{
			&Message{Address: "/a", Arguments: []interface{}{int32(1)}},
		}},
		raw: cat(immediate, "\x00\x00\x00\x0c", msgA1),
	},
	{
		name: "nested",
		obj: &Bundle{Timetag: 1, Elements: []Packet{
			&Bundle{Timetag: 1, Elements: []Packet{
				&Message{Address: "/a", Arguments: []interface{}{int32(1)}},
			}},
			&Message{Address: "/b"},
		}},
		raw: cat(immediate,
			"\x00\x00\x00\x20", immediate, "\x00\x00\x00\x0c", msgA1,
			"\x00\x00\x00\x08", msgB),
	},
}
