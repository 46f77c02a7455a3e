package receiver

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chabad360/oscbridge/osc"
)

// TimeLayout is the timestamp layout used by Format.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Format renders msg for debug logging:
//
//	[2024-03-01 12:30:15.250000] Received OSC Message: /test 1 2 a (type tags: 'ifs')
//
// Arguments without a debug tag render with their OSC wire tag, or '?' when
// they have none, and a generic value; Format never fails.
func Format(msg *osc.Message, now time.Time) string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(now.Format(TimeLayout))
	sb.WriteString("] Received OSC Message: ")
	sb.WriteString(msg.Address)

	for _, arg := range msg.Arguments {
		sb.WriteByte(' ')
		sb.WriteString(argString(arg))
	}

	sb.WriteString(" (type tags: '")
	sb.WriteString(TypeTags(msg.Arguments))
	sb.WriteString("')")
	return sb.String()
}

// TypeTags returns the compact debug tag string for args: 'i' for int32 and
// bool, 'f' for float32 and float64, 's' for string and 'b' for blob.
// Other OSC values use their wire tag. Go types with no OSC mapping, such as
// int or uint8, get '?'.
func TypeTags(args []interface{}) string {
	tags := make([]byte, 0, len(args))
	for _, arg := range args {
		tags = append(tags, typeTag(arg))
	}
	return string(tags)
}

func typeTag(arg interface{}) byte {
	switch arg.(type) {
	case int32, bool:
		return 'i'
	case float32, float64:
		return 'f'
	case string:
		return 's'
	case []byte:
		return 'b'
	}
	if t := osc.ToTypeTag(arg); t != osc.TypeInvalid {
		return byte(t)
	}
	return '?'
}

func argString(arg interface{}) string {
	switch t := arg.(type) {
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []byte:
		return fmt.Sprint(t)
	case osc.Timetag:
		return t.Time().UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%v", arg)
}
