package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chabad360/oscbridge/osc"
)

// parseArg converts a command-line argument to an OSC value. A type prefix
// selects the type:
//
//	i:1  h:1  f:2.5  d:2.5  s:text  b:cafe  t:2006-01-02T15:04:05Z
//
// T, F and N are true, false and nil. Without a prefix, integers become
// int32, other numbers float32 and everything else a string.
func parseArg(raw string) (interface{}, error) {
	switch raw {
	case "T":
		return true, nil
	case "F":
		return false, nil
	case "N":
		return nil, nil
	}

	if len(raw) >= 2 && raw[1] == ':' {
		v := raw[2:]
		switch raw[0] {
		case 'i':
			n, err := strconv.ParseInt(v, 0, 32)
			if err != nil {
				return nil, fmt.Errorf("int32 %q: %w", v, err)
			}
			return int32(n), nil
		case 'h':
			n, err := strconv.ParseInt(v, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("int64 %q: %w", v, err)
			}
			return n, nil
		case 'f':
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return nil, fmt.Errorf("float32 %q: %w", v, err)
			}
			return float32(f), nil
		case 'd':
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("float64 %q: %w", v, err)
			}
			return f, nil
		case 's':
			return v, nil
		case 'b':
			b, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
			if err != nil {
				return nil, fmt.Errorf("blob %q: %w", v, err)
			}
			return b, nil
		case 't':
			if v == "now" {
				return osc.NewTimetag(), nil
			}
			ts, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return nil, fmt.Errorf("timetag %q: %w", v, err)
			}
			return osc.NewTimetagFromTime(ts), nil
		}
	}

	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return int32(n), nil
	}
	if f, err := strconv.ParseFloat(raw, 32); err == nil {
		return float32(f), nil
	}
	return raw, nil
}

func parseArgs(raw []string) ([]interface{}, error) {
	args := make([]interface{}, 0, len(raw))
	for i, r := range raw {
		a, err := parseArg(r)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args = append(args, a)
	}
	return args, nil
}
