package osc

import (
	"testing"
	"time"
)

func TestNewImmediateTimetag(t *testing.T) {
	tt := NewImmediateTimetag()
	if i := tt.ExpiresIn(); i != 0 {
		t.Errorf("NewImmediateTimetag() = %d, want 1", tt)
	}
}

func TestNewTimetag(t *testing.T) {
	ti := time.Now()
	tt := NewTimetag()
	if i := tt.ExpiresIn(); i != 0 {
		t.Errorf("NewTimetag() = %d, want %d", tt, NewTimetagFromTime(ti))
	}
}

func TestNewTimetagFromTime(t *testing.T) {
	tt := NewTimetagFromTime(time.Now().Add(time.Second))
	if i := tt.ExpiresIn(); i.Round(time.Millisecond) != time.Second {
		t.Errorf("NewTimetag() = %d, want %d", i.Round(time.Second), time.Second)
	}
}

func TestTimetag_ExpiresIn(t *testing.T) {
	tests := []struct {
		name string
		t    Timetag
		want time.Duration
	}{
		{"one_second", NewTimetagFromTime(time.Now().Add(time.Second)), time.Second},
		{"immediate", NewImmediateTimetag(), 0},
		{"late", NewTimetagFromTime(time.Now().Add(-time.Second)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.ExpiresIn(); got.Round(time.Millisecond) != tt.want {
				t.Errorf("ExpiresIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimetag_Time(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 15, 250_000_000, time.UTC)
	tt := NewTimetagFromTime(ts)

	if got, want := tt.SecondsSinceEpoch(), uint32(ts.Unix()+secondsFrom1900To1970); got != want {
		t.Errorf("SecondsSinceEpoch() = %d, want %d", got, want)
	}
	if got, want := tt.FractionalSecond(), uint32(1<<30); got != want {
		t.Errorf("FractionalSecond() = %d, want %d", got, want)
	}
	if got := tt.Time(); !got.Equal(ts) {
		t.Errorf("Time() = %v, want %v", got, ts)
	}

	var set Timetag
	set.SetTime(ts)
	if set != tt {
		t.Errorf("SetTime() = %d, want %d", set, tt)
	}

	b, err := tt.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if len(b) != 8 || b[0] != byte(tt>>56) || b[7] != byte(tt) {
		t.Errorf("MarshalBinary() = %v, want big endian %d", b, tt)
	}
}
