package host

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chabad360/oscbridge/internal/testutil/testlog"
)

func TestEventQueue(t *testing.T) {
	testlog.Start(t)
	q := NewEventQueue[string]()

	q.Send("a")
	q.Send("b")
	assert.Empty(t, q.Read())
	assert.Equal(t, 2, q.Pending())

	q.Swap()
	assert.Equal(t, []string{"a", "b"}, q.Read())
	assert.Zero(t, q.Pending())

	q.Send("c")
	assert.Equal(t, []string{"a", "b"}, q.Read())

	q.Swap()
	assert.Equal(t, []string{"c"}, q.Read())

	q.Swap()
	assert.Empty(t, q.Read())
}

func TestLoop_StepOrder(t *testing.T) {
	testlog.Start(t)
	var l Loop
	q := NewEventQueue[uint64]()

	var seen [][]uint64
	l.Add(
		q,
		SystemFunc(func(cycle uint64) { q.Send(cycle) }),
		SystemFunc(func(uint64) {
			seen = append(seen, append([]uint64(nil), q.Read()...))
		}),
	)

	l.Step()
	l.Step()
	l.Step()

	assert.EqualValues(t, 3, l.Cycle())
	assert.Equal(t, [][]uint64{nil, {1}, {2}}, seen)
}

func TestLoop_Run(t *testing.T) {
	testlog.Start(t)
	nop := zerolog.Nop()
	l := Loop{Rate: time.Millisecond, Logger: &nop}

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan uint64, 100)
	l.Add(SystemFunc(func(cycle uint64) {
		if cycle == 3 {
			cancel()
		}
		select {
		case ran <- cycle:
		default:
		}
	}))

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.GreaterOrEqual(t, l.Cycle(), uint64(3))
	assert.EqualValues(t, 1, <-ran)
}
