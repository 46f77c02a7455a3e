// Package host is a minimal fixed-rate host: systems run once per cycle, in
// the order they were added, and exchange events through EventQueues.
package host

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultRate is the cycle period used when Loop.Rate is zero.
const DefaultRate = 10 * time.Millisecond

// System is run once per cycle.
type System interface {
	Run(cycle uint64)
}

// SystemFunc adapts a function to a System.
type SystemFunc func(cycle uint64)

// Run implements System.
func (f SystemFunc) Run(cycle uint64) {
	f(cycle)
}

// Loop runs its systems once per tick.
type Loop struct {
	// Rate is the cycle period.
	Rate time.Duration
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger

	systems []System
	cycle   uint64
}

// Add appends systems to the cycle.
func (l *Loop) Add(systems ...System) {
	l.systems = append(l.systems, systems...)
}

// Cycle returns the number of completed cycles.
func (l *Loop) Cycle() uint64 {
	return l.cycle
}

// Step runs one cycle.
func (l *Loop) Step() {
	l.cycle++
	for _, s := range l.systems {
		s.Run(l.cycle)
	}
}

// Run steps the loop every Rate until ctx is done. Cycles that fall behind
// are dropped rather than run back to back.
func (l *Loop) Run(ctx context.Context) error {
	rate := l.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	logger := log.Logger
	if l.Logger != nil {
		logger = *l.Logger
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	logger.Debug().Dur("rate", rate).Int("systems", len(l.systems)).Msg("host loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Uint64("cycles", l.cycle).Msg("host loop stopped")
			return nil
		case <-ticker.C:
			l.Step()
		}
	}
}
