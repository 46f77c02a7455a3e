package receiver

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Option configures a Receiver, Poller or Reader.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	executor Executor
	hub      *Hub
	debug    bool
	now      func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		logger: log.Logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExecutor sets the Executor cooperative receivers run their blocking
// receives on. The default is a private single-slot Pool.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithHub sets the Hub threaded receivers push into. The default is a
// private Hub per receiver.
func WithHub(h *Hub) Option {
	return func(o *options) {
		o.hub = h
	}
}

// WithDebugPrint logs every decoded message with Format.
func WithDebugPrint(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithClock sets the clock used for debug timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// newPipeline builds the receive step for the named receiver.
func (o options) newPipeline(name string, mode Mode) *pipeline {
	return &pipeline{
		log:    o.logger.With().Str("mode", string(mode)).Logger(),
		debug:  o.debug,
		stats:  newStats(name, mode),
		now:    o.now,
		errLog: &rate.Sometimes{First: 1, Interval: time.Second},
	}
}
