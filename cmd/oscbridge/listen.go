package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chabad360/oscbridge/internal/host"
	"github.com/chabad360/oscbridge/internal/logging"
	"github.com/chabad360/oscbridge/osc"
	"github.com/chabad360/oscbridge/receiver"
)

var (
	watch       []string
	metricsAddr string
	debugPrint  bool
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run the configured receivers until interrupted",
	Long: `Bind every configured receiver and run the host loop until Ctrl+C.

Each cycle the loop polls cooperative receivers, drains the threaded inbox,
and hands the events of the previous cycle to the dispatcher. Use --watch to
log messages sent to specific addresses; the message's address may be a
pattern.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if metricsAddr == "" {
			metricsAddr = cfg.MetricsAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return listen(ctx, logging.New("listen"))
	},
}

func init() {
	listenCmd.Flags().StringSliceVar(&watch, "watch", nil, "OSC addresses to log when a message matches them")
	listenCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	listenCmd.Flags().BoolVar(&debugPrint, "print", false, "print every decoded message")
}

func listen(ctx context.Context, logger zerolog.Logger) error {
	rcs, err := cfg.ReceiverConfigs()
	if err != nil {
		return err
	}

	cooperative := 0
	for _, rc := range rcs {
		if rc.Mode == receiver.Cooperative {
			cooperative++
		}
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = cooperative
	}
	if workers < cooperative {
		logger.Warn().Int("workers", workers).Int("cooperative", cooperative).Msg("fewer workers than cooperative receivers, some will wait for a slot")
	}

	hub := receiver.NewHub()
	defer hub.Close()
	pool := receiver.NewPool(workers)

	var receivers []*receiver.Receiver
	defer func() {
		for _, r := range receivers {
			r.Close()
		}
	}()
	for _, rc := range rcs {
		rc.DebugPrint = rc.DebugPrint || debugPrint
		r, err := receiver.New(rc,
			receiver.WithLogger(logger),
			receiver.WithHub(hub),
			receiver.WithExecutor(pool),
		)
		if err != nil {
			return err
		}
		receivers = append(receivers, r)
		if err := r.Start(ctx); err != nil {
			return err
		}
		logger.Info().Str("receiver", r.Name()).Str("mode", string(r.Mode())).Stringer("addr", r.LocalAddr()).Msg("receiver started")
	}

	if metricsAddr != "" {
		srv := serveMetrics(metricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	d, err := newWatchDispatcher(watch, logger)
	if err != nil {
		return err
	}

	queue := host.NewEventQueue[receiver.Event]()
	bridge := receiver.NewBridge(queue)

	loop := host.Loop{Rate: cfg.Host.Rate, Logger: &logger}
	loop.Add(
		queue,
		host.SystemFunc(func(uint64) {
			drained := false
			for _, r := range receivers {
				// Threaded receivers share the hub; one drain covers them all.
				if r.Mode() == receiver.Threaded {
					if drained {
						continue
					}
					drained = true
				}
				r.Update(bridge)
			}
		}),
		host.SystemFunc(func(cycle uint64) {
			for _, ev := range queue.Read() {
				logger.Debug().Uint64("cycle", cycle).Uint64("seq", ev.Seq).Str("receiver", ev.Receiver).Str("address", ev.Message.Address).Msg("event")
				if _, err := d.Dispatch(ev.Message); err != nil {
					logger.Warn().Err(err).Str("receiver", ev.Receiver).Msg("dispatch failed")
				}
			}
		}),
	)

	err = loop.Run(ctx)
	logger.Info().Uint64("cycles", loop.Cycle()).Uint64("events", bridge.Published()).Msg("shutting down")
	return err
}

func newWatchDispatcher(addrs []string, logger zerolog.Logger) (*osc.Dispatcher, error) {
	d := osc.NewDispatcher()
	for _, addr := range addrs {
		addr := addr
		err := d.AddMethodFunc(addr, func(msg *osc.Message) {
			logger.Info().Str("watch", addr).Str("address", msg.Address).Str("tags", receiver.TypeTags(msg.Arguments)).Msg(msg.String())
		})
		if err != nil {
			return nil, fmt.Errorf("--watch %q: %w", addr, err)
		}
	}
	return d, nil
}

func serveMetrics(addr string, logger zerolog.Logger) *http.Server {
	receiver.RegisterMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}
