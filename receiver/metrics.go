package receiver

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	datagramsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oscbridge",
			Subsystem: "receiver",
			Name:      "datagrams_total",
			Help:      "Datagrams read from the socket.",
		},
		[]string{"receiver", "mode"},
	)
	messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oscbridge",
			Subsystem: "receiver",
			Name:      "messages_total",
			Help:      "Messages decoded after bundle flattening.",
		},
		[]string{"receiver", "mode"},
	)
	decodeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oscbridge",
			Subsystem: "receiver",
			Name:      "decode_errors_total",
			Help:      "Datagrams dropped because they failed to decode.",
		},
		[]string{"receiver", "mode"},
	)
	receiveErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oscbridge",
			Subsystem: "receiver",
			Name:      "receive_errors_total",
			Help:      "Socket-level receive errors.",
		},
		[]string{"receiver", "mode"},
	)
	inboxDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "oscbridge",
			Subsystem: "receiver",
			Name:      "inbox_depth",
			Help:      "Messages read by the receiver waiting in its hub inbox for the next drain.",
		},
		[]string{"receiver"},
	)
)

// RegisterMetrics registers the receiver collectors with the default
// Prometheus registry. It is safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(datagramsTotal, messagesTotal, decodeErrorsTotal, receiveErrorsTotal, inboxDepth)
	})
}

// stats holds one receiver's metric children.
type stats struct {
	datagrams     prometheus.Counter
	messages      prometheus.Counter
	decodeErrors  prometheus.Counter
	receiveErrors prometheus.Counter
}

func newStats(name string, mode Mode) *stats {
	RegisterMetrics()
	return &stats{
		datagrams:     datagramsTotal.WithLabelValues(name, string(mode)),
		messages:      messagesTotal.WithLabelValues(name, string(mode)),
		decodeErrors:  decodeErrorsTotal.WithLabelValues(name, string(mode)),
		receiveErrors: receiveErrorsTotal.WithLabelValues(name, string(mode)),
	}
}
