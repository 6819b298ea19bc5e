// Package metrics wires the channel/connection hot paths into prometheus,
// grounded on the teacher's SrvMetricsState ("channel.srvMetrics.Publish.
// Counter.Inc(1)", ".Deliver", ".Unacked", ".Ready", ".Total", ".Confirm",
// ".Acknowledge" in server/channel.go) re-expressed client-side with
// promauto, the idiom visible in this pack's moby-moby and kedacore-keda
// vendor trees.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry groups every counter/gauge this module emits. Tests construct
// their own via NewRegistry(prometheus.NewRegistry()) so metric
// registration never collides across parallel test packages.
type Registry struct {
	FramesSent     prometheus.Counter
	FramesReceived prometheus.Counter
	ChannelsOpen   prometheus.Gauge
	AwaitingDepth  *prometheus.GaugeVec
	ContentBytes   prometheus.Counter
	Published      prometheus.Counter
	Delivered      prometheus.Counter
	Acknowledged   prometheus.Counter
}

// NewRegistry builds a Registry registered against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		FramesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "amqp_frames_sent_total",
			Help: "Frames written to the transport.",
		}),
		FramesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "amqp_frames_received_total",
			Help: "Frames decoded from the transport.",
		}),
		ChannelsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "amqp_channels_open",
			Help: "Channels currently in the opened state.",
		}),
		AwaitingDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "amqp_awaiting_queue_depth",
			Help: "Pending entities per awaiting-sequence, labeled by method class.",
		}, []string{"method"}),
		ContentBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "amqp_content_bytes_reassembled_total",
			Help: "Bytes reassembled from content body frames.",
		}),
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "amqp_basic_publish_total",
			Help: "Basic.Publish methods sent.",
		}),
		Delivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "amqp_basic_deliver_total",
			Help: "Basic.Deliver methods dispatched to consumers.",
		}),
		Acknowledged: factory.NewCounter(prometheus.CounterOpts{
			Name: "amqp_basic_ack_total",
			Help: "Basic.Ack methods sent.",
		}),
	}
}

// Noop returns a Registry backed by a throwaway prometheus.Registry, for
// callers (and tests) that don't care about metrics but still need a
// non-nil Registry to pass around.
func Noop() *Registry {
	return NewRegistry(prometheus.NewRegistry())
}
