package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatusPolls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartlife_status_polls_total",
		Help: "Device status polls issued against the cloud API.",
	})

	StatusPollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartlife_status_poll_errors_total",
		Help: "Device status polls that returned an error.",
	})

	EntityUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartlife_entity_updates_total",
		Help: "Entity state updates published to the event stream.",
	})

	CommandsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartlife_commands_sent_total",
		Help: "Device commands forwarded to the cloud API.",
	})

	CommandsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartlife_commands_failed_total",
		Help: "Device commands rejected by mapping or by the cloud API.",
	})
)
