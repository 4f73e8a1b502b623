package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WSConnectionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connections_active",
		Help: "Currently connected websocket users",
	})

	NotificationsDispatchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "newVacancy events delivered to a bound connection",
	}, []string{"relevant"})

	NotificationsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_skipped_total",
		Help: "newVacancy events not delivered, by reason",
	}, []string{"reason"})

	MessagesRelayedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_relayed_total",
		Help: "newMessage events delivered to conversation participants",
	})
)

func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		WSConnectionsActive,
		NotificationsDispatchedTotal,
		NotificationsSkippedTotal,
		MessagesRelayedTotal,
	)
}
