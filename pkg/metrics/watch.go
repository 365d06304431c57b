package metrics

import "github.com/prometheus/client_golang/prometheus"

// Watch actions.
const (
	WatchActionListAdd    = "watchlist_add"
	WatchActionListRemove = "watchlist_remove"
	WatchActionWatched    = "watched"
	WatchActionCompleted  = "completed"
	WatchActionHistoryDel = "history_delete"
)

// WatchMetrics counts watch-state mutations.
type WatchMetrics struct {
	events *prometheus.CounterVec
}

func NewWatchMetrics(reg prometheus.Registerer) *WatchMetrics {
	if reg == nil {
		return &WatchMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_events_total",
		Help:      "Watch list and watch history mutations by action.",
	}, []string{"action"})
	reg.MustRegister(events)
	return &WatchMetrics{events: events}
}

func (m *WatchMetrics) Inc(action string) {
	if m == nil || m.events == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(action)).Inc()
}
