package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DraftPicksRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "club_draft_picks_total", Help: "Total draft picks recorded"},
	)
	JerseyConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "club_jersey_conflicts_total", Help: "Total jersey number assignments rejected as conflicts"},
	)
	JerseyAutoGrants = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "club_jersey_auto_grants_total", Help: "Total jersey number requests granted without review"},
	)
	SignupsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "club_signups_total", Help: "Total league signup intents recorded"},
	)
)

func Register() {
	prometheus.MustRegister(DraftPicksRecorded, JerseyConflicts, JerseyAutoGrants, SignupsRecorded)
}
