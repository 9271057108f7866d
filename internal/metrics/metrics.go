package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_games_started_total",
			Help: "Games created, by preset name or custom",
		},
		[]string{"params"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_games_finished_total",
			Help: "Games that reached a final status",
		},
		[]string{"status"},
	)
	Moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_moves_total",
			Help: "Moves applied to boards, by move and outcome",
		},
		[]string{"move", "outcome"},
	)
	Sessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mines_sessions",
			Help: "Game sessions held in memory",
		},
	)
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(Moves)
	prometheus.MustRegister(Sessions)
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
}
