package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlanRequests - обработанные запросы по операции и результату
	PlanRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finplan_requests_total",
			Help: "Total number of plan requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// EligibilityStatuses - распределение статусов классификатора
	EligibilityStatuses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finplan_eligibility_status_total",
			Help: "Total number of classified profiles by eligibility status",
		},
		[]string{"status"},
	)

	// PlanBranches - выбранная ветка промпта (debt_reduction / wealth_building)
	PlanBranches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finplan_plan_branch_total",
			Help: "Total number of generated plans by prompt branch",
		},
		[]string{"branch"},
	)

	// GenerationDuration - длительность обращения к внешней модели
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finplan_generation_duration_seconds",
			Help:    "Duration of external model calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"operation"},
	)
)
