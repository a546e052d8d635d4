package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameActionsTotal,
			Help:      HelpTextActionsTotal,
		},
		[]string{LabelAction, LabelResult},
	)

	ActionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameActionRejections,
			Help:      HelpTextActionRejections,
		},
		[]string{LabelAction, LabelReason},
	)

	CropsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCropsPlanted,
			Help:      HelpTextCropsPlanted,
		},
		[]string{LabelCrop},
	)

	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCropsHarvested,
			Help:      HelpTextCropsHarvested,
		},
		[]string{LabelCrop},
	)

	LettersDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLettersDropped,
			Help:      HelpTextLettersDropped,
		},
		[]string{LabelLetter},
	)

	RewardsRedeemed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRewardsRedeemed,
			Help:      HelpTextRewardsRedeemed,
		},
		[]string{LabelReward},
	)

	GachaDraws = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGachaDraws,
			Help:      HelpTextGachaDraws,
		},
	)

	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCheckIns,
			Help:      HelpTextCheckIns,
		},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCoinsEarned,
			Help:      HelpTextCoinsEarned,
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCoinsSpent,
			Help:      HelpTextCoinsSpent,
		},
	)

	FarmsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameFarmsRegistered,
			Help:      HelpTextFarmsRegistered,
		},
	)
)

// Tick Metrics
var (
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameTickDuration,
			Help:      HelpTextTickDuration,
			Buckets:   TickLatencyBuckets,
		},
	)

	TickPausedPlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameTickPausedPlots,
			Help:      HelpTextTickPausedPlots,
		},
	)

	TickFarms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameTickFarms,
			Help:      HelpTextTickFarms,
		},
	)

	PestsAppeared = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePestsAppeared,
			Help:      HelpTextPestsAppeared,
		},
	)

	TickErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTickErrors,
			Help:      HelpTextTickErrors,
		},
	)
)

// RecordAction counts one farm action by outcome. Precondition failures
// also count under their reason code.
func RecordAction(action string, err error) {
	if err == nil {
		ActionsTotal.WithLabelValues(action, ResultSuccess).Inc()
		return
	}
	if code, ok := domain.ReasonOf(err); ok {
		ActionsTotal.WithLabelValues(action, ResultRejected).Inc()
		ActionRejections.WithLabelValues(action, string(code)).Inc()
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		ActionsTotal.WithLabelValues(action, ResultRejected).Inc()
		return
	}
	ActionsTotal.WithLabelValues(action, ResultError).Inc()
}

// AddCoins adds a decimal amount to a coin counter. Negative amounts are ignored.
func AddCoins(counter prometheus.Counter, amount decimal.Decimal) {
	if amount.IsPositive() {
		counter.Add(amount.InexactFloat64())
	}
}
