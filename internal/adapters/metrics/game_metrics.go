package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
)

// GameMetricsCollector exports the live game state as gauges and counts
// discrete game events. It is fed by subscribing Observe to the session.
type GameMetricsCollector struct {
	currency         prometheus.Gauge
	productionRate   prometheus.Gauge
	clickPower       prometheus.Gauge
	lifetimeCurrency prometheus.Gauge
	prestigeCurrency prometheus.Gauge
	technicalDebt    prometheus.Gauge
	burnoutLevel     prometheus.Gauge
	personnel        prometheus.Gauge
	achievements     prometheus.Gauge

	eventsTotal       *prometheus.CounterVec
	achievementsTotal *prometheus.CounterVec
}

func newGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		currency:         newGauge("currency", "Spendable lines of code"),
		productionRate:   newGauge("production_rate", "Passive production in LOC per second"),
		clickPower:       newGauge("click_power", "LOC produced per manual input"),
		lifetimeCurrency: newGauge("lifetime_currency", "LOC earned over the whole save"),
		prestigeCurrency: newGauge("prestige_currency", "Prestige shares held"),
		technicalDebt:    newGauge("technical_debt", "Outstanding technical debt"),
		burnoutLevel:     newGauge("burnout_level", "Burnout gauge level (0-100)"),
		personnel:        newGauge("personnel", "Total head count across all buildings"),
		achievements:     newGauge("achievements", "Achievements unlocked"),

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Discrete game events by kind",
			},
			[]string{"event"},
		),

		achievementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "achievements_unlocked_total",
				Help:      "Achievement unlocks by id",
			},
			[]string{"achievement"},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	return register(
		c.currency,
		c.productionRate,
		c.clickPower,
		c.lifetimeCurrency,
		c.prestigeCurrency,
		c.technicalDebt,
		c.burnoutLevel,
		c.personnel,
		c.achievements,
		c.eventsTotal,
		c.achievementsTotal,
	)
}

// Observe refreshes the gauges from a session outcome
func (c *GameMetricsCollector) Observe(out gameApp.Outcome) {
	st := out.State
	if st == nil {
		return
	}

	c.currency.Set(st.Currency)
	c.productionRate.Set(st.ProductionRate)
	c.clickPower.Set(st.ClickPower)
	c.lifetimeCurrency.Set(st.LifetimeCurrency)
	c.prestigeCurrency.Set(st.PrestigeCurrency)
	c.technicalDebt.Set(st.TechnicalDebt)
	c.burnoutLevel.Set(st.Burnout.Level())
	c.personnel.Set(float64(st.Personnel()))
	c.achievements.Set(float64(len(st.Achievements)))

	for _, id := range out.Unlocked {
		c.achievementsTotal.WithLabelValues(string(id)).Inc()
	}
}

// RecordGameEvent counts one discrete game event
func (c *GameMetricsCollector) RecordGameEvent(event string) {
	c.eventsTotal.WithLabelValues(event).Inc()
}
