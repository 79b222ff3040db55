// Prometheus instrumentation for the serve mode. These are process
// metrics for operators watching a live run; the snapshot's own
// statistics block is a separate, renderer-facing concern.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
)

type metrics struct {
	ticksTotal          prometheus.Counter
	ordersTotal         prometheus.Counter
	trucksTotal         prometheus.Counter
	tasksCompletedTotal prometheus.Counter

	availableEmployees prometheus.Gauge
	activeTasks        prometheus.Gauge
	activeOrders       prometheus.Gauge
	simDay             prometheus.Gauge
	simTimeMillis      prometheus.Gauge
	speedMultiplier    prometheus.Gauge
	paused             prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		ticksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_ticks_total",
			Help: "Ticks processed by the simulation loop.",
		}),
		ordersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_orders_generated_total",
			Help: "Customer orders generated by the arrival process.",
		}),
		trucksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_trucks_generated_total",
			Help: "Delivery trucks generated by the arrival process.",
		}),
		tasksCompletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_tasks_completed_total",
			Help: "Tasks retired by the lifecycle engine.",
		}),
		availableEmployees: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_available_employees",
			Help: "Idle employees in the roster.",
		}),
		activeTasks: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_active_tasks",
			Help: "In-flight tasks.",
		}),
		activeOrders: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_active_orders",
			Help: "Orders in the active set.",
		}),
		simDay: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_day",
			Help: "Current simulated calendar day.",
		}),
		simTimeMillis: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_time_millis",
			Help: "Current simulated clock in milliseconds.",
		}),
		speedMultiplier: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_speed_multiplier",
			Help: "Active speed multiplier.",
		}),
		paused: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_paused",
			Help: "1 when the simulation is paused.",
		}),
	}
}

// observe derives metric updates from a (previous, next) snapshot pair.
// Counters advance from the snapshot's sequential id counters and the
// shrinking task set, so they stay exact even if a broadcast is missed.
func (m *metrics) observe(prev, next *sim.State) {
	m.ticksTotal.Inc()

	if d := next.Arrivals.NextOrderSeq - prev.Arrivals.NextOrderSeq; d > 0 {
		m.ordersTotal.Add(float64(d))
	}
	if d := next.Arrivals.NextTruckSeq - prev.Arrivals.NextTruckSeq; d > 0 {
		m.trucksTotal.Add(float64(d))
	}
	// Tasks created this tick minus the change in the active set equals
	// tasks retired this tick.
	created := next.Arrivals.NextTaskSeq - prev.Arrivals.NextTaskSeq
	if retired := created - (len(next.Tasks) - len(prev.Tasks)); retired > 0 {
		m.tasksCompletedTotal.Add(float64(retired))
	}

	m.availableEmployees.Set(float64(next.AvailableEmployees))
	m.activeTasks.Set(float64(len(next.Tasks)))
	m.activeOrders.Set(float64(len(next.Orders)))
	m.simDay.Set(float64(next.Day))
	m.simTimeMillis.Set(float64(next.CurrentTime))
	m.speedMultiplier.Set(float64(next.Speed))
	if next.Paused {
		m.paused.Set(1)
	} else {
		m.paused.Set(0)
	}
}
