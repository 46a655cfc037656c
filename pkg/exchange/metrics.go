package exchange

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes engine counters through a prometheus registerer. A nil
// *Metrics disables collection entirely; every recording method is nil-safe
// so the engine never branches on it.
type Metrics struct {
	ordersPlaced    prometheus.Counter
	ordersRejected  prometheus.Counter
	ordersCancelled prometheus.Counter
	trades          prometheus.Counter
	tradedQuantity  prometheus.Counter
	sweeps          prometheus.Counter
	marketPrice     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "orders_placed_total",
			Help:      "Orders accepted into a book.",
		}),
		ordersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "orders_rejected_total",
			Help:      "Orders rejected on placement (duplicate exchange id).",
		}),
		ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "orders_cancelled_total",
			Help:      "Live orders flipped to cancelled.",
		}),
		trades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "trades_total",
			Help:      "Completed transactions.",
		}),
		tradedQuantity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "traded_quantity_total",
			Help:      "Total quantity exchanged across all transactions.",
		}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "sweeps_total",
			Help:      "Background sweep passes.",
		}),
		marketPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "exchange",
			Name:      "market_price",
			Help:      "Current derived market-price estimate.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.ordersPlaced,
			m.ordersRejected,
			m.ordersCancelled,
			m.trades,
			m.tradedQuantity,
			m.sweeps,
			m.marketPrice,
		)
	}
	return m
}

func (m *Metrics) orderPlaced() {
	if m != nil {
		m.ordersPlaced.Inc()
	}
}

func (m *Metrics) orderRejected() {
	if m != nil {
		m.ordersRejected.Inc()
	}
}

func (m *Metrics) orderCancelled() {
	if m != nil {
		m.ordersCancelled.Inc()
	}
}

func (m *Metrics) trade(tx Transaction) {
	if m != nil {
		m.trades.Inc()
		m.tradedQuantity.Add(float64(tx.Quantity))
	}
}

func (m *Metrics) sweep() {
	if m != nil {
		m.sweeps.Inc()
	}
}

func (m *Metrics) setMarketPrice(price uint64) {
	if m != nil {
		m.marketPrice.Set(float64(price))
	}
}
