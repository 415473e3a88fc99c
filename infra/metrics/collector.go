package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "lob"

// Rejection reasons used as the reason label.
const (
	ReasonDuplicateID = "duplicate_id"
	ReasonNotFound    = "not_found"
	ReasonExhausted   = "exhausted_capacity"
)

// Snapshot is a point-in-time view of one book and its service.
type Snapshot struct {
	ActiveOrders  int
	FreeSlots     int
	UsedBytes     int
	CapacityBytes int
	LastSequence  uint64

	Trades           uint64
	DuplicateIDs     uint64
	NotFound         uint64
	ExhaustedRejects uint64
}

// StatsSource is anything that can report a Snapshot for a symbol. It is
// called from the scrape goroutine.
type StatsSource interface {
	Symbol() string
	Stats() Snapshot
}

// Collector exposes a StatsSource as Prometheus metrics.
type Collector struct {
	src StatsSource

	activeOrders  *prometheus.Desc
	freeSlots     *prometheus.Desc
	usedBytes     *prometheus.Desc
	capacityBytes *prometheus.Desc
	lastSequence  *prometheus.Desc
	trades        *prometheus.Desc
	rejections    *prometheus.Desc
}

// NewCollector creates a collector for src. Register it with a
// prometheus.Registerer.
func NewCollector(src StatsSource) *Collector {
	labels := prometheus.Labels{"symbol": src.Symbol()}
	desc := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, variable, labels)
	}
	return &Collector{
		src:           src,
		activeOrders:  desc("active_orders", "Resting orders in the book"),
		freeSlots:     desc("free_slots", "Recycled order slots waiting for reuse"),
		usedBytes:     desc("used_bytes", "Order record storage taken from the arena"),
		capacityBytes: desc("capacity_bytes", "Order record storage committed at startup"),
		lastSequence:  desc("last_sequence", "Sequence number of the last command"),
		trades:        desc("trades_total", "Trades executed"),
		rejections:    desc("rejections_total", "Commands rejected by the book", "reason"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeOrders
	ch <- c.freeSlots
	ch <- c.usedBytes
	ch <- c.capacityBytes
	ch <- c.lastSequence
	ch <- c.trades
	ch <- c.rejections
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.activeOrders, prometheus.GaugeValue, float64(s.ActiveOrders))
	ch <- prometheus.MustNewConstMetric(c.freeSlots, prometheus.GaugeValue, float64(s.FreeSlots))
	ch <- prometheus.MustNewConstMetric(c.usedBytes, prometheus.GaugeValue, float64(s.UsedBytes))
	ch <- prometheus.MustNewConstMetric(c.capacityBytes, prometheus.GaugeValue, float64(s.CapacityBytes))
	ch <- prometheus.MustNewConstMetric(c.lastSequence, prometheus.GaugeValue, float64(s.LastSequence))
	ch <- prometheus.MustNewConstMetric(c.trades, prometheus.CounterValue, float64(s.Trades))
	ch <- prometheus.MustNewConstMetric(c.rejections, prometheus.CounterValue, float64(s.DuplicateIDs), ReasonDuplicateID)
	ch <- prometheus.MustNewConstMetric(c.rejections, prometheus.CounterValue, float64(s.NotFound), ReasonNotFound)
	ch <- prometheus.MustNewConstMetric(c.rejections, prometheus.CounterValue, float64(s.ExhaustedRejects), ReasonExhausted)
}
