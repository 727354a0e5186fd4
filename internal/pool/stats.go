package pool

import (
	s "github.com/adwski/binarytrees/internal/stats"
)

type (
	stats struct {
		busy_      s.Gauge
		idle_      s.Gauge
		completed_ s.Counter
		saturated_ *s.Indicator
	}
)

func newStats(hi, lo int64) stats {
	return stats{
		busy_:      s.NewGauge(),
		idle_:      s.NewGauge(),
		completed_: s.NewCounter(),
		saturated_: s.NewIndicator(hi, lo),
	}
}

func (s *stats) busy() s.Gauge {
	return s.busy_
}

func (s *stats) idle() s.Gauge {
	return s.idle_
}

func (s *stats) completed() s.Counter {
	return s.completed_
}

func (s *stats) saturated() *s.Indicator {
	return s.saturated_
}

func (s *stats) updateSaturated() {
	s.saturated_.Observe(s.busy_.Get())
}
