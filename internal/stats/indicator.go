package stats

import (
	"sync"
)

// Indicator is a boolean state with hysteresis.
// It switches on when observed value reaches high threshold
// and switches off only when value drops to low threshold.
type Indicator struct {
	mx sync.Mutex
	v  bool

	thresholdHi int64
	thresholdLo int64
}

func NewIndicator(hi, lo int64) *Indicator {
	return &Indicator{
		thresholdHi: hi,
		thresholdLo: lo,
	}
}

func (i *Indicator) Observe(val int64) {
	i.mx.Lock()
	defer i.mx.Unlock()

	switch {
	case i.v && val <= i.thresholdLo:
		i.v = false
	case !i.v && val >= i.thresholdHi:
		i.v = true
	}
}

func (i *Indicator) Get() bool {
	i.mx.Lock()
	defer i.mx.Unlock()

	return i.v
}
