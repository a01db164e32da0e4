package orion

import (
	"time"
)

type PumpStats struct {
	PumpCount       uint64
	EventsDelivered uint64
	EventsDropped   uint64

	AverageDuration time.Duration
	MaxDuration     time.Duration
}

func (t *PumpStats) update(d time.Duration, delivered, dropped int) {
	const window = 64

	t.MaxDuration = max(t.MaxDuration, d)

	if t.PumpCount < window {
		// plain mean until the window is filled
		t.AverageDuration = (time.Duration(t.PumpCount)*t.AverageDuration + d) / time.Duration(t.PumpCount+1)
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}

	t.PumpCount += 1
	t.EventsDelivered += uint64(delivered)
	t.EventsDropped += uint64(dropped)
}
