package orion

import (
	"log/slog"
	"time"

	"github.com/oliverbestmann/lme/glimpse"
)

// Pump drains all events the platform has queued for the tracked windows
// without waiting for new ones. A close request moves its window into the
// closing state, every other event is pushed to the EventSink.
//
// Pump returns false once no window is live anymore, or after the platform
// failed to deliver events. It keeps returning false from then on.
func (e *Engine) Pump() (bool, error) {
	if e.pollErr != nil {
		return false, nil
	}

	startTime := time.Now()

	for _, handle := range e.order {
		e.windows[handle].input.NextTick()
	}

	events, err := e.binding.Poll(e.order)
	if err != nil {
		slog.Error("Polling platform events failed, stopping", slog.Any("error", err))

		e.pollErr = err
		e.stopped = true

		return false, &PlatformError{Op: "poll events", Err: err}
	}

	var delivered, dropped int

	for _, ev := range events {
		handle := ev.Surface()

		w, ok := e.windows[handle]
		if !ok {
			dropped++

			if e.tombstones.Contains(handle) {
				slog.Debug("Drop event of destroyed window", slog.String("handle", handle.String()))
			} else {
				slog.Warn("Drop event of unknown surface", slog.String("handle", handle.String()))
			}

			continue
		}

		if _, ok := ev.(glimpse.CloseRequested); ok {
			// only fails for destroyed windows
			_ = w.RequestClose()
			continue
		}

		w.apply(ev)

		e.sink.Push(ev)
		delivered++
	}

	if !e.stopped && e.created > 0 && !e.anyLive() {
		slog.Info("No window is live anymore, stopping")
		e.stopped = true
	}

	e.stats.update(time.Since(startTime), delivered, dropped)

	return !e.stopped, nil
}

func (e *Engine) anyLive() bool {
	for _, w := range e.windows {
		if w.state == Live {
			return true
		}
	}

	return false
}
