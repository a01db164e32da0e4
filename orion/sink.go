package orion

import (
	"log/slog"

	"github.com/oliverbestmann/lme/glimpse"
)

type Event = glimpse.Event

// EventSink receives all events except close requests during Pump.
// Push is called synchronously and must not block.
type EventSink interface {
	Push(ev Event)
}

// EventQueue collects events until they are drained by the caller
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns all queued events in arrival order and empties the queue
func (q *EventQueue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

// ChannelSink sends events into a channel. Events that do not fit into
// the channel's buffer are dropped, Pump never waits for a receiver.
type ChannelSink chan<- Event

func (ch ChannelSink) Push(ev Event) {
	select {
	case ch <- ev:
	default:
		slog.Warn("Event channel is full, dropping event",
			slog.String("handle", ev.Surface().String()),
			slog.String("type", eventName(ev)),
		)
	}
}

func eventName(ev Event) string {
	switch ev.(type) {
	case glimpse.CloseRequested:
		return "close_requested"
	case glimpse.Resized:
		return "resize"
	case glimpse.FocusChanged:
		return "focus_changed"
	case glimpse.KeyChanged:
		return "key"
	case glimpse.PointerMoved:
		return "pointer_move"
	case glimpse.PointerButton:
		return "pointer_button"
	default:
		return "unknown"
	}
}
