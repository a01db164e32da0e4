package orion

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/oliverbestmann/lme/glimpse"
)

func mustCreate(t *testing.T, engine *Engine, conf WindowConfig) *Window {
	t.Helper()

	w, err := engine.CreateWindow(conf)
	if err != nil {
		t.Fatalf("create window: %v", err)
	}

	return w
}

func mustPump(t *testing.T, engine *Engine) bool {
	t.Helper()

	running, err := engine.Pump()
	if err != nil {
		t.Fatalf("pump: %v", err)
	}

	return running
}

func TestPump_Scenario(t *testing.T) {
	engine, headless := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Title: "T", Width: 800, Height: 600, Mode: Windowed})

	if !mustPump(t, engine) {
		t.Fatalf("expected true for an empty event queue")
	}

	headless.Inject(glimpse.CloseRequested{Handle: w.Handle()})

	if mustPump(t, engine) {
		t.Fatalf("expected false after close request")
	}

	if w.State() != Closing {
		t.Fatalf("expected state closing, got %s", w.State())
	}

	if err := w.Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if err := w.Destroy(); !errors.Is(err, ErrAlreadyDestroyed) {
		t.Fatalf("expected ErrAlreadyDestroyed, got %v", err)
	}
}

func TestPump_EmptyQueueKeepsFlag(t *testing.T) {
	engine, headless := newTestEngine()

	// no window was created yet
	if !mustPump(t, engine) {
		t.Fatalf("expected true before any window exists")
	}

	mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	for range 3 {
		if !mustPump(t, engine) {
			t.Fatalf("expected true while the window is live")
		}
	}

	if headless.PollCalls() != 4 {
		t.Fatalf("expected one poll per pump, got %d", headless.PollCalls())
	}

	if engine.Events().Len() != 0 {
		t.Fatalf("expected no events")
	}
}

func TestPump_CloseIsTerminal(t *testing.T) {
	engine, headless := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})
	headless.Inject(glimpse.CloseRequested{Handle: w.Handle()})

	for idx := range 3 {
		if mustPump(t, engine) {
			t.Fatalf("expected false on pump %d after close", idx)
		}
	}

	// new events are still delivered while closing
	headless.Inject(glimpse.Resized{Handle: w.Handle(), Width: 10, Height: 10})

	if mustPump(t, engine) {
		t.Fatalf("expected false to stay")
	}

	if engine.Events().Len() != 1 {
		t.Fatalf("expected resize to be delivered, got %d events", engine.Events().Len())
	}
}

func TestPump_CloseRequestIsNotDeliveredToSink(t *testing.T) {
	engine, headless := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	headless.Inject(
		glimpse.KeyChanged{Handle: w.Handle(), Key: glimpse.KeyEscape, Pressed: true},
		glimpse.CloseRequested{Handle: w.Handle()},
	)

	mustPump(t, engine)

	events := engine.Events().Drain()
	if len(events) != 1 {
		t.Fatalf("expected only the key event, got %v", events)
	}

	if _, ok := events[0].(glimpse.KeyChanged); !ok {
		t.Fatalf("expected key event, got %T", events[0])
	}
}

func TestPump_DeliversInArrivalOrder(t *testing.T) {
	engine, headless := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})
	h := w.Handle()

	injected := []glimpse.Event{
		glimpse.FocusChanged{Handle: h, Gained: true},
		glimpse.PointerMoved{Handle: h, X: 10, Y: 20},
		glimpse.KeyChanged{Handle: h, Key: glimpse.KeyA, Scancode: 38, Pressed: true},
		glimpse.PointerButton{Handle: h, Button: glimpse.MouseButtonLeft, Pressed: true},
		glimpse.Resized{Handle: h, Width: 640, Height: 480},
		glimpse.PointerMoved{Handle: h, X: 15, Y: 18},
	}

	headless.Inject(injected...)

	if !mustPump(t, engine) {
		t.Fatalf("expected true")
	}

	events := engine.Events().Drain()
	if !slices.Equal(events, injected) {
		t.Fatalf("expected %v, got %v", injected, events)
	}

	if width, height := w.Size(); width != 640 || height != 480 {
		t.Fatalf("expected folded size 640x480, got %dx%d", width, height)
	}

	if !w.Focused() {
		t.Fatalf("expected window to be focused")
	}

	if !w.IsKeyPressed(glimpse.KeyA) || !w.IsKeyJustPressed(glimpse.KeyA) {
		t.Fatalf("expected key A to be pressed")
	}

	if !w.IsMouseButtonJustPressed(glimpse.MouseButtonLeft) {
		t.Fatalf("expected left button to be just pressed")
	}

	if x, y := w.CursorPosition(); x != 15 || y != 18 {
		t.Fatalf("expected cursor at 15,18, got %v,%v", x, y)
	}

	// transitions are forgotten on the next pump, state is kept
	mustPump(t, engine)

	if w.IsKeyJustPressed(glimpse.KeyA) || !w.IsKeyPressed(glimpse.KeyA) {
		t.Fatalf("expected key A to be held without a new transition")
	}

	stats := engine.Stats()
	if stats.PumpCount != 2 || stats.EventsDelivered != uint64(len(injected)) {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPump_MultipleWindows(t *testing.T) {
	engine, headless := newTestEngine()

	first := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})
	second := mustCreate(t, engine, WindowConfig{Width: 400, Height: 300})

	headless.Inject(glimpse.CloseRequested{Handle: first.Handle()})

	if !mustPump(t, engine) {
		t.Fatalf("expected true while the second window is live")
	}

	headless.Inject(glimpse.CloseRequested{Handle: second.Handle()})

	if mustPump(t, engine) {
		t.Fatalf("expected false once every window is closing")
	}
}

func TestPump_DestroyingTheLastLiveWindowStops(t *testing.T) {
	engine, _ := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	if err := w.Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if mustPump(t, engine) {
		t.Fatalf("expected false without live windows")
	}
}

func TestPump_RequestCloseStops(t *testing.T) {
	engine, _ := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	if err := w.RequestClose(); err != nil {
		t.Fatalf("request close: %v", err)
	}

	// closing twice is fine
	if err := w.RequestClose(); err != nil {
		t.Fatalf("request close: %v", err)
	}

	if mustPump(t, engine) {
		t.Fatalf("expected false after explicit close request")
	}
}

func TestPump_PollFailureStopsPermanently(t *testing.T) {
	engine, headless := newTestEngine()

	mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	cause := errors.New("display server gone")
	headless.Disconnect(cause)

	running, err := engine.Pump()
	if running {
		t.Fatalf("expected false after poll failure")
	}

	var platformErr *PlatformError
	if !errors.As(err, &platformErr) || !errors.Is(err, cause) {
		t.Fatalf("expected PlatformError wrapping the cause, got %v", err)
	}

	running, err = engine.Pump()
	if running || err != nil {
		t.Fatalf("expected false without error on later pumps, got %v, %v", running, err)
	}

	if headless.PollCalls() != 1 {
		t.Fatalf("expected the broken event source not to be polled again, got %d polls", headless.PollCalls())
	}
}

func TestPump_DropsEventsOfUntrackedSurfaces(t *testing.T) {
	engine, headless := newTestEngine()

	kept := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})
	gone := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	// queued by the platform before the window was destroyed
	headless.Inject(glimpse.KeyChanged{Handle: gone.Handle(), Key: glimpse.KeyB, Pressed: true})

	if err := gone.Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	headless.Inject(
		glimpse.KeyChanged{Handle: 999, Key: glimpse.KeyC, Pressed: true},
		glimpse.KeyChanged{Handle: kept.Handle(), Key: glimpse.KeyD, Pressed: true},
	)

	if !mustPump(t, engine) {
		t.Fatalf("expected true")
	}

	events := engine.Events().Drain()
	if len(events) != 1 || events[0].Surface() != kept.Handle() {
		t.Fatalf("expected only the event of the kept window, got %v", events)
	}

	if engine.Stats().EventsDropped != 2 {
		t.Fatalf("expected two dropped events, got %d", engine.Stats().EventsDropped)
	}
}

func TestPump_OnResize(t *testing.T) {
	engine, headless := newTestEngine()

	var calls [][2]int

	conf := WindowConfig{
		Width:  800,
		Height: 600,
		OnResize: func(w *Window, width, height int) bool {
			calls = append(calls, [2]int{width, height})
			return len(calls) == 1
		},
	}

	w := mustCreate(t, engine, conf)

	headless.Inject(
		glimpse.Resized{Handle: w.Handle(), Width: 1024, Height: 768},
		glimpse.Resized{Handle: w.Handle(), Width: 1280, Height: 720},
	)

	// a failing handler does not stop the loop
	if !mustPump(t, engine) {
		t.Fatalf("expected true")
	}

	expected := [][2]int{{1024, 768}, {1280, 720}}
	if !slices.Equal(calls, expected) {
		t.Fatalf("expected resize calls %v, got %v", expected, calls)
	}
}

func TestPump_ChannelSink(t *testing.T) {
	headless := glimpse.NewHeadless()

	ch := make(chan Event, 1)
	engine := NewEngine(EngineOptions{Binding: headless, Sink: ChannelSink(ch)})

	if engine.Events() != nil {
		t.Fatalf("expected no default queue with a custom sink")
	}

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	first := glimpse.FocusChanged{Handle: w.Handle(), Gained: true}
	headless.Inject(first, glimpse.FocusChanged{Handle: w.Handle(), Gained: false})

	// the second event does not fit, pump must not block
	if !mustPump(t, engine) {
		t.Fatalf("expected true")
	}

	if ev := <-ch; ev != Event(first) {
		t.Fatalf("expected %v, got %v", first, ev)
	}

	select {
	case ev := <-ch:
		t.Fatalf("expected second event to be dropped, got %v", ev)
	default:
	}

	// the window state still saw both events
	if w.Focused() {
		t.Fatalf("expected window to have lost focus")
	}
}

func TestPump_InputSnapshotSurvivesNextPump(t *testing.T) {
	engine, headless := newTestEngine()

	w := mustCreate(t, engine, WindowConfig{Width: 800, Height: 600})

	headless.Inject(glimpse.KeyChanged{Handle: w.Handle(), Key: glimpse.KeySpace, Pressed: true})
	mustPump(t, engine)

	input := w.Input()

	mustPump(t, engine)

	if !input.Keys.JustPressed[glimpse.KeySpace] {
		t.Fatalf("expected the snapshot to keep the transition of the previous pump")
	}

	if w.IsKeyJustPressed(glimpse.KeySpace) {
		t.Fatalf("expected the window to forget the transition")
	}
}

func TestPumpStats_AverageDuringWarmup(t *testing.T) {
	var stats PumpStats

	stats.update(10*time.Millisecond, 1, 0)
	stats.update(20*time.Millisecond, 2, 1)
	stats.update(30*time.Millisecond, 0, 0)

	if stats.AverageDuration != 20*time.Millisecond {
		t.Fatalf("expected mean of 20ms, got %s", stats.AverageDuration)
	}

	if stats.MaxDuration != 30*time.Millisecond || stats.PumpCount != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if stats.EventsDelivered != 3 || stats.EventsDropped != 1 {
		t.Fatalf("unexpected event counts %+v", stats)
	}
}
