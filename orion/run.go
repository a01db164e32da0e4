package orion

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/lme/glimpse"
)

type EngineOptions struct {
	// Binding to the native windowing api. Defaults to the binding
	// selected at build time.
	Binding glimpse.Binding

	// Sink receives all events except close requests. Defaults to
	// an EventQueue, see Engine.Events.
	Sink EventSink
}

// Engine tracks all windows of a process and pumps their events. It
// must only be used from a single goroutine, usually the main one.
type Engine struct {
	binding glimpse.Binding
	sink    EventSink
	queue   *EventQueue

	windows map[glimpse.Handle]*Window

	// handles of the tracked windows in creation order
	order []glimpse.Handle

	// recently destroyed handles, late events for them are expected
	tombstones *lru.Cache[glimpse.Handle, struct{}]

	created int
	stopped bool
	pollErr error

	stats PumpStats
	leaks *leakCounter
}

func NewEngine(opts EngineOptions) *Engine {
	binding := opts.Binding
	if binding == nil {
		binding = glimpse.DefaultBinding()
	}

	var queue *EventQueue

	sink := opts.Sink
	if sink == nil {
		queue = &EventQueue{}
		sink = queue
	}

	tombstones, _ := lru.New[glimpse.Handle, struct{}](64)

	engine := &Engine{
		binding:    binding,
		sink:       sink,
		queue:      queue,
		windows:    map[glimpse.Handle]*Window{},
		tombstones: tombstones,
		leaks:      &leakCounter{},
	}

	warnOnLeak(engine, engine.leaks)

	return engine
}

// CreateWindow validates the configuration and creates a new native window.
// The window is live and must be released using Window.Destroy.
func (e *Engine) CreateWindow(conf WindowConfig) (*Window, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	handle, err := e.binding.CreateSurface(conf.surfaceConfig())
	if err != nil {
		return nil, &PlatformError{Op: "create surface", Err: err}
	}

	// fullscreen windows might not have the requested size
	width, height, err := e.binding.QuerySize(handle)
	if err != nil {
		e.binding.DestroySurface(handle)
		return nil, &PlatformError{Op: "query surface size", Err: err}
	}

	w := &Window{
		engine: e,
		handle: handle,
		config: conf,
		state:  Live,
		width:  width,
		height: height,
	}

	e.windows[handle] = w
	e.order = append(e.order, handle)
	e.created++
	e.leaks.live++

	slog.Info("Create window",
		slog.String("handle", handle.String()),
		slog.String("title", conf.Title),
		slog.String("mode", conf.Mode.String()),
		slog.Int("width", width),
		slog.Int("height", height),
	)

	return w, nil
}

func (e *Engine) release(w *Window) {
	delete(e.windows, w.handle)
	e.order = slices.DeleteFunc(e.order, func(h glimpse.Handle) bool { return h == w.handle })
	e.tombstones.Add(w.handle, struct{}{})
	e.leaks.live--

	e.binding.DestroySurface(w.handle)

	slog.Info("Destroy window", slog.String("handle", w.handle.String()))
}

// Windows returns all windows that are not yet destroyed in creation order
func (e *Engine) Windows() []*Window {
	windows := make([]*Window, 0, len(e.order))
	for _, handle := range e.order {
		windows = append(windows, e.windows[handle])
	}

	return windows
}

// Events returns the queue events are pushed to if no custom
// EventSink was configured, nil otherwise.
func (e *Engine) Events() *EventQueue {
	return e.queue
}

func (e *Engine) Stats() PumpStats {
	return e.stats
}

// Close destroys all windows that were not destroyed by their owner
func (e *Engine) Close() {
	for _, w := range e.Windows() {
		slog.Warn("Window was not destroyed before closing the engine",
			slog.String("handle", w.handle.String()),
		)

		_ = w.Destroy()
	}
}

// WithWindow creates a window, passes it to fn and destroys it once fn
// returns. The window is destroyed even if fn fails or panics.
func WithWindow(engine *Engine, conf WindowConfig, fn func(w *Window) error) error {
	w, err := engine.CreateWindow(conf)
	if err != nil {
		return err
	}

	defer func() {
		// fn may have destroyed the window already
		if w.State() != Destroyed {
			_ = w.Destroy()
		}
	}()

	return fn(w)
}
