package orion

import (
	"log/slog"
)

var defaultEngine global[*Engine]

type global[T any] struct {
	value    T
	hasValue bool
}

func (g *global[T]) set(value T) *global[T] {
	if g.hasValue {
		panic("value already set")
	}

	g.value = value
	g.hasValue = true
	return g
}

func (g *global[T]) reset() {
	var tZero T
	g.value = tZero
	g.hasValue = false
}

func (g *global[T]) Get() T {
	if !g.hasValue {
		panic("must only be called after MakeWindow")
	}

	return g.value
}

// DefaultEngine returns the engine used by MakeWindow and PumpEvents.
// It is created on first use with the binding selected at build time.
func DefaultEngine() *Engine {
	if !defaultEngine.hasValue {
		defaultEngine.set(NewEngine(EngineOptions{}))
	}

	return defaultEngine.Get()
}

// MakeWindow creates a window using the DefaultEngine
func MakeWindow(conf WindowConfig) (*Window, error) {
	return DefaultEngine().CreateWindow(conf)
}

// PumpEvents pumps the events of the DefaultEngine and reports whether
// the main loop should keep running. Platform errors are logged and stop
// the loop.
func PumpEvents() bool {
	running, err := DefaultEngine().Pump()
	if err != nil {
		slog.Error("Pump events failed", slog.Any("error", err))
		return false
	}

	return running
}
