package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/lme/glimpse"
)

//go:generate go tool stringer -type=State -linecomment

// State is the lifecycle state of a Window
type State uint8

const (
	Live       State = iota // live
	Closing                 // closing
	Destroyed               // destroyed
)

// Window owns exactly one native surface. It must be released using
// Destroy once it is no longer needed, see WithWindow.
type Window struct {
	engine *Engine
	handle glimpse.Handle
	config WindowConfig
	state  State

	width, height int
	focused       bool
	input         glimpse.InputState
}

func (w *Window) Handle() glimpse.Handle {
	return w.handle
}

func (w *Window) Config() WindowConfig {
	return w.config
}

func (w *Window) State() State {
	return w.state
}

// Size returns the last known size of the window in pixels
func (w *Window) Size() (width, height int) {
	w.mustNotBeDestroyed("size")
	return w.width, w.height
}

func (w *Window) Focused() bool {
	w.mustNotBeDestroyed("focus")
	return w.focused
}

// Input returns a copy of the keyboard and mouse state as of the last
// call to Pump. Later calls to Pump do not change the copy.
func (w *Window) Input() glimpse.InputState {
	w.mustNotBeDestroyed("input")
	return w.input.Clone()
}

// mustNotBeDestroyed panics with ErrAlreadyDestroyed once the window is
// destroyed. Its folded state is not updated anymore.
func (w *Window) mustNotBeDestroyed(op string) {
	if w.state == Destroyed {
		panic(fmt.Errorf("%s of %s: %w", op, w.handle, ErrAlreadyDestroyed))
	}
}

// NativeHandle returns the platform object of the window, e.g. a *glfw.Window,
// to create a rendering surface for.
func (w *Window) NativeHandle() (any, error) {
	if w.state == Destroyed {
		return nil, fmt.Errorf("native handle of %s: %w", w.handle, ErrAlreadyDestroyed)
	}

	return w.engine.binding.Native(w.handle), nil
}

// RequestClose moves the window into the closing state, the same way a
// click on the close button of the window does.
func (w *Window) RequestClose() error {
	switch w.state {
	case Destroyed:
		return fmt.Errorf("request close of %s: %w", w.handle, ErrAlreadyDestroyed)

	case Live:
		slog.Info("Window is closing", slog.String("handle", w.handle.String()))
		w.state = Closing
	}

	return nil
}

// Destroy releases the native surface. Calling Destroy a second time
// returns ErrAlreadyDestroyed.
func (w *Window) Destroy() error {
	if w.state == Destroyed {
		return fmt.Errorf("destroy %s: %w", w.handle, ErrAlreadyDestroyed)
	}

	w.engine.release(w)
	w.state = Destroyed

	return nil
}

func (w *Window) apply(ev glimpse.Event) {
	switch ev := ev.(type) {
	case glimpse.Resized:
		w.width, w.height = ev.Width, ev.Height

		if w.config.OnResize != nil && !w.config.OnResize(w, ev.Width, ev.Height) {
			slog.Warn("Resize handler failed",
				slog.String("handle", w.handle.String()),
				slog.Int("width", ev.Width),
				slog.Int("height", ev.Height),
			)
		}

	case glimpse.FocusChanged:
		w.focused = ev.Gained

	default:
		w.input.Apply(ev)
	}
}
