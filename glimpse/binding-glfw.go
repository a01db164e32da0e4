//go:build !js && !headless && !(linux && x11)

package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw must only be used from the main thread
	runtime.LockOSThread()
}

// DefaultBinding returns the glfw binding used on windows, macOS and linux
func DefaultBinding() Binding {
	return NewGlfwBinding()
}

type glfwBinding struct {
	initialized bool
	lastHandle  Handle
	windows     map[Handle]*glfw.Window

	// events collected by the callbacks during glfw.PollEvents
	pending []Event
}

func NewGlfwBinding() Binding {
	return &glfwBinding{windows: map[Handle]*glfw.Window{}}
}

func (g *glfwBinding) CreateSurface(conf SurfaceConfig) (Handle, error) {
	if !g.initialized {
		if err := glfw.Init(); err != nil {
			return 0, fmt.Errorf("initialize glfw: %w", err)
		}

		g.initialized = true
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	var monitor *glfw.Monitor

	width, height := conf.Width, conf.Height

	switch conf.Mode {
	case ModeFullscreen:
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			g.terminateIfUnused()
			return 0, fmt.Errorf("create window: no primary monitor")
		}

		// use the native resolution of the display
		video := monitor.GetVideoMode()
		width, height = video.Width, video.Height
		glfw.WindowHint(glfw.RefreshRate, video.RefreshRate)

	case ModeBorderless:
		glfw.WindowHint(glfw.Decorated, glfw.False)
	}

	window, err := glfw.CreateWindow(width, height, conf.Title, monitor, nil)
	if err != nil {
		g.terminateIfUnused()
		return 0, fmt.Errorf("create window: %w", err)
	}

	g.lastHandle++
	handle := g.lastHandle

	g.windows[handle] = window
	g.configureCallbacks(handle, window)

	return handle, nil
}

func (g *glfwBinding) configureCallbacks(handle Handle, window *glfw.Window) {
	window.SetCloseCallback(func(_win *glfw.Window) {
		g.pending = append(g.pending, CloseRequested{Handle: handle})
	})

	window.SetSizeCallback(func(_win *glfw.Window, width, height int) {
		g.pending = append(g.pending, Resized{Handle: handle, Width: width, Height: height})
	})

	window.SetFocusCallback(func(_win *glfw.Window, focused bool) {
		g.pending = append(g.pending, FocusChanged{Handle: handle, Gained: focused})
	})

	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		g.pending = append(g.pending, KeyChanged{
			Handle:   handle,
			Key:      keyOf(glfwKey),
			Scancode: scancode,
			Pressed:  action == glfw.Press,
		})
	})

	window.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		g.pending = append(g.pending, PointerButton{
			Handle:  handle,
			Button:  MouseButton(btn),
			Pressed: action == glfw.Press,
		})
	})

	window.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		g.pending = append(g.pending, PointerMoved{Handle: handle, X: xpos, Y: ypos})
	})
}

func (g *glfwBinding) DestroySurface(handle Handle) {
	window, ok := g.windows[handle]
	if !ok {
		slog.Warn("Destroy of unknown glfw window", slog.String("handle", handle.String()))
		return
	}

	delete(g.windows, handle)

	// glfw reports errors by panicking, destroying must not fail the caller
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Destroy glfw window failed",
				slog.String("handle", handle.String()),
				slog.Any("error", r))
		}

		g.terminateIfUnused()
	}()

	window.Destroy()
}

func (g *glfwBinding) Poll(handles []Handle) (events []Event, err error) {
	if !g.initialized {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poll glfw events: %v", r)
		}
	}()

	glfw.PollEvents()

	events = g.pending
	g.pending = nil

	return events, nil
}

func (g *glfwBinding) QuerySize(handle Handle) (int, int, error) {
	window, ok := g.windows[handle]
	if !ok {
		return 0, 0, fmt.Errorf("query size of %s: no such window", handle)
	}

	width, height := window.GetSize()
	return width, height, nil
}

func (g *glfwBinding) Native(handle Handle) any {
	if window, ok := g.windows[handle]; ok {
		return window
	}

	return nil
}

func (g *glfwBinding) terminateIfUnused() {
	if g.initialized && len(g.windows) == 0 {
		glfw.Terminate()
		g.initialized = false
		g.pending = nil
	}
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeySpace:        KeySpace,
	glfw.KeyEnter:        KeyEnter,
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyTab:          KeyTab,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeyInsert:       KeyInsert,
	glfw.KeyHome:         KeyHome,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyPageUp:       KeyPageUp,
	glfw.KeyPageDown:     KeyPageDown,
	glfw.KeyLeft:         KeyArrowLeft,
	glfw.KeyRight:        KeyArrowRight,
	glfw.KeyUp:           KeyArrowUp,
	glfw.KeyDown:         KeyArrowDown,
	glfw.KeyLeftShift:    KeyShiftLeft,
	glfw.KeyRightShift:   KeyShiftRight,
	glfw.KeyLeftControl:  KeyControlLeft,
	glfw.KeyRightControl: KeyControlRight,
	glfw.KeyLeftAlt:      KeyAltLeft,
	glfw.KeyRightAlt:     KeyAltRight,
	glfw.KeyLeftSuper:    KeySuperLeft,
	glfw.KeyRightSuper:   KeySuperRight,
}

func init() {
	for idx := range 26 {
		glfwToKey[glfw.KeyA+glfw.Key(idx)] = KeyA + Key(idx)
	}

	for idx := range 10 {
		glfwToKey[glfw.Key0+glfw.Key(idx)] = KeyDigit0 + Key(idx)
	}

	for idx := range 12 {
		glfwToKey[glfw.KeyF1+glfw.Key(idx)] = KeyF1 + Key(idx)
	}
}

func keyOf(glfwKey glfw.Key) Key {
	key, ok := glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)
	}

	return key
}
