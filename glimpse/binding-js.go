//go:build js && !headless

package glimpse

import (
	"fmt"
	"log/slog"
	"syscall/js"
)

// DefaultBinding returns the browser binding, every surface is a canvas element
func DefaultBinding() Binding {
	return NewJsBinding()
}

type jsBinding struct {
	lastHandle Handle
	canvases   map[Handle]*jsCanvas

	// events collected by the listeners since the last poll
	pending []Event
}

type jsCanvas struct {
	element   js.Value
	listeners []jsListener
}

type jsListener struct {
	target js.Value
	name   string
	fn     js.Func
}

func NewJsBinding() Binding {
	return &jsBinding{canvases: map[Handle]*jsCanvas{}}
}

func (b *jsBinding) CreateSurface(conf SurfaceConfig) (Handle, error) {
	document := js.Global().Get("document")
	if document.IsUndefined() {
		return 0, fmt.Errorf("create canvas: no document")
	}

	element := document.Call("createElement", "canvas")
	element.Set("tabIndex", 0)
	document.Set("title", conf.Title)

	switch conf.Mode {
	case ModeWindowed:
		element.Set("width", conf.Width)
		element.Set("height", conf.Height)

	default:
		element.Set("style", "width:100vw; height:100vh")
		resizeCanvas(element)
	}

	document.Get("body").Call("appendChild", element)

	if conf.Mode == ModeFullscreen {
		// browsers only allow this during a user gesture, failing is fine
		element.Call("requestFullscreen")
	}

	b.lastHandle++
	handle := b.lastHandle

	canvas := &jsCanvas{element: element}
	b.canvases[handle] = canvas
	b.configureListeners(handle, canvas, conf.Mode != ModeWindowed)

	return handle, nil
}

func (b *jsBinding) configureListeners(handle Handle, canvas *jsCanvas, fitViewport bool) {
	listen := func(target js.Value, name string, handler func(ev js.Value)) {
		fn := js.FuncOf(func(this js.Value, args []js.Value) any {
			handler(args[0])
			return nil
		})

		target.Call("addEventListener", name, fn)
		canvas.listeners = append(canvas.listeners, jsListener{target: target, name: name, fn: fn})
	}

	element := canvas.element

	listen(element, "keydown", func(ev js.Value) {
		if ev.Get("repeat").Bool() {
			return
		}

		b.pending = append(b.pending, KeyChanged{Handle: handle, Key: keyOfCode(ev.Get("code").String()), Pressed: true})
	})

	listen(element, "keyup", func(ev js.Value) {
		b.pending = append(b.pending, KeyChanged{Handle: handle, Key: keyOfCode(ev.Get("code").String()), Pressed: false})
	})

	listen(element, "mousemove", func(ev js.Value) {
		b.pending = append(b.pending, PointerMoved{
			Handle: handle,
			X:      ev.Get("offsetX").Float(),
			Y:      ev.Get("offsetY").Float(),
		})
	})

	button := func(pressed bool) func(ev js.Value) {
		return func(ev js.Value) {
			btn, ok := jsButtons[ev.Get("button").Int()]
			if !ok {
				return
			}

			b.pending = append(b.pending, PointerButton{Handle: handle, Button: btn, Pressed: pressed})
		}
	}

	listen(element, "mousedown", button(true))
	listen(element, "mouseup", button(false))

	listen(element, "focus", func(ev js.Value) {
		b.pending = append(b.pending, FocusChanged{Handle: handle, Gained: true})
	})

	listen(element, "blur", func(ev js.Value) {
		b.pending = append(b.pending, FocusChanged{Handle: handle, Gained: false})
	})

	if fitViewport {
		listen(js.Global(), "resize", func(ev js.Value) {
			width, height := resizeCanvas(element)
			b.pending = append(b.pending, Resized{Handle: handle, Width: width, Height: height})
		})
	}
}

func (b *jsBinding) DestroySurface(handle Handle) {
	canvas, ok := b.canvases[handle]
	if !ok {
		slog.Warn("Destroy of unknown canvas", slog.String("handle", handle.String()))
		return
	}

	delete(b.canvases, handle)

	for _, listener := range canvas.listeners {
		listener.target.Call("removeEventListener", listener.name, listener.fn)
		listener.fn.Release()
	}

	canvas.element.Call("remove")
}

// Poll hands control to the browser once, so that queued DOM events are
// dispatched to the listeners, and returns what they collected. It must not
// be called from within a js callback.
func (b *jsBinding) Poll(handles []Handle) ([]Event, error) {
	yieldToBrowser()

	events := b.pending
	b.pending = nil
	return events, nil
}

func (b *jsBinding) QuerySize(handle Handle) (int, int, error) {
	canvas, ok := b.canvases[handle]
	if !ok {
		return 0, 0, fmt.Errorf("query size of %s: no such canvas", handle)
	}

	return canvas.element.Get("width").Int(), canvas.element.Get("height").Int(), nil
}

func (b *jsBinding) Native(handle Handle) any {
	if canvas, ok := b.canvases[handle]; ok {
		return canvas.element
	}

	return nil
}

// yieldToBrowser blocks until the browser ran its pending tasks. Listeners
// only run while the go program waits. A zero timeout does not wait for the
// next animation frame.
func yieldToBrowser() {
	done := make(chan struct{})

	resume := js.FuncOf(func(this js.Value, args []js.Value) any {
		close(done)
		return nil
	})

	defer resume.Release()

	js.Global().Call("setTimeout", resume, 0)
	<-done
}

func resizeCanvas(canvas js.Value) (int, int) {
	vv := js.Global().Get("visualViewport")
	viewWidth := vv.Get("width").Float()
	viewHeight := vv.Get("height").Float()

	ratio := js.Global().Get("devicePixelRatio").Float()

	width, height := int(viewWidth*ratio), int(viewHeight*ratio)

	canvas.Set("width", width)
	canvas.Set("height", height)

	return width, height
}

var jsButtons = map[int]MouseButton{
	0: MouseButtonLeft,
	1: MouseButtonMiddle,
	2: MouseButtonRight,
	3: MouseButton4,
	4: MouseButton5,
}

// maps KeyboardEvent.code values to keys
var jsCodeToKey = map[string]Key{}

func init() {
	for key := KeyA; key <= KeyF12; key++ {
		code := key.String()

		switch {
		case key <= KeyZ:
			code = "Key" + code
		case key == KeySuperLeft:
			code = "MetaLeft"
		case key == KeySuperRight:
			code = "MetaRight"
		}

		jsCodeToKey[code] = key
	}
}

func keyOfCode(code string) Key {
	key, ok := jsCodeToKey[code]
	if !ok {
		slog.Debug("Unknown key code", slog.String("code", code))
	}

	return key
}
