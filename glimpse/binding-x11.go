//go:build linux && x11 && !headless

package glimpse

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xprop"
)

// DefaultBinding returns the pure go X11 binding. Build with the x11 tag
// to use it instead of glfw on linux.
func DefaultBinding() Binding {
	return NewX11Binding()
}

const x11PingTimeout = 5 * time.Second

const x11EventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

type x11Binding struct {
	xu           *xgbutil.XUtil
	deleteWindow xproto.Atom

	lastHandle Handle
	windows    map[Handle]*x11Window
	byID       map[xproto.Window]*x11Window
}

type x11Window struct {
	handle        Handle
	id            xproto.Window
	width, height int
}

func NewX11Binding() Binding {
	return &x11Binding{
		windows: map[Handle]*x11Window{},
		byID:    map[xproto.Window]*x11Window{},
	}
}

func (b *x11Binding) connect() error {
	if b.xu != nil {
		return nil
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X11: %w", err)
	}

	atom, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		xu.Conn().Close()
		return fmt.Errorf("intern WM_DELETE_WINDOW: %w", err)
	}

	keybind.Initialize(xu)

	b.xu = xu
	b.deleteWindow = atom

	return nil
}

func (b *x11Binding) disconnectIfUnused() {
	if b.xu != nil && len(b.windows) == 0 {
		b.xu.Conn().Close()
		b.xu = nil
	}
}

func (b *x11Binding) CreateSurface(conf SurfaceConfig) (Handle, error) {
	if err := b.connect(); err != nil {
		return 0, err
	}

	conn := b.xu.Conn()
	screen := b.xu.Screen()

	width, height := conf.Width, conf.Height
	if conf.Mode == ModeFullscreen {
		width, height = int(screen.WidthInPixels), int(screen.HeightInPixels)
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		b.disconnectIfUnused()
		return 0, fmt.Errorf("allocate window id: %w", err)
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		b.xu.RootWin(),
		0, 0,
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		// value list follows the bit order of the mask
		[]uint32{screen.BlackPixel, x11EventMask},
	).Check()

	if err != nil {
		b.disconnectIfUnused()
		return 0, fmt.Errorf("create window: %w", err)
	}

	if err := b.configureWindow(wid, conf); err != nil {
		xproto.DestroyWindow(conn, wid)
		b.disconnectIfUnused()
		return 0, err
	}

	b.lastHandle++

	window := &x11Window{
		handle: b.lastHandle,
		id:     wid,
		width:  width,
		height: height,
	}

	b.windows[window.handle] = window
	b.byID[wid] = window

	return window.handle, nil
}

func (b *x11Binding) configureWindow(wid xproto.Window, conf SurfaceConfig) error {
	if err := icccm.WmNameSet(b.xu, wid, conf.Title); err != nil {
		return fmt.Errorf("set WM_NAME: %w", err)
	}

	if err := ewmh.WmNameSet(b.xu, wid, conf.Title); err != nil {
		return fmt.Errorf("set _NET_WM_NAME: %w", err)
	}

	if err := icccm.WmProtocolsSet(b.xu, wid, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}

	switch conf.Mode {
	case ModeFullscreen:
		if err := ewmh.WmStateSet(b.xu, wid, []string{"_NET_WM_STATE_FULLSCREEN"}); err != nil {
			return fmt.Errorf("set _NET_WM_STATE: %w", err)
		}

	case ModeBorderless:
		hints := &motif.Hints{
			Flags:      motif.HintDecorations,
			Decoration: motif.DecorationNone,
		}

		if err := motif.WmHintsSet(b.xu, wid, hints); err != nil {
			return fmt.Errorf("set _MOTIF_WM_HINTS: %w", err)
		}
	}

	if err := xproto.MapWindowChecked(b.xu.Conn(), wid).Check(); err != nil {
		return fmt.Errorf("map window: %w", err)
	}

	return nil
}

func (b *x11Binding) DestroySurface(handle Handle) {
	window, ok := b.windows[handle]
	if !ok {
		slog.Warn("Destroy of unknown X11 window", slog.String("handle", handle.String()))
		return
	}

	delete(b.windows, handle)
	delete(b.byID, window.id)

	err := xproto.DestroyWindowChecked(b.xu.Conn(), window.id).Check()
	if err != nil {
		slog.Warn("Destroy X11 window failed",
			slog.String("handle", handle.String()),
			slog.Any("error", err))
	}

	b.disconnectIfUnused()
}

func (b *x11Binding) Poll(handles []Handle) ([]Event, error) {
	if b.xu == nil {
		return nil, nil
	}

	var events []Event

	for {
		xev, xerr := b.xu.Conn().PollForEvent()
		if xev == nil && xerr == nil {
			// a lost connection looks like an empty queue, only a round trip tells them apart
			if err := pingX11(b.xu.Conn(), x11PingTimeout); err != nil {
				return nil, fmt.Errorf("X11 connection lost: %w", err)
			}

			return events, nil
		}

		if xerr != nil {
			// errors of requests sent without checking, e.g. on a window that is already gone
			slog.Debug("X11 protocol error", slog.String("error", xerr.Error()))
			continue
		}

		if ev, ok := b.convert(xev); ok {
			events = append(events, ev)
		}
	}
}

// pingX11 sends a request that needs a reply. xgb panics when sending on a
// closed connection and never answers requests that were queued just before
// the connection broke.
func pingX11(conn *xgb.Conn, timeout time.Duration) error {
	result := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("send request: %v", r)
			}
		}()

		_, err := xproto.GetInputFocus(conn).Reply()
		result <- err
	}()

	select {
	case err := <-result:
		return err

	case <-time.After(timeout):
		return fmt.Errorf("no reply from X server after %s", timeout)
	}
}

func (b *x11Binding) convert(xev xgb.Event) (Event, bool) {
	switch xev := xev.(type) {
	case xproto.ClientMessageEvent:
		window, ok := b.byID[xev.Window]
		if !ok || xev.Format != 32 || xproto.Atom(xev.Data.Data32[0]) != b.deleteWindow {
			return nil, false
		}

		return CloseRequested{Handle: window.handle}, true

	case xproto.ConfigureNotifyEvent:
		window, ok := b.byID[xev.Window]
		if !ok {
			return nil, false
		}

		width, height := int(xev.Width), int(xev.Height)
		if width == window.width && height == window.height {
			// only moved
			return nil, false
		}

		window.width, window.height = width, height
		return Resized{Handle: window.handle, Width: width, Height: height}, true

	case xproto.FocusInEvent:
		window, ok := b.byID[xev.Event]
		if !ok {
			return nil, false
		}

		return FocusChanged{Handle: window.handle, Gained: true}, true

	case xproto.FocusOutEvent:
		window, ok := b.byID[xev.Event]
		if !ok {
			return nil, false
		}

		return FocusChanged{Handle: window.handle, Gained: false}, true

	case xproto.KeyPressEvent:
		return b.keyEvent(xev.Event, xev.Detail, true)

	case xproto.KeyReleaseEvent:
		return b.keyEvent(xev.Event, xev.Detail, false)

	case xproto.ButtonPressEvent:
		return b.buttonEvent(xev.Event, xev.Detail, true)

	case xproto.ButtonReleaseEvent:
		return b.buttonEvent(xev.Event, xev.Detail, false)

	case xproto.MotionNotifyEvent:
		window, ok := b.byID[xev.Event]
		if !ok {
			return nil, false
		}

		return PointerMoved{Handle: window.handle, X: float64(xev.EventX), Y: float64(xev.EventY)}, true
	}

	return nil, false
}

func (b *x11Binding) keyEvent(wid xproto.Window, keycode xproto.Keycode, pressed bool) (Event, bool) {
	window, ok := b.byID[wid]
	if !ok {
		return nil, false
	}

	keysym := keybind.KeysymGet(b.xu, keycode, 0)

	return KeyChanged{
		Handle:   window.handle,
		Key:      keyOfKeysym(keysym),
		Scancode: int(keycode),
		Pressed:  pressed,
	}, true
}

func (b *x11Binding) buttonEvent(wid xproto.Window, detail xproto.Button, pressed bool) (Event, bool) {
	window, ok := b.byID[wid]
	if !ok {
		return nil, false
	}

	var button MouseButton

	switch detail {
	case 1:
		button = MouseButtonLeft
	case 2:
		button = MouseButtonMiddle
	case 3:
		button = MouseButtonRight
	case 8:
		button = MouseButton4
	case 9:
		button = MouseButton5
	default:
		// 4 to 7 are scroll wheel clicks
		return nil, false
	}

	return PointerButton{Handle: window.handle, Button: button, Pressed: pressed}, true
}

func (b *x11Binding) QuerySize(handle Handle) (int, int, error) {
	window, ok := b.windows[handle]
	if !ok {
		return 0, 0, fmt.Errorf("query size of %s: no such window", handle)
	}

	geom, err := xproto.GetGeometry(b.xu.Conn(), xproto.Drawable(window.id)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query geometry of %s: %w", handle, err)
	}

	return int(geom.Width), int(geom.Height), nil
}

func (b *x11Binding) Native(handle Handle) any {
	if window, ok := b.windows[handle]; ok {
		return window.id
	}

	return nil
}

var x11KeysymToKey = map[xproto.Keysym]Key{
	0x0020: KeySpace,
	0xff0d: KeyEnter,
	0xff1b: KeyEscape,
	0xff09: KeyTab,
	0xff08: KeyBackspace,
	0xffff: KeyDelete,
	0xff63: KeyInsert,
	0xff50: KeyHome,
	0xff57: KeyEnd,
	0xff55: KeyPageUp,
	0xff56: KeyPageDown,
	0xff51: KeyArrowLeft,
	0xff52: KeyArrowUp,
	0xff53: KeyArrowRight,
	0xff54: KeyArrowDown,
	0xffe1: KeyShiftLeft,
	0xffe2: KeyShiftRight,
	0xffe3: KeyControlLeft,
	0xffe4: KeyControlRight,
	0xffe9: KeyAltLeft,
	0xffea: KeyAltRight,
	0xffeb: KeySuperLeft,
	0xffec: KeySuperRight,
}

func init() {
	for idx := range 26 {
		// lower and upper case letters
		x11KeysymToKey[xproto.Keysym(0x61+idx)] = KeyA + Key(idx)
		x11KeysymToKey[xproto.Keysym(0x41+idx)] = KeyA + Key(idx)
	}

	for idx := range 10 {
		x11KeysymToKey[xproto.Keysym(0x30+idx)] = KeyDigit0 + Key(idx)
	}

	for idx := range 12 {
		x11KeysymToKey[xproto.Keysym(0xffbe+idx)] = KeyF1 + Key(idx)
	}
}

func keyOfKeysym(keysym xproto.Keysym) Key {
	key, ok := x11KeysymToKey[keysym]
	if !ok {
		slog.Debug("Unknown keysym", slog.Int("keysym", int(keysym)))
	}

	return key
}
