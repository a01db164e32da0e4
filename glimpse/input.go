package glimpse

import (
	"maps"
)

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed during the last poll
	JustPressed map[Key]bool

	// keys that were just released during the last poll
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float64

	// movement accumulated during the last poll
	DeltaX, DeltaY float64

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked during the last poll
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released during the last poll
	JustReleased map[MouseButton]bool

	hasPosition bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float64) {
	if m.hasPosition {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.hasPosition = true
}

func (m *MouseState) nextTick() {
	clear(m.JustPressed)
	clear(m.JustReleased)

	m.DeltaX = 0
	m.DeltaY = 0
}

// InputState folds key and pointer events of one surface into the
// current state of keyboard and mouse.
type InputState struct {
	Keys  KeysState
	Mouse MouseState
}

// Clone returns a deep copy that is not affected by later events
func (s InputState) Clone() InputState {
	s.Keys.Pressed = maps.Clone(s.Keys.Pressed)
	s.Keys.JustPressed = maps.Clone(s.Keys.JustPressed)
	s.Keys.JustReleased = maps.Clone(s.Keys.JustReleased)

	s.Mouse.Pressed = maps.Clone(s.Mouse.Pressed)
	s.Mouse.JustPressed = maps.Clone(s.Mouse.JustPressed)
	s.Mouse.JustReleased = maps.Clone(s.Mouse.JustReleased)

	return s
}

// NextTick forgets the transitions recorded during the previous poll
func (s *InputState) NextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

// Apply updates the state with the given event. Events other than key
// or pointer events are ignored.
func (s *InputState) Apply(ev Event) {
	switch ev := ev.(type) {
	case KeyChanged:
		if ev.Pressed {
			s.Keys.press(ev.Key)
		} else {
			s.Keys.release(ev.Key)
		}

	case PointerButton:
		if ev.Pressed {
			s.Mouse.press(ev.Button)
		} else {
			s.Mouse.release(ev.Button)
		}

	case PointerMoved:
		s.Mouse.position(ev.X, ev.Y)
	}
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
