package glimpse

// Event is one of CloseRequested, Resized, FocusChanged, KeyChanged,
// PointerMoved or PointerButton.
type Event interface {
	Surface() Handle
}

type MouseButton uint32

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButton4
	MouseButton5
)

type CloseRequested struct {
	Handle Handle
}

type Resized struct {
	Handle        Handle
	Width, Height int
}

type FocusChanged struct {
	Handle Handle
	Gained bool
}

type KeyChanged struct {
	Handle Handle
	Key    Key

	// platform specific code of the physical key
	Scancode int
	Pressed  bool
}

type PointerMoved struct {
	Handle Handle
	X, Y   float64
}

type PointerButton struct {
	Handle  Handle
	Button  MouseButton
	Pressed bool
}

func (ev CloseRequested) Surface() Handle { return ev.Handle }
func (ev Resized) Surface() Handle        { return ev.Handle }
func (ev FocusChanged) Surface() Handle   { return ev.Handle }
func (ev KeyChanged) Surface() Handle     { return ev.Handle }
func (ev PointerMoved) Surface() Handle   { return ev.Handle }
func (ev PointerButton) Surface() Handle  { return ev.Handle }
