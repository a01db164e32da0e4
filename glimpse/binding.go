package glimpse

import "fmt"

// Handle identifies one native surface created by a Binding. Handles are
// never reused by the same binding, a zero Handle is never valid.
type Handle uint32

func (h Handle) String() string {
	return fmt.Sprintf("surface#%d", uint32(h))
}

type Mode uint8

const (
	ModeWindowed Mode = iota
	ModeFullscreen
	ModeBorderless
)

type SurfaceConfig struct {
	Title  string
	Width  int
	Height int
	Mode   Mode
}

// Binding wraps the native windowing api of a single platform. Exactly one
// implementation is compiled into a binary, see DefaultBinding.
type Binding interface {
	// CreateSurface allocates a new native surface. It either returns a
	// fully usable handle or an error, never a partially created surface.
	CreateSurface(conf SurfaceConfig) (Handle, error)

	// DestroySurface releases the native surface. It must be called exactly
	// once per handle. Failures reported by the platform are logged.
	DestroySurface(handle Handle)

	// Poll returns all events queued for the given handles without waiting
	// for new ones. Events of a single surface are returned in the order
	// the platform produced them.
	Poll(handles []Handle) ([]Event, error)

	// QuerySize returns the current size of the surface in pixels
	QuerySize(handle Handle) (width, height int, err error)

	// Native exposes the platform object behind the handle, e.g. a
	// *glfw.Window, to be used by a renderer.
	Native(handle Handle) any
}
