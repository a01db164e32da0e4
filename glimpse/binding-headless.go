package glimpse

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Headless is an in-memory Binding without any native surface behind it. It
// is used to drive the engine in tests and on machines without a display.
// Events are queued using Inject and returned by the next call to Poll.
type Headless struct {
	// resolution reported for fullscreen surfaces
	DisplayWidth  int
	DisplayHeight int

	lastHandle Handle
	surfaces   map[Handle]*headlessSurface

	pending []Event

	allocations int
	releases    int
	pollCalls   int

	createErr error
	sizeErr   error
	pollErr   error
}

type headlessSurface struct {
	conf          SurfaceConfig
	width, height int
}

var _ Binding = (*Headless)(nil)

func NewHeadless() *Headless {
	return &Headless{
		DisplayWidth:  1920,
		DisplayHeight: 1080,
		surfaces:      map[Handle]*headlessSurface{},
	}
}

func (h *Headless) CreateSurface(conf SurfaceConfig) (Handle, error) {
	if err := h.createErr; err != nil {
		h.createErr = nil
		return 0, fmt.Errorf("create headless surface: %w", err)
	}

	width, height := conf.Width, conf.Height
	if conf.Mode == ModeFullscreen {
		width, height = h.DisplayWidth, h.DisplayHeight
	}

	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("create headless surface: invalid size %dx%d", width, height)
	}

	h.lastHandle++
	h.allocations++

	h.surfaces[h.lastHandle] = &headlessSurface{
		conf:   conf,
		width:  width,
		height: height,
	}

	return h.lastHandle, nil
}

func (h *Headless) DestroySurface(handle Handle) {
	if _, ok := h.surfaces[handle]; !ok {
		slog.Warn("Destroy of unknown headless surface", slog.String("handle", handle.String()))
		return
	}

	delete(h.surfaces, handle)
	h.releases++
}

// Poll returns every injected event, including events of surfaces that
// were destroyed after the event was injected. A native event queue
// behaves the same way.
func (h *Headless) Poll(handles []Handle) ([]Event, error) {
	h.pollCalls++

	if h.pollErr != nil {
		return nil, h.pollErr
	}

	events := h.pending
	h.pending = nil

	for _, ev := range events {
		resized, ok := ev.(Resized)
		if !ok || !slices.Contains(handles, resized.Handle) {
			continue
		}

		if surface := h.surfaces[resized.Handle]; surface != nil {
			surface.width, surface.height = resized.Width, resized.Height
		}
	}

	return events, nil
}

func (h *Headless) QuerySize(handle Handle) (int, int, error) {
	if err := h.sizeErr; err != nil {
		h.sizeErr = nil
		return 0, 0, fmt.Errorf("query size of %s: %w", handle, err)
	}

	surface, ok := h.surfaces[handle]
	if !ok {
		return 0, 0, fmt.Errorf("query size of %s: no such surface", handle)
	}

	return surface.width, surface.height, nil
}

func (h *Headless) Native(handle Handle) any {
	if surface, ok := h.surfaces[handle]; ok {
		return surface.conf
	}

	return nil
}

// Inject queues events to be returned by the next call to Poll
func (h *Headless) Inject(events ...Event) {
	h.pending = append(h.pending, events...)
}

// FailNextCreate lets the next call to CreateSurface fail with the given error
func (h *Headless) FailNextCreate(err error) {
	h.createErr = err
}

// FailNextQuerySize lets the next call to QuerySize fail with the given error
func (h *Headless) FailNextQuerySize(err error) {
	h.sizeErr = err
}

// Disconnect simulates a lost connection to the display. Every following
// call to Poll fails.
func (h *Headless) Disconnect(err error) {
	if err == nil {
		err = errors.New("display disconnected")
	}

	h.pollErr = err
}

// Allocations returns the number of surfaces ever created
func (h *Headless) Allocations() int {
	return h.allocations
}

// Live returns the number of surfaces created but not yet destroyed
func (h *Headless) Live() int {
	return h.allocations - h.releases
}

func (h *Headless) PollCalls() int {
	return h.pollCalls
}
