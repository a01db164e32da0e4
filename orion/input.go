package orion

import (
	"github.com/oliverbestmann/lme/glimpse"
)

type KeyCode = glimpse.Key
type MouseButton = glimpse.MouseButton

func (w *Window) CursorPosition() (x, y float64) {
	w.mustNotBeDestroyed("cursor position")
	return w.input.Mouse.CursorX, w.input.Mouse.CursorY
}

func (w *Window) IsKeyPressed(key KeyCode) bool {
	w.mustNotBeDestroyed("key state")
	return w.input.Keys.Pressed[key]
}

func (w *Window) IsKeyJustPressed(key KeyCode) bool {
	w.mustNotBeDestroyed("key state")
	return w.input.Keys.JustPressed[key]
}

func (w *Window) IsKeyJustReleased(key KeyCode) bool {
	w.mustNotBeDestroyed("key state")
	return w.input.Keys.JustReleased[key]
}

func (w *Window) IsMouseButtonPressed(button MouseButton) bool {
	w.mustNotBeDestroyed("button state")
	return w.input.Mouse.Pressed[button]
}

func (w *Window) IsMouseButtonJustPressed(button MouseButton) bool {
	w.mustNotBeDestroyed("button state")
	return w.input.Mouse.JustPressed[button]
}

func (w *Window) IsMouseButtonJustReleased(button MouseButton) bool {
	w.mustNotBeDestroyed("button state")
	return w.input.Mouse.JustReleased[button]
}
