package app

import (
	"fmt"

	"github.com/Faultbox/plastic-gallery/internal/engine/input"
	"github.com/Faultbox/plastic-gallery/internal/gallery"
)

// Walk is the part of the camera walk the viewer can steer.
type Walk interface {
	Step() bool
	Autoplay() bool
	SetAutoplay(on bool)
	Restart()
	State() (gallery.State, int)
}

// Viewport is anything that follows the drawable size.
type Viewport interface {
	Resize(width, height int)
}

// handle applies one input event. It returns true when the gallery
// should close.
func handle(ev input.Event, walk Walk, views ...Viewport) bool {
	switch ev.Action {
	case input.ActionQuit:
		return true
	case input.ActionResize:
		for _, v := range views {
			v.Resize(ev.Width, ev.Height)
		}
	case input.ActionNext:
		if walk != nil {
			walk.Step()
		}
	case input.ActionToggleAutoplay:
		if walk != nil {
			walk.SetAutoplay(!walk.Autoplay())
		}
	case input.ActionRestart:
		if walk != nil {
			walk.Restart()
		}
	}
	return false
}

// title describes where the walk is for the window caption.
func title(base string, placed []gallery.PlacedModel, walk Walk) string {
	if walk == nil || len(placed) == 0 {
		return base
	}
	state, idx := walk.State()
	if idx < 0 || idx >= len(placed) {
		return base
	}
	verb := "at"
	if state == gallery.StateWalking {
		verb = "to"
	}
	t := fmt.Sprintf("%s: %s %s (%d/%d)", base, verb, placed[idx].Name, idx+1, len(placed))
	if !walk.Autoplay() {
		t += " [paused]"
	}
	return t
}
