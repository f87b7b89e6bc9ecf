// Package input turns SDL2 events into gallery actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is something the viewer asked the gallery to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionNext           // walk to the next stop
	ActionToggleAutoplay // pause or resume the walk
	ActionRestart        // go back to the first stop
	ActionScreenshot
)

// Event represents a processed input event.
type Event struct {
	Action Action
	Width  int
	Height int
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns the stock key map.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE: ActionQuit,
		sdl.SCANCODE_Q:      ActionQuit,
		sdl.SCANCODE_SPACE:  ActionNext,
		sdl.SCANCODE_RIGHT:  ActionNext,
		sdl.SCANCODE_P:      ActionToggleAutoplay,
		sdl.SCANCODE_HOME:   ActionRestart,
		sdl.SCANCODE_F12:    ActionScreenshot,
	}
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	events   []Event
}

// New creates a new input handler.
func New(bindings Bindings) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to actions.
// Returns true if the gallery should close.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Action: ActionQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Action: ActionResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if ev, ok := i.Translate(e.Keysym.Scancode); ok {
				i.events = append(i.events, ev)
				if ev.Action == ActionQuit {
					return true
				}
			}
		}
	}

	return false
}

// Translate looks up the action bound to a key.
func (i *Input) Translate(key sdl.Scancode) (Event, bool) {
	action, ok := i.bindings[key]
	if !ok || action == ActionNone {
		return Event{}, false
	}
	return Event{Action: action}, true
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
