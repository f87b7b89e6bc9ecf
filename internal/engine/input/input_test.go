package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateDefaults(t *testing.T) {
	in := New(nil)

	tests := []struct {
		key  sdl.Scancode
		want Action
	}{
		{sdl.SCANCODE_ESCAPE, ActionQuit},
		{sdl.SCANCODE_SPACE, ActionNext},
		{sdl.SCANCODE_RIGHT, ActionNext},
		{sdl.SCANCODE_P, ActionToggleAutoplay},
		{sdl.SCANCODE_HOME, ActionRestart},
		{sdl.SCANCODE_F12, ActionScreenshot},
	}
	for _, tt := range tests {
		ev, ok := in.Translate(tt.key)
		if !ok {
			t.Errorf("key %d: not bound", tt.key)
			continue
		}
		if ev.Action != tt.want {
			t.Errorf("key %d: got action %d, want %d", tt.key, ev.Action, tt.want)
		}
	}

	if _, ok := in.Translate(sdl.SCANCODE_Z); ok {
		t.Error("unbound key translated to an action")
	}
}

func TestTranslateCustomBindings(t *testing.T) {
	in := New(Bindings{
		sdl.SCANCODE_N:      ActionNext,
		sdl.SCANCODE_ESCAPE: ActionNone,
	})

	if ev, ok := in.Translate(sdl.SCANCODE_N); !ok || ev.Action != ActionNext {
		t.Errorf("N: got %+v, %v", ev, ok)
	}
	if _, ok := in.Translate(sdl.SCANCODE_ESCAPE); ok {
		t.Error("ActionNone binding should be ignored")
	}
	if _, ok := in.Translate(sdl.SCANCODE_SPACE); ok {
		t.Error("custom bindings replace the defaults")
	}
}
