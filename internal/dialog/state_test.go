package dialog

import (
	"testing"

	"github.com/1broseidon/alerta/internal/x11"
)

const deleteAtom x11.Atom = 451

// retryCancelState builds a running state machine over a two-button
// layout with a synthetic keymap: keycode 9 Escape, 36 Return, 23 Tab,
// 65 space.
func retryCancelState(t *testing.T) *State {
	t.Helper()
	buttons, ok := Preset("retrycancel")
	if !ok {
		t.Fatalf("retrycancel preset missing")
	}
	return newTestState(t, &Request{Message: "try again?", Buttons: buttons})
}

func newTestState(t *testing.T, req *Request) *State {
	t.Helper()
	l, err := Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	st := NewState(l)
	st.DeleteWindow = deleteAtom
	st.Keysym = func(keycode byte) uint32 {
		switch keycode {
		case 9:
			return x11.KeyEscape
		case 36:
			return x11.KeyReturn
		case 23:
			return x11.KeyTab
		case 65:
			return x11.KeySpace
		}
		return 0
	}
	return st
}

func center(r Rect) (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func TestState_ExposeRequestsRedraw(t *testing.T) {
	st := retryCancelState(t)
	if !st.Handle(x11.Expose{}) {
		t.Fatalf("expose did not request a redraw")
	}
	if st.Done {
		t.Fatalf("expose terminated the dialog")
	}
}

func TestState_ClickDismissesWithButtonIndex(t *testing.T) {
	st := retryCancelState(t)
	x, y := center(st.layout.Buttons[1].Rect)

	st.Handle(x11.ButtonPress{X: x, Y: y, Button: 1})
	if st.Done {
		t.Fatalf("press alone dismissed the dialog")
	}
	st.Handle(x11.ButtonRelease{X: x, Y: y, Button: 1})
	if !st.Done {
		t.Fatalf("release on pressed button did not dismiss")
	}
	if st.Result.Closed || st.Result.Action != 1 {
		t.Fatalf("result = %+v, want action 1", st.Result)
	}
}

func TestState_ClickSurvivesInterveningEvents(t *testing.T) {
	st := retryCancelState(t)
	x, y := center(st.layout.Buttons[0].Rect)

	st.Handle(x11.ButtonPress{X: x, Y: y, Button: 1})
	st.Handle(x11.MotionNotify{X: x + 1, Y: y})
	st.Handle(x11.Expose{})
	st.Handle(x11.ButtonRelease{X: x + 1, Y: y, Button: 1})
	if !st.Done || st.Result.Action != 0 {
		t.Fatalf("click with intervening events: %+v done=%v", st.Result, st.Done)
	}
}

func TestState_ReleaseOutsideCancelsPress(t *testing.T) {
	st := retryCancelState(t)
	x, y := center(st.layout.Buttons[0].Rect)

	st.Handle(x11.ButtonPress{X: x, Y: y, Button: 1})
	redraw := st.Handle(x11.ButtonRelease{X: 1, Y: 1, Button: 1})
	if st.Done {
		t.Fatalf("release outside dismissed the dialog")
	}
	if !redraw {
		t.Fatalf("aborted press should repaint the released button")
	}
	if st.Pressed != -1 {
		t.Fatalf("pressed index not cleared: %d", st.Pressed)
	}

	// A later release without a press does nothing.
	if st.Handle(x11.ButtonRelease{X: x, Y: y, Button: 1}) {
		t.Fatalf("stray release requested a redraw")
	}
}

func TestState_NonLeftButtonIgnored(t *testing.T) {
	st := retryCancelState(t)
	x, y := center(st.layout.Buttons[0].Rect)
	st.Handle(x11.ButtonPress{X: x, Y: y, Button: 3})
	st.Handle(x11.ButtonRelease{X: x, Y: y, Button: 3})
	if st.Done || st.Pressed != -1 {
		t.Fatalf("right click changed state: done=%v pressed=%d", st.Done, st.Pressed)
	}
}

func TestState_HoverTracksPointer(t *testing.T) {
	st := retryCancelState(t)
	x, y := center(st.layout.Buttons[1].Rect)

	if !st.Handle(x11.MotionNotify{X: x, Y: y}) {
		t.Fatalf("entering a button should repaint")
	}
	if st.Hover != 1 {
		t.Fatalf("hover = %d, want 1", st.Hover)
	}
	if st.Handle(x11.MotionNotify{X: x + 1, Y: y}) {
		t.Fatalf("motion within the same button should not repaint")
	}
	if !st.Handle(x11.MotionNotify{X: 1, Y: 1}) {
		t.Fatalf("leaving the button should repaint")
	}
	if st.Hover != -1 {
		t.Fatalf("hover = %d after leaving, want -1", st.Hover)
	}
}

func TestState_EscapeActivatesCancel(t *testing.T) {
	st := retryCancelState(t)
	st.Handle(x11.KeyPress{Keycode: 9})
	if !st.Done {
		t.Fatalf("escape did not dismiss")
	}
	if st.Result.Closed || st.Result.Action != 1 {
		t.Fatalf("result = %+v, want cancel action 1", st.Result)
	}
}

func TestState_EscapeWithModifiersIgnored(t *testing.T) {
	st := retryCancelState(t)
	for _, mod := range []uint16{x11.ModShift, x11.ModControl, x11.Mod1} {
		st.Handle(x11.KeyPress{Keycode: 9, State: mod})
		if st.Done {
			t.Fatalf("escape with modifier %#x dismissed the dialog", mod)
		}
	}
	st.Handle(x11.KeyPress{Keycode: 9})
	if !st.Done {
		t.Fatalf("unmodified escape did not dismiss")
	}
}

func TestState_EscapeIgnoredWithoutCancelButton(t *testing.T) {
	buttons, _ := Preset("yesno")
	st := newTestState(t, &Request{Message: "sure?", Buttons: buttons})
	st.Handle(x11.KeyPress{Keycode: 9})
	if st.Done {
		t.Fatalf("escape dismissed a dialog with no cancel button")
	}
}

func TestState_EnterActivatesDefault(t *testing.T) {
	st := retryCancelState(t)
	st.Handle(x11.KeyPress{Keycode: 36})
	if !st.Done || st.Result.Action != 0 {
		t.Fatalf("enter: done=%v result=%+v, want default action 0", st.Done, st.Result)
	}
}

func TestState_EnterActivatesFocusOverDefault(t *testing.T) {
	st := retryCancelState(t)
	st.Handle(x11.KeyPress{Keycode: 23}) // Tab to button 0
	st.Handle(x11.KeyPress{Keycode: 23}) // Tab to button 1
	st.Handle(x11.KeyPress{Keycode: 36})
	if !st.Done || st.Result.Action != 1 {
		t.Fatalf("enter on focused button: done=%v result=%+v", st.Done, st.Result)
	}
}

func TestState_SpaceActivatesFocus(t *testing.T) {
	st := retryCancelState(t)
	st.Handle(x11.KeyPress{Keycode: 23})
	st.Handle(x11.KeyPress{Keycode: 65})
	if !st.Done || st.Result.Action != 0 {
		t.Fatalf("space on focused button: done=%v result=%+v", st.Done, st.Result)
	}
}

func TestState_TabCycles(t *testing.T) {
	st := retryCancelState(t)
	if st.Focus != -1 {
		t.Fatalf("initial focus = %d", st.Focus)
	}
	st.Handle(x11.KeyPress{Keycode: 23})
	if st.Focus != 0 {
		t.Fatalf("focus after tab = %d", st.Focus)
	}
	st.Handle(x11.KeyPress{Keycode: 23})
	if st.Focus != 1 {
		t.Fatalf("focus after second tab = %d", st.Focus)
	}
	st.Handle(x11.KeyPress{Keycode: 23})
	if st.Focus != 0 {
		t.Fatalf("tab did not wrap: focus = %d", st.Focus)
	}
}

func TestState_ShiftTabCyclesBackwards(t *testing.T) {
	st := retryCancelState(t)
	st.Handle(x11.KeyPress{Keycode: 23, State: x11.ModShift})
	if st.Focus != 1 {
		t.Fatalf("shift-tab from no focus = %d, want last button", st.Focus)
	}
	st.Handle(x11.KeyPress{Keycode: 23, State: x11.ModShift})
	if st.Focus != 0 {
		t.Fatalf("focus after second shift-tab = %d", st.Focus)
	}
}

func TestState_UnknownKeyIgnored(t *testing.T) {
	st := retryCancelState(t)
	if st.Handle(x11.KeyPress{Keycode: 200}) {
		t.Fatalf("unknown key requested a redraw")
	}
	if st.Done {
		t.Fatalf("unknown key dismissed the dialog")
	}
}

func TestState_DeleteWindowCloses(t *testing.T) {
	st := retryCancelState(t)
	msg := x11.ClientMessage{Format: 32}
	msg.Data32[0] = uint32(deleteAtom)
	st.Handle(msg)
	if !st.Done || !st.Result.Closed {
		t.Fatalf("close request: done=%v result=%+v", st.Done, st.Result)
	}
}

func TestState_OtherClientMessageIgnored(t *testing.T) {
	st := retryCancelState(t)
	msg := x11.ClientMessage{Format: 32}
	msg.Data32[0] = uint32(deleteAtom) + 7
	st.Handle(msg)
	if st.Done {
		t.Fatalf("unrelated client message dismissed the dialog")
	}
}

func TestState_EventsAfterDoneIgnored(t *testing.T) {
	st := retryCancelState(t)
	st.Handle(x11.KeyPress{Keycode: 36})
	if !st.Done {
		t.Fatalf("setup: dialog not dismissed")
	}
	got := st.Result
	st.Handle(x11.KeyPress{Keycode: 9})
	if st.Result != got {
		t.Fatalf("result changed after terminal state")
	}
}
