package dialog

import "github.com/1broseidon/alerta/internal/x11"

// State is the dialog's interaction state machine. Exactly one exists
// per invocation; it moves monotonically from showing to dismissed and
// is never reused. Transitions are driven purely by Handle, so every
// rule is testable with synthetic events and no connection.
type State struct {
	layout *Layout

	// Keysym resolves a server keycode to its unmodified keysym.
	// Injected so tests can supply a fixed table.
	Keysym func(keycode byte) uint32
	// DeleteWindow is the WM_DELETE_WINDOW atom; a ClientMessage
	// carrying it is the window manager's close request.
	DeleteWindow x11.Atom

	// Hover, Focus and Pressed are button indices, -1 for none.
	Hover   int
	Focus   int
	Pressed int

	// Done marks the terminal state; Result is valid only then.
	Done   bool
	Result Result
}

// NewState builds the initial (showing) state for a computed layout.
func NewState(l *Layout) *State {
	return &State{
		layout:  l,
		Keysym:  func(byte) uint32 { return 0 },
		Hover:   -1,
		Focus:   -1,
		Pressed: -1,
	}
}

func (s *State) dismiss(action int) {
	s.Done = true
	s.Result = Result{Action: s.layout.Buttons[action].Action}
}

const pointerButtonLeft = 1

// Handle applies one event to the state machine and reports whether
// the dialog's appearance changed and must be repainted. Events after
// the terminal state are not expected; the event loop stops the moment
// Done is set.
func (s *State) Handle(ev x11.Event) (redraw bool) {
	if s.Done {
		return false
	}
	switch ev := ev.(type) {
	case x11.Expose:
		return true

	case x11.MotionNotify:
		idx := s.layout.buttonAt(ev.X, ev.Y)
		if idx != s.Hover {
			s.Hover = idx
			return true
		}

	case x11.ButtonPress:
		if ev.Button != pointerButtonLeft {
			return false
		}
		if idx := s.layout.buttonAt(ev.X, ev.Y); idx >= 0 {
			s.Pressed = idx
			return true
		}

	case x11.ButtonRelease:
		if ev.Button != pointerButtonLeft || s.Pressed < 0 {
			return false
		}
		pressed := s.Pressed
		s.Pressed = -1
		if s.layout.Buttons[pressed].Rect.Contains(ev.X, ev.Y) {
			s.dismiss(pressed)
			return false
		}
		return true

	case x11.KeyPress:
		return s.handleKey(ev)

	case x11.ClientMessage:
		if ev.Format == 32 && x11.Atom(ev.Data32[0]) == s.DeleteWindow {
			s.Done = true
			s.Result = Result{Closed: true}
		}
	}
	return false
}

func (s *State) handleKey(ev x11.KeyPress) bool {
	n := len(s.layout.Buttons)
	switch sym := s.Keysym(ev.Keycode); sym {
	case x11.KeyTab, x11.KeyISOLeftTab:
		back := sym == x11.KeyISOLeftTab || ev.State&x11.ModShift != 0
		if s.Focus < 0 {
			if back {
				s.Focus = n - 1
			} else {
				s.Focus = 0
			}
		} else if back {
			s.Focus = (s.Focus + n - 1) % n
		} else {
			s.Focus = (s.Focus + 1) % n
		}
		return true

	case x11.KeyReturn, x11.KeyKPEnter, x11.KeySpace:
		idx := s.Focus
		if idx < 0 {
			idx = s.layout.DefaultIndex
		}
		s.dismiss(idx)

	case x11.KeyEscape:
		// Escape only counts unmodified; Ctrl-Esc and friends are
		// desktop shortcuts, not answers.
		if ev.State&(x11.ModShift|x11.ModControl|x11.Mod1) != 0 {
			return false
		}
		if s.layout.CancelIndex >= 0 {
			s.dismiss(s.layout.CancelIndex)
		}
	}
	return false
}
