package x11

import "encoding/binary"

// Core event codes the dialog subscribes to.
const (
	codeKeyPress      = 2
	codeButtonPress   = 4
	codeButtonRelease = 5
	codeMotionNotify  = 6
	codeExpose        = 12
	codeClientMessage = 33
)

// Key/button state modifier bits.
const (
	ModShift   = 1 << 0
	ModControl = 1 << 2
	Mod1       = 1 << 3
)

// Event mask bits for CreateWindow.
const (
	EventKeyPress        = 1 << 0
	EventButtonPress     = 1 << 2
	EventButtonRelease   = 1 << 3
	EventPointerMotion   = 1 << 6
	EventExposure        = 1 << 15
	EventStructureNotify = 1 << 17
)

// Event is one decoded item from the server's event stream. The set of
// variants is closed; anything the dialog does not understand decodes
// to UnknownEvent.
type Event interface {
	isEvent()
}

// Expose reports a damaged region that must be repainted.
type Expose struct {
	Window Window
	X, Y   int
	W, H   int
	Count  int
}

// ButtonPress reports a pointer button going down.
type ButtonPress struct {
	Window Window
	X, Y   int
	Button byte
	State  uint16
}

// ButtonRelease reports a pointer button going up.
type ButtonRelease struct {
	Window Window
	X, Y   int
	Button byte
	State  uint16
}

// MotionNotify reports pointer movement inside the window.
type MotionNotify struct {
	Window Window
	X, Y   int
}

// KeyPress reports a key going down, identified by server keycode.
type KeyPress struct {
	Window  Window
	Keycode byte
	State   uint16
}

// ClientMessage carries window-manager messages such as the close
// request negotiated through WM_PROTOCOLS.
type ClientMessage struct {
	Window Window
	Type   Atom
	Format byte
	// Data32 holds the message body decoded as five 32-bit words when
	// Format is 32, which is the only format the dialog negotiates.
	Data32 [5]uint32
}

// UnknownEvent is any event code outside the dialog's closed set,
// including codes added by server extensions. Callers ignore it.
type UnknownEvent struct {
	Code byte
}

func (Expose) isEvent()        {}
func (ButtonPress) isEvent()   {}
func (ButtonRelease) isEvent() {}
func (MotionNotify) isEvent()  {}
func (KeyPress) isEvent()      {}
func (ClientMessage) isEvent() {}
func (UnknownEvent) isEvent()  {}

// decodeEvent maps one 32-byte event packet onto the typed variant set.
// The top bit of the code marks events generated by SendEvent; the
// payload layout is identical.
func decodeEvent(order binary.ByteOrder, p []byte) Event {
	code := p[0] & 0x7f
	r := newReader(order, p)
	switch code {
	case codeKeyPress:
		r.skip(1)
		detail := r.card8()
		r.skip(2 + 4 + 4) // sequence, time, root
		win := Window(r.card32())
		r.skip(4 + 2 + 2) // child, root-x, root-y
		r.skip(4)         // event-x, event-y unused for keys
		state := r.card16()
		return KeyPress{Window: win, Keycode: detail, State: state}
	case codeButtonPress, codeButtonRelease, codeMotionNotify:
		r.skip(1)
		detail := r.card8()
		r.skip(2 + 4 + 4)
		win := Window(r.card32())
		r.skip(4 + 2 + 2)
		x := int(r.int16())
		y := int(r.int16())
		state := r.card16()
		switch code {
		case codeButtonPress:
			return ButtonPress{Window: win, X: x, Y: y, Button: detail, State: state}
		case codeButtonRelease:
			return ButtonRelease{Window: win, X: x, Y: y, Button: detail, State: state}
		default:
			return MotionNotify{Window: win, X: x, Y: y}
		}
	case codeExpose:
		r.skip(4)
		win := Window(r.card32())
		return Expose{
			Window: win,
			X:      int(r.card16()),
			Y:      int(r.card16()),
			W:      int(r.card16()),
			H:      int(r.card16()),
			Count:  int(r.card16()),
		}
	case codeClientMessage:
		r.skip(1)
		format := r.card8()
		r.skip(2)
		win := Window(r.card32())
		typ := Atom(r.card32())
		ev := ClientMessage{Window: win, Type: typ, Format: format}
		if format == 32 {
			for i := range ev.Data32 {
				ev.Data32[i] = r.card32()
			}
		}
		return ev
	default:
		return UnknownEvent{Code: code}
	}
}
