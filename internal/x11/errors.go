package x11

import "fmt"

// ConnKind classifies connection-level failures.
type ConnKind int

const (
	// KindRefused means the server rejected the connection setup.
	KindRefused ConnKind = iota
	// KindAuthRejected means the server asked for further authentication.
	KindAuthRejected
	// KindProtocolMismatch means the server speaks an incompatible
	// protocol revision.
	KindProtocolMismatch
	// KindIO covers transport read/write failures.
	KindIO
	// KindClosed means the stream ended while more data was expected.
	KindClosed
)

func (k ConnKind) String() string {
	switch k {
	case KindRefused:
		return "refused"
	case KindAuthRejected:
		return "auth rejected"
	case KindProtocolMismatch:
		return "protocol mismatch"
	case KindIO:
		return "i/o failure"
	case KindClosed:
		return "connection closed"
	}
	return "unknown"
}

// ConnError is the error type for everything that can go wrong between
// the client and the display server. It is unrecoverable for the
// current dialog invocation; there is no retry path.
type ConnError struct {
	Kind   ConnKind
	Reason string
	Err    error
}

func (e *ConnError) Error() string {
	msg := "x11: " + e.Kind.String()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnError) Unwrap() error { return e.Err }

func connErr(kind ConnKind, reason string, err error) *ConnError {
	return &ConnError{Kind: kind, Reason: reason, Err: err}
}

// ProtocolError reports malformed data from the server: truncated
// packets, impossible lengths, fields outside their valid range.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "x11: protocol violation: " + e.Reason
}

func protocolErr(format string, args ...any) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

// RequestError is an X error report for a request we issued, decoded
// from an error packet on the event stream.
type RequestError struct {
	Code     byte
	Sequence uint16
	Bad      uint32
	Major    byte
	Minor    uint16
}

var errorCodeNames = map[byte]string{
	1:  "Request",
	2:  "Value",
	3:  "Window",
	4:  "Pixmap",
	5:  "Atom",
	6:  "Cursor",
	7:  "Font",
	8:  "Match",
	9:  "Drawable",
	10: "Access",
	11: "Alloc",
	12: "Colormap",
	13: "GContext",
	14: "IDChoice",
	15: "Name",
	16: "Length",
	17: "Implementation",
}

func (e *RequestError) Error() string {
	name := errorCodeNames[e.Code]
	if name == "" {
		name = fmt.Sprintf("code %d", e.Code)
	}
	return fmt.Sprintf("x11: Bad%s error for request %d (opcode %d, value %#x)",
		name, e.Sequence, e.Major, e.Bad)
}
