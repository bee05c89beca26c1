package x11

import (
	"bufio"
	"encoding/binary"
	"io"
	"log/slog"
	"strconv"
)

const (
	protocolMajor = 11
	protocolMinor = 0
)

// Resource ID types. They are all server-side handles drawn from the
// same ID space; distinct types keep request builders honest.
type (
	Window   uint32
	GContext uint32
	Font     uint32
	Colormap uint32
	Atom     uint32
)

// Conn owns the byte stream to the display server, the byte order
// declared at handshake time, and the resource-ID allocator. It is not
// safe for concurrent use; the dialog runs strictly single-threaded.
type Conn struct {
	stream io.ReadWriteCloser
	br     *bufio.Reader
	order  binary.ByteOrder

	// Setup is the parsed handshake reply.
	Setup *Setup

	seq    uint16
	nextID uint32
	screen int

	// Events read while waiting for a reply, delivered later in order.
	queued []Event
}

// Connect dials the display named by spec (or $DISPLAY) and performs
// the connection setup handshake, presenting an Xauthority cookie when
// one matches the target display.
func Connect(spec string) (*Conn, error) {
	d, err := ParseDisplay(spec)
	if err != nil {
		return nil, connErr(KindRefused, err.Error(), nil)
	}
	stream, err := d.dial()
	if err != nil {
		return nil, err
	}
	authName, authData := authority(d)
	c, err := newConn(stream, authName, authData)
	if err != nil {
		stream.Close()
		return nil, err
	}
	if d.Screen >= len(c.Setup.Screens) {
		c.Close()
		return nil, connErr(KindRefused, "display has no screen "+strconv.Itoa(d.Screen), nil)
	}
	c.screen = d.Screen
	slog.Debug("x11 connected",
		"vendor", c.Setup.Vendor,
		"release", c.Setup.Release,
		"screens", len(c.Setup.Screens))
	return c, nil
}

// newConn performs the handshake over an already-open stream. Split out
// from Connect so the handshake is testable without a live server.
func newConn(stream io.ReadWriteCloser, authName string, authData []byte) (*Conn, error) {
	c := &Conn{
		stream: stream,
		br:     bufio.NewReader(stream),
		// The client declares its byte order; everything after this
		// request uses it. Little-endian matches every machine this
		// tool realistically runs on.
		order: binary.LittleEndian,
	}
	if err := c.handshake(authName, authData); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Conn) handshake(authName string, authData []byte) error {
	req := make([]byte, 0, 12+len(authName)+len(authData)+8)
	req = append(req, 'l', 0)
	req = appendCard16(c.order, req, protocolMajor)
	req = appendCard16(c.order, req, protocolMinor)
	req = appendCard16(c.order, req, uint16(len(authName)))
	req = appendCard16(c.order, req, uint16(len(authData)))
	req = append(req, 0, 0)
	req = append(req, authName...)
	req = append(req, make([]byte, pad4(len(authName)))...)
	req = append(req, authData...)
	req = append(req, make([]byte, pad4(len(authData)))...)
	if err := c.send(req); err != nil {
		return err
	}

	head, err := c.receiveExact(8)
	if err != nil {
		return err
	}
	status := head[0]
	reasonLen := int(head[1])
	major := c.order.Uint16(head[2:4])
	minor := c.order.Uint16(head[4:6])
	bodyLen := int(c.order.Uint16(head[6:8])) * 4
	body, err := c.receiveExact(bodyLen)
	if err != nil {
		return err
	}

	switch status {
	case 0: // Failed
		reason := trimReason(body, reasonLen)
		if major != protocolMajor {
			return connErr(KindProtocolMismatch,
				"server speaks protocol "+strconv.Itoa(int(major))+", want 11: "+reason, nil)
		}
		return connErr(KindRefused, reason, nil)
	case 2: // Authenticate
		return connErr(KindAuthRejected, trimReason(body, len(body)), nil)
	case 1: // Success
		setup, err := parseSetup(c.order, major, minor, body)
		if err != nil {
			return err
		}
		c.Setup = setup
		return nil
	default:
		return protocolErr("setup reply has unknown status %d", status)
	}
}

func trimReason(body []byte, n int) string {
	if n > len(body) {
		n = len(body)
	}
	s := string(body[:n])
	for len(s) > 0 && (s[len(s)-1] == 0 || s[len(s)-1] == '\n') {
		s = s[:len(s)-1]
	}
	return s
}

// NextID allocates a fresh resource ID from the server-assigned range.
// IDs are never reused within a connection, even after the resource is
// destroyed; the protocol forbids recycling them mid-connection.
func (c *Conn) NextID() (uint32, error) {
	id := c.nextID
	c.nextID++
	if id&^c.Setup.RIDMask != 0 {
		return 0, protocolErr("resource ID range exhausted")
	}
	return c.Setup.RIDBase | id, nil
}

// Screen returns the screen selected by the display spec.
func (c *Conn) Screen() *Screen {
	return &c.Setup.Screens[c.screen]
}

func (c *Conn) send(p []byte) error {
	if _, err := c.stream.Write(p); err != nil {
		return connErr(KindIO, "write", err)
	}
	return nil
}

// sendRequest transmits a finished request and returns its 16-bit
// sequence number for reply matching.
func (c *Conn) sendRequest(req *request) (uint16, error) {
	c.seq++
	if err := c.send(req.finish()); err != nil {
		return 0, err
	}
	return c.seq, nil
}

func (c *Conn) receiveExact(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(c.br, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, connErr(KindClosed, "", err)
		}
		return nil, connErr(KindIO, "read", err)
	}
	return b, nil
}

// readPacket reads one 32-byte unit from the stream, extending it with
// the declared extra length when it is a reply.
func (c *Conn) readPacket() ([]byte, error) {
	p, err := c.receiveExact(32)
	if err != nil {
		return nil, err
	}
	if p[0] == 1 { // reply
		extra := int(c.order.Uint32(p[4:8])) * 4
		if extra > 0 {
			rest, err := c.receiveExact(extra)
			if err != nil {
				return nil, err
			}
			p = append(p, rest...)
		}
	}
	return p, nil
}

// roundTrip waits for the reply to the request with sequence number
// seq. Events that arrive first are queued for NextEvent; error packets
// for our request surface as a RequestError.
func (c *Conn) roundTrip(seq uint16) ([]byte, error) {
	for {
		p, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		switch p[0] {
		case 0: // error
			re := decodeError(c.order, p)
			if re.Sequence == seq {
				return nil, re
			}
			slog.Debug("x11 async error", "error", re)
		case 1: // reply
			if c.order.Uint16(p[2:4]) == seq {
				return p, nil
			}
			// A reply we no longer care about; drop it.
		default:
			c.queued = append(c.queued, decodeEvent(c.order, p))
		}
	}
}

// NextEvent blocks until the next decoded event. Unknown event codes
// decode to UnknownEvent and are delivered rather than dropped, so the
// caller decides; they are never fatal.
func (c *Conn) NextEvent() (Event, error) {
	if len(c.queued) > 0 {
		ev := c.queued[0]
		c.queued = c.queued[1:]
		return ev, nil
	}
	for {
		p, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		switch p[0] {
		case 0:
			slog.Debug("x11 async error", "error", decodeError(c.order, p))
		case 1:
			// Unsolicited reply; nothing is waiting for it.
		default:
			return decodeEvent(c.order, p), nil
		}
	}
}

// Close tears down the transport. The server releases every resource
// the connection created.
func (c *Conn) Close() error {
	return c.stream.Close()
}

func decodeError(order binary.ByteOrder, p []byte) *RequestError {
	r := newReader(order, p)
	r.skip(1)
	e := &RequestError{Code: r.card8()}
	e.Sequence = r.card16()
	e.Bad = r.card32()
	e.Minor = r.card16()
	e.Major = r.card8()
	return e
}

