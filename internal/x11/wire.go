package x11

import "encoding/binary"

// All multi-byte protocol fields pass through the request/reader types
// below, parameterized by the byte order declared during the handshake.
// No call site encodes or decodes integers on its own.

// request accumulates the body of one X request. The 4-byte header
// (opcode, detail, length) is reserved up front and the length field is
// filled in from the actual buffer size when the request is finished.
type request struct {
	order binary.ByteOrder
	buf   []byte
}

func newRequest(order binary.ByteOrder, opcode, detail byte) *request {
	r := &request{order: order, buf: make([]byte, 4, 32)}
	r.buf[0] = opcode
	r.buf[1] = detail
	return r
}

func (r *request) card8(v byte) {
	r.buf = append(r.buf, v)
}

func (r *request) card16(v uint16) {
	var b [2]byte
	r.order.PutUint16(b[:], v)
	r.buf = append(r.buf, b[:]...)
}

func (r *request) card32(v uint32) {
	var b [4]byte
	r.order.PutUint32(b[:], v)
	r.buf = append(r.buf, b[:]...)
}

func (r *request) int16(v int16) {
	r.card16(uint16(v))
}

func (r *request) bytes(p []byte) {
	r.buf = append(r.buf, p...)
}

func (r *request) skip(n int) {
	for i := 0; i < n; i++ {
		r.buf = append(r.buf, 0)
	}
}

// pad aligns the body to the protocol's 4-byte boundary.
func (r *request) pad() {
	r.skip(pad4(len(r.buf)))
}

// finish pads the body and writes the computed length field. The length
// is always derived from the buffer, never counted by the builder.
func (r *request) finish() []byte {
	r.pad()
	r.order.PutUint16(r.buf[2:4], uint16(len(r.buf)/4))
	return r.buf
}

func pad4(n int) int {
	return (4 - n%4) % 4
}

func appendCard16(order binary.ByteOrder, b []byte, v uint16) []byte {
	var tmp [2]byte
	order.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendCard32(order binary.ByteOrder, b []byte, v uint32) []byte {
	var tmp [4]byte
	order.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// reader decodes a server-supplied buffer. Overruns are sticky: once a
// read goes past the end, every later read returns zero and bad()
// reports true, so callers validate once at the end.
type reader struct {
	order binary.ByteOrder
	buf   []byte
	pos   int
	short bool
}

func newReader(order binary.ByteOrder, buf []byte) *reader {
	return &reader{order: order, buf: buf}
}

func (r *reader) bad() bool { return r.short }

func (r *reader) take(n int) []byte {
	if r.short || r.pos+n > len(r.buf) {
		r.short = true
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) card8() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) card16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

func (r *reader) card32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

func (r *reader) int16() int16 {
	return int16(r.card16())
}

func (r *reader) string8(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	return string(b)
}

func (r *reader) skip(n int) {
	r.take(n)
}

func (r *reader) pad() {
	r.skip(pad4(r.pos))
}
