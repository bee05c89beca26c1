package x11

import (
	"encoding/binary"
	"testing"
)

// eventPacket lays out one 32-byte event with the common core header.
type eventPacket struct {
	order binary.ByteOrder
	buf   []byte
}

func newEventPacket(order binary.ByteOrder, code, detail byte) *eventPacket {
	p := &eventPacket{order: order, buf: make([]byte, 0, 32)}
	p.buf = append(p.buf, code, detail)
	return p
}

func (p *eventPacket) u16(v uint16) { p.buf = appendCard16(p.order, p.buf, v) }
func (p *eventPacket) u32(v uint32) { p.buf = appendCard32(p.order, p.buf, v) }

func (p *eventPacket) finish() []byte {
	for len(p.buf) < 32 {
		p.buf = append(p.buf, 0)
	}
	return p.buf
}

func pointerPacket(order binary.ByteOrder, code, detail byte, win Window, x, y int16, state uint16) []byte {
	p := newEventPacket(order, code, detail)
	p.u16(7)           // sequence
	p.u32(123456)      // time
	p.u32(0x52d)       // root
	p.u32(uint32(win)) // event window
	p.u32(0)           // child
	p.u16(500)         // root-x
	p.u16(400)         // root-y
	p.u16(uint16(x))
	p.u16(uint16(y))
	p.u16(state)
	return p.finish()
}

func TestDecodeEvent_ButtonPress(t *testing.T) {
	raw := pointerPacket(binary.LittleEndian, codeButtonPress, 1, 0x1234, 55, -3, ModShift)
	ev, ok := decodeEvent(binary.LittleEndian, raw).(ButtonPress)
	if !ok {
		t.Fatalf("decoded %T, want ButtonPress", decodeEvent(binary.LittleEndian, raw))
	}
	if ev.Window != 0x1234 || ev.X != 55 || ev.Y != -3 || ev.Button != 1 || ev.State != ModShift {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecodeEvent_ButtonRelease(t *testing.T) {
	raw := pointerPacket(binary.BigEndian, codeButtonRelease, 3, 9, 10, 20, 0)
	ev, ok := decodeEvent(binary.BigEndian, raw).(ButtonRelease)
	if !ok || ev.Button != 3 || ev.X != 10 || ev.Y != 20 {
		t.Fatalf("unexpected event: %+v ok=%v", ev, ok)
	}
}

func TestDecodeEvent_MotionNotify(t *testing.T) {
	raw := pointerPacket(binary.LittleEndian, codeMotionNotify, 0, 9, 100, 200, 0)
	ev, ok := decodeEvent(binary.LittleEndian, raw).(MotionNotify)
	if !ok || ev.X != 100 || ev.Y != 200 {
		t.Fatalf("unexpected event: %+v ok=%v", ev, ok)
	}
}

func TestDecodeEvent_KeyPress(t *testing.T) {
	raw := pointerPacket(binary.LittleEndian, codeKeyPress, 36, 9, 0, 0, ModShift|ModControl)
	ev, ok := decodeEvent(binary.LittleEndian, raw).(KeyPress)
	if !ok {
		t.Fatalf("decoded wrong type")
	}
	if ev.Keycode != 36 || ev.State != ModShift|ModControl {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecodeEvent_Expose(t *testing.T) {
	p := newEventPacket(binary.LittleEndian, codeExpose, 0)
	p.u16(7)      // sequence
	p.u32(0x1234) // window
	p.u16(1)
	p.u16(2)
	p.u16(300)
	p.u16(150)
	p.u16(0) // count
	ev, ok := decodeEvent(binary.LittleEndian, p.finish()).(Expose)
	if !ok {
		t.Fatalf("decoded wrong type")
	}
	if ev.Window != 0x1234 || ev.X != 1 || ev.Y != 2 || ev.W != 300 || ev.H != 150 || ev.Count != 0 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecodeEvent_ClientMessage(t *testing.T) {
	p := newEventPacket(binary.LittleEndian, codeClientMessage, 32)
	p.u16(7)      // sequence
	p.u32(0x1234) // window
	p.u32(99)     // type atom
	p.u32(555)    // data[0]
	p.u32(42)
	ev, ok := decodeEvent(binary.LittleEndian, p.finish()).(ClientMessage)
	if !ok {
		t.Fatalf("decoded wrong type")
	}
	if ev.Format != 32 || ev.Type != 99 || ev.Data32[0] != 555 || ev.Data32[1] != 42 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecodeEvent_SendEventBitIgnored(t *testing.T) {
	raw := pointerPacket(binary.LittleEndian, codeButtonPress|0x80, 1, 9, 1, 2, 0)
	if _, ok := decodeEvent(binary.LittleEndian, raw).(ButtonPress); !ok {
		t.Fatalf("SendEvent-generated press not decoded as ButtonPress")
	}
}

func TestDecodeEvent_Unknown(t *testing.T) {
	raw := newEventPacket(binary.LittleEndian, 85, 0).finish()
	ev, ok := decodeEvent(binary.LittleEndian, raw).(UnknownEvent)
	if !ok || ev.Code != 85 {
		t.Fatalf("unexpected event: %+v ok=%v", ev, ok)
	}
}
