package x11

import "encoding/binary"

// Visual classes from the core protocol.
const (
	VisualStaticGray  = 0
	VisualGrayScale   = 1
	VisualStaticColor = 2
	VisualPseudoColor = 3
	VisualTrueColor   = 4
	VisualDirectColor = 5
)

// Setup holds the server state negotiated during the handshake.
type Setup struct {
	ProtocolMajor     uint16
	ProtocolMinor     uint16
	Release           uint32
	RIDBase           uint32
	RIDMask           uint32
	MaxReqLen         uint16
	ImageOrder        binary.ByteOrder
	BitmapBitOrderLSB bool
	MinKeycode        byte
	MaxKeycode        byte
	Vendor            string
	Formats           []Format
	Screens           []Screen
}

// Format describes a supported pixmap format.
type Format struct {
	Depth        byte
	BitsPerPixel byte
	ScanlinePad  byte
}

// Screen describes one root window and its supported visuals.
type Screen struct {
	Root            Window
	DefaultColormap uint32
	WhitePixel      uint32
	BlackPixel      uint32
	WidthPx         uint16
	HeightPx        uint16
	RootVisual      uint32
	RootDepth       byte
	Depths          []Depth
}

// Depth groups the visuals available at one bit depth.
type Depth struct {
	Depth   byte
	Visuals []Visual
}

// Visual describes a pixel encoding.
type Visual struct {
	ID         uint32
	Class      byte
	BitsPerRGB byte
	RedMask    uint32
	GreenMask  uint32
	BlueMask   uint32
}

// TrueColorVisual finds a 24-bit TrueColor visual with the standard
// 0xRRGGBB channel layout on screen s, so pixel values can be built
// directly from 8-bit color components.
func (s *Screen) TrueColorVisual() (Visual, byte, bool) {
	for _, d := range s.Depths {
		if d.Depth != 24 {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == VisualTrueColor &&
				v.RedMask == 0xff0000 && v.GreenMask == 0xff00 && v.BlueMask == 0xff {
				return v, d.Depth, true
			}
		}
	}
	return Visual{}, 0, false
}

// parseSetup decodes the success body of the connection setup reply.
// The fixed 8-byte status header has already been consumed.
func parseSetup(order binary.ByteOrder, major, minor uint16, body []byte) (*Setup, error) {
	r := newReader(order, body)
	s := &Setup{ProtocolMajor: major, ProtocolMinor: minor}

	s.Release = r.card32()
	s.RIDBase = r.card32()
	s.RIDMask = r.card32()
	r.skip(4) // motion buffer size
	vendorLen := int(r.card16())
	s.MaxReqLen = r.card16()
	numScreens := int(r.card8())
	numFormats := int(r.card8())
	if r.card8() == 0 {
		s.ImageOrder = binary.LittleEndian
	} else {
		s.ImageOrder = binary.BigEndian
	}
	s.BitmapBitOrderLSB = r.card8() == 0
	r.skip(2) // bitmap scanline unit, pad
	s.MinKeycode = r.card8()
	s.MaxKeycode = r.card8()
	r.skip(4)
	s.Vendor = r.string8(vendorLen)
	r.pad()

	for i := 0; i < numFormats; i++ {
		f := Format{
			Depth:        r.card8(),
			BitsPerPixel: r.card8(),
			ScanlinePad:  r.card8(),
		}
		r.skip(5)
		s.Formats = append(s.Formats, f)
	}

	for i := 0; i < numScreens; i++ {
		sc := Screen{
			Root:            Window(r.card32()),
			DefaultColormap: r.card32(),
			WhitePixel:      r.card32(),
			BlackPixel:      r.card32(),
		}
		r.skip(4) // current input masks
		sc.WidthPx = r.card16()
		sc.HeightPx = r.card16()
		r.skip(8) // physical size, installed map bounds
		sc.RootVisual = r.card32()
		r.skip(2) // backing stores, save unders
		sc.RootDepth = r.card8()
		numDepths := int(r.card8())
		for j := 0; j < numDepths; j++ {
			d := Depth{Depth: r.card8()}
			r.skip(1)
			numVisuals := int(r.card16())
			r.skip(4)
			for k := 0; k < numVisuals; k++ {
				v := Visual{ID: r.card32()}
				v.Class = r.card8()
				v.BitsPerRGB = r.card8()
				r.skip(2) // colormap entries
				v.RedMask = r.card32()
				v.GreenMask = r.card32()
				v.BlueMask = r.card32()
				r.skip(4)
				d.Visuals = append(d.Visuals, v)
			}
			sc.Depths = append(sc.Depths, d)
		}
		s.Screens = append(s.Screens, sc)
	}

	if r.bad() {
		return nil, protocolErr("truncated connection setup reply (%d bytes)", len(body))
	}
	if len(s.Screens) == 0 {
		return nil, protocolErr("setup reply advertises no screens")
	}
	return s, nil
}
