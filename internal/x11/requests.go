package x11

// Core request opcodes used by the dialog.
const (
	opCreateWindow       = 1
	opDestroyWindow      = 4
	opMapWindow          = 8
	opConfigureWindow    = 12
	opInternAtom         = 16
	opChangeProperty     = 18
	opOpenFont           = 45
	opCloseFont          = 46
	opQueryFont          = 47
	opCreateGC           = 55
	opChangeGC           = 56
	opPolyLine           = 65
	opPolyRectangle      = 67
	opPolyFillRectangle  = 70
	opImageText8         = 76
	opCreateColormap     = 78
	opGetKeyboardMapping = 101
)

// Predefined atoms from the core protocol.
const (
	AtomAtom          Atom = 4
	AtomString        Atom = 31
	AtomWMName        Atom = 39
	AtomWMNormalHints Atom = 40
	AtomWMSizeHints   Atom = 41
	AtomWMClass       Atom = 67
)

// PropModeReplace for ChangeProperty.
const PropModeReplace = 0

// WindowAttributes carries the optional CreateWindow values. Only the
// fields the dialog needs are modeled; the value list is emitted in
// ascending bit order as the protocol requires.
type WindowAttributes struct {
	BackgroundPixel uint32
	HasBackground   bool
	BorderPixel     uint32
	HasBorder       bool
	EventMask       uint32
	HasEventMask    bool
	Colormap        Colormap
	HasColormap     bool
}

func (a *WindowAttributes) encode(r *request) {
	const (
		cwBackPixel   = 1 << 1
		cwBorderPixel = 1 << 3
		cwEventMask   = 1 << 11
		cwColormap    = 1 << 13
	)
	var mask uint32
	var values []uint32
	if a.HasBackground {
		mask |= cwBackPixel
		values = append(values, a.BackgroundPixel)
	}
	if a.HasBorder {
		mask |= cwBorderPixel
		values = append(values, a.BorderPixel)
	}
	if a.HasEventMask {
		mask |= cwEventMask
		values = append(values, a.EventMask)
	}
	if a.HasColormap {
		mask |= cwColormap
		values = append(values, uint32(a.Colormap))
	}
	r.card32(mask)
	for _, v := range values {
		r.card32(v)
	}
}

// CreateWindow creates an InputOutput window of the given depth and
// visual under parent.
func (c *Conn) CreateWindow(win, parent Window, x, y int16, w, h uint16, depth byte, visual uint32, attrs *WindowAttributes) error {
	const classInputOutput = 1
	r := newRequest(c.order, opCreateWindow, depth)
	r.card32(uint32(win))
	r.card32(uint32(parent))
	r.int16(x)
	r.int16(y)
	r.card16(w)
	r.card16(h)
	r.card16(0) // border width
	r.card16(classInputOutput)
	r.card32(visual)
	attrs.encode(r)
	_, err := c.sendRequest(r)
	return err
}

// DestroyWindow destroys win and every resource attached to it.
func (c *Conn) DestroyWindow(win Window) error {
	r := newRequest(c.order, opDestroyWindow, 0)
	r.card32(uint32(win))
	_, err := c.sendRequest(r)
	return err
}

// MapWindow makes win visible.
func (c *Conn) MapWindow(win Window) error {
	r := newRequest(c.order, opMapWindow, 0)
	r.card32(uint32(win))
	_, err := c.sendRequest(r)
	return err
}

// RaiseWindow moves win to the top of the stacking order.
func (c *Conn) RaiseWindow(win Window) error {
	const (
		cwStackMode = 1 << 6
		stackAbove  = 0
	)
	r := newRequest(c.order, opConfigureWindow, 0)
	r.card32(uint32(win))
	r.card16(cwStackMode)
	r.skip(2)
	r.card32(stackAbove)
	_, err := c.sendRequest(r)
	return err
}

// ChangeProperty replaces property on win with data interpreted per
// format (8, 16 or 32 bits per element).
func (c *Conn) ChangeProperty(win Window, property, typ Atom, format byte, data []byte) error {
	if format != 8 && format != 16 && format != 32 {
		return protocolErr("invalid property format %d", format)
	}
	r := newRequest(c.order, opChangeProperty, PropModeReplace)
	r.card32(uint32(win))
	r.card32(uint32(property))
	r.card32(uint32(typ))
	r.card8(format)
	r.skip(3)
	r.card32(uint32(len(data) / int(format/8)))
	r.bytes(data)
	_, err := c.sendRequest(r)
	return err
}

// ChangePropertyString sets a string-valued property.
func (c *Conn) ChangePropertyString(win Window, property, typ Atom, s string) error {
	return c.ChangeProperty(win, property, typ, 8, []byte(s))
}

// ChangePropertyAtoms sets an ATOM-array property.
func (c *Conn) ChangePropertyAtoms(win Window, property Atom, atoms []Atom) error {
	data := make([]byte, 0, len(atoms)*4)
	for _, a := range atoms {
		data = appendCard32(c.order, data, uint32(a))
	}
	return c.ChangeProperty(win, property, AtomAtom, 32, data)
}

// ChangePropertyCards sets a CARDINAL-style 32-bit property with an
// explicit type atom.
func (c *Conn) ChangePropertyCards(win Window, property, typ Atom, values []uint32) error {
	data := make([]byte, 0, len(values)*4)
	for _, v := range values {
		data = appendCard32(c.order, data, v)
	}
	return c.ChangeProperty(win, property, typ, 32, data)
}

// InternAtom resolves name to an atom, creating it if needed. This is a
// round trip.
func (c *Conn) InternAtom(name string) (Atom, error) {
	r := newRequest(c.order, opInternAtom, 0)
	r.card16(uint16(len(name)))
	r.skip(2)
	r.bytes([]byte(name))
	seq, err := c.sendRequest(r)
	if err != nil {
		return 0, err
	}
	reply, err := c.roundTrip(seq)
	if err != nil {
		return 0, err
	}
	rd := newReader(c.order, reply)
	rd.skip(8)
	atom := Atom(rd.card32())
	if rd.bad() {
		return 0, protocolErr("short InternAtom reply")
	}
	return atom, nil
}

// GCAttributes carries the optional CreateGC/ChangeGC values.
type GCAttributes struct {
	Foreground    uint32
	HasForeground bool
	Background    uint32
	HasBackground bool
	Font          Font
	HasFont       bool
	// GraphicsExposures defaults to true on the server; the dialog
	// always turns it off.
	NoGraphicsExposures bool
}

func (a *GCAttributes) encode(r *request) {
	const (
		gcForeground   = 1 << 2
		gcBackground   = 1 << 3
		gcFont         = 1 << 14
		gcGraphicsExps = 1 << 16
	)
	var mask uint32
	var values []uint32
	if a.HasForeground {
		mask |= gcForeground
		values = append(values, a.Foreground)
	}
	if a.HasBackground {
		mask |= gcBackground
		values = append(values, a.Background)
	}
	if a.HasFont {
		mask |= gcFont
		values = append(values, uint32(a.Font))
	}
	if a.NoGraphicsExposures {
		mask |= gcGraphicsExps
		values = append(values, 0)
	}
	r.card32(mask)
	for _, v := range values {
		r.card32(v)
	}
}

// CreateGC creates a graphics context for drawable.
func (c *Conn) CreateGC(gc GContext, drawable Window, attrs *GCAttributes) error {
	r := newRequest(c.order, opCreateGC, 0)
	r.card32(uint32(gc))
	r.card32(uint32(drawable))
	attrs.encode(r)
	_, err := c.sendRequest(r)
	return err
}

// ChangeGC updates fields of an existing graphics context.
func (c *Conn) ChangeGC(gc GContext, attrs *GCAttributes) error {
	r := newRequest(c.order, opChangeGC, 0)
	r.card32(uint32(gc))
	attrs.encode(r)
	_, err := c.sendRequest(r)
	return err
}

// Rectangle is the wire representation used by rectangle requests.
type Rectangle struct {
	X, Y int16
	W, H uint16
}

// Point is the wire representation used by PolyLine.
type Point struct {
	X, Y int16
}

// PolyFillRectangle fills rects with the GC foreground.
func (c *Conn) PolyFillRectangle(drawable Window, gc GContext, rects []Rectangle) error {
	return c.polyRects(opPolyFillRectangle, drawable, gc, rects)
}

// PolyRectangle outlines rects with the GC foreground.
func (c *Conn) PolyRectangle(drawable Window, gc GContext, rects []Rectangle) error {
	return c.polyRects(opPolyRectangle, drawable, gc, rects)
}

func (c *Conn) polyRects(opcode byte, drawable Window, gc GContext, rects []Rectangle) error {
	if len(rects) == 0 {
		return nil
	}
	r := newRequest(c.order, opcode, 0)
	r.card32(uint32(drawable))
	r.card32(uint32(gc))
	for _, rc := range rects {
		r.int16(rc.X)
		r.int16(rc.Y)
		r.card16(rc.W)
		r.card16(rc.H)
	}
	_, err := c.sendRequest(r)
	return err
}

// PolyLine draws connected line segments through points in origin
// coordinates.
func (c *Conn) PolyLine(drawable Window, gc GContext, points []Point) error {
	const coordModeOrigin = 0
	if len(points) == 0 {
		return nil
	}
	r := newRequest(c.order, opPolyLine, coordModeOrigin)
	r.card32(uint32(drawable))
	r.card32(uint32(gc))
	for _, p := range points {
		r.int16(p.X)
		r.int16(p.Y)
	}
	_, err := c.sendRequest(r)
	return err
}

// ImageText8 paints text at the baseline position (x, y): the server
// first fills the text's bounding box with the GC background, then
// draws the glyphs in the GC foreground using the GC font. A single
// request carries at most 255 bytes; callers chunk longer runs.
func (c *Conn) ImageText8(drawable Window, gc GContext, x, y int16, text []byte) error {
	if len(text) > 255 {
		return protocolErr("ImageText8 run of %d bytes exceeds protocol limit", len(text))
	}
	r := newRequest(c.order, opImageText8, byte(len(text)))
	r.card32(uint32(drawable))
	r.card32(uint32(gc))
	r.int16(x)
	r.int16(y)
	r.bytes(text)
	_, err := c.sendRequest(r)
	return err
}

// OpenFont opens the server font with the given name under fid.
func (c *Conn) OpenFont(fid Font, name string) error {
	r := newRequest(c.order, opOpenFont, 0)
	r.card32(uint32(fid))
	r.card16(uint16(len(name)))
	r.skip(2)
	r.bytes([]byte(name))
	_, err := c.sendRequest(r)
	return err
}

// CloseFont releases fid.
func (c *Conn) CloseFont(fid Font) error {
	r := newRequest(c.order, opCloseFont, 0)
	r.card32(uint32(fid))
	_, err := c.sendRequest(r)
	return err
}

// CharInfo is the metrics entry for one glyph.
type CharInfo struct {
	LeftBearing  int16
	RightBearing int16
	Width        int16
	Ascent       int16
	Descent      int16
}

// FontInfo is the decoded QueryFont reply: global extents plus
// per-character advance widths for the single-byte range.
type FontInfo struct {
	MinChar     uint16
	MaxChar     uint16
	DefaultChar uint16
	Ascent      int16
	Descent     int16
	MinBounds   CharInfo
	MaxBounds   CharInfo
	// Chars is indexed by char-MinChar; empty when the font reports
	// uniform metrics, in which case MinBounds applies to every glyph.
	Chars []CharInfo
}

func readCharInfo(r *reader) CharInfo {
	ci := CharInfo{
		LeftBearing:  r.int16(),
		RightBearing: r.int16(),
		Width:        r.int16(),
		Ascent:       r.int16(),
		Descent:      r.int16(),
	}
	r.skip(2) // attributes
	return ci
}

// QueryFont fetches the metrics of an open font. This is a round trip
// with a variable-length reply.
func (c *Conn) QueryFont(fid Font) (*FontInfo, error) {
	r := newRequest(c.order, opQueryFont, 0)
	r.card32(uint32(fid))
	seq, err := c.sendRequest(r)
	if err != nil {
		return nil, err
	}
	reply, err := c.roundTrip(seq)
	if err != nil {
		return nil, err
	}

	rd := newReader(c.order, reply)
	rd.skip(8)
	fi := &FontInfo{}
	fi.MinBounds = readCharInfo(rd)
	rd.skip(4)
	fi.MaxBounds = readCharInfo(rd)
	rd.skip(4)
	fi.MinChar = rd.card16()
	fi.MaxChar = rd.card16()
	fi.DefaultChar = rd.card16()
	numProps := int(rd.card16())
	rd.skip(4) // draw direction, byte1 range, all-chars-exist
	fi.Ascent = rd.int16()
	fi.Descent = rd.int16()
	numChars := int(rd.card32())
	rd.skip(numProps * 8)
	for i := 0; i < numChars; i++ {
		fi.Chars = append(fi.Chars, readCharInfo(rd))
	}
	if rd.bad() {
		return nil, protocolErr("short QueryFont reply")
	}
	if fi.MaxChar < fi.MinChar {
		return nil, protocolErr("QueryFont reply has inverted char range")
	}
	// Per-char metrics, when present, must cover the full declared
	// range; uniform-metrics fonts carry none.
	if n := len(fi.Chars); n != 0 && n != int(fi.MaxChar)-int(fi.MinChar)+1 {
		return nil, protocolErr("QueryFont reply has %d metrics for char range %d..%d",
			n, fi.MinChar, fi.MaxChar)
	}
	return fi, nil
}

// Keymap maps server keycodes to unmodified keysyms.
type Keymap struct {
	First  byte
	PerKey int
	Syms   []uint32
}

// Lookup returns the keysym in column 0 for keycode, or 0 when the
// keycode is outside the mapped range.
func (k *Keymap) Lookup(keycode byte) uint32 {
	i := int(keycode) - int(k.First)
	if i < 0 || k.PerKey == 0 || (i+1)*k.PerKey > len(k.Syms) {
		return 0
	}
	return k.Syms[i*k.PerKey]
}

// KeyboardMapping fetches the keycode-to-keysym table for the server's
// full keycode range. This is a round trip.
func (c *Conn) KeyboardMapping() (*Keymap, error) {
	first := c.Setup.MinKeycode
	count := int(c.Setup.MaxKeycode) - int(first) + 1
	r := newRequest(c.order, opGetKeyboardMapping, 0)
	r.card8(first)
	r.card8(byte(count))
	r.skip(2)
	seq, err := c.sendRequest(r)
	if err != nil {
		return nil, err
	}
	reply, err := c.roundTrip(seq)
	if err != nil {
		return nil, err
	}

	perKey := int(reply[1])
	rd := newReader(c.order, reply)
	rd.skip(32)
	km := &Keymap{First: first, PerKey: perKey}
	for i := 0; i < count*perKey; i++ {
		km.Syms = append(km.Syms, rd.card32())
	}
	if rd.bad() {
		return nil, protocolErr("short GetKeyboardMapping reply")
	}
	return km, nil
}

// CreateColormap allocates a colormap for visual on the screen rooted
// at root, so the window's visual never mismatches its colormap.
func (c *Conn) CreateColormap(mid Colormap, root Window, visual uint32) error {
	const allocNone = 0
	r := newRequest(c.order, opCreateColormap, allocNone)
	r.card32(uint32(mid))
	r.card32(uint32(root))
	r.card32(visual)
	_, err := c.sendRequest(r)
	return err
}
