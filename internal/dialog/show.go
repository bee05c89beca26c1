package dialog

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/alerta/internal/font"
	"github.com/1broseidon/alerta/internal/theme"
	"github.com/1broseidon/alerta/internal/x11"
)

// wmClass is the WM_CLASS instance and class name of the dialog window.
const wmClass = "alerta\x00alerta\x00"

// ErrNoVisual reports that the server offers no 24-bit TrueColor
// visual the renderer can target.
var ErrNoVisual = errors.New("dialog: no compatible truecolor visual")

// wmAtoms are the interned atoms the window setup needs.
type wmAtoms struct {
	wmProtocols           x11.Atom
	wmDeleteWindow        x11.Atom
	netWMName             x11.Atom
	utf8String            x11.Atom
	netWMWindowType       x11.Atom
	netWMWindowTypeDialog x11.Atom
}

func internAtoms(conn *x11.Conn) (*wmAtoms, error) {
	a := &wmAtoms{}
	for _, it := range []struct {
		name string
		dst  *x11.Atom
	}{
		{"WM_PROTOCOLS", &a.wmProtocols},
		{"WM_DELETE_WINDOW", &a.wmDeleteWindow},
		{"_NET_WM_NAME", &a.netWMName},
		{"UTF8_STRING", &a.utf8String},
		{"_NET_WM_WINDOW_TYPE", &a.netWMWindowType},
		{"_NET_WM_WINDOW_TYPE_DIALOG", &a.netWMWindowTypeDialog},
	} {
		atom, err := conn.InternAtom(it.name)
		if err != nil {
			return nil, err
		}
		*it.dst = atom
	}
	return a, nil
}

// sizeHintsFixed encodes a WM_NORMAL_HINTS property pinning the window
// to a single size, so the window manager disallows resizing.
func sizeHintsFixed(w, h int) []uint32 {
	const (
		pMinSize = 1 << 4
		pMaxSize = 1 << 5
	)
	hints := make([]uint32, 18)
	hints[0] = pMinSize | pMaxSize
	hints[5] = uint32(w) // min width
	hints[6] = uint32(h) // min height
	hints[7] = uint32(w) // max width
	hints[8] = uint32(h) // max height
	return hints
}

// Show displays the dialog described by req and blocks until the user
// answers it or the window is closed. Any transport or server failure
// aborts the invocation; there is no retry.
func Show(req *Request) (Result, error) {
	conn, err := x11.Connect("")
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()
	return show(conn, req)
}

func show(conn *x11.Conn, req *Request) (Result, error) {
	fnt, err := font.Load(conn)
	if err != nil {
		return Result{}, err
	}
	pal := theme.Get(req.Theme)

	layout, err := Compute(req, Text{
		Width:  fnt.TextWidth,
		Height: fnt.Height(),
		Ascent: fnt.Ascent,
	})
	if err != nil {
		return Result{}, err
	}

	atoms, err := internAtoms(conn)
	if err != nil {
		return Result{}, err
	}
	keymap, err := conn.KeyboardMapping()
	if err != nil {
		return Result{}, err
	}

	screen := conn.Screen()
	visual, depth, ok := screen.TrueColorVisual()
	if !ok {
		return Result{}, ErrNoVisual
	}

	id, err := conn.NextID()
	if err != nil {
		return Result{}, err
	}
	colormap := x11.Colormap(id)
	if err := conn.CreateColormap(colormap, screen.Root, visual.ID); err != nil {
		return Result{}, err
	}

	id, err = conn.NextID()
	if err != nil {
		return Result{}, err
	}
	win := x11.Window(id)
	err = conn.CreateWindow(win, screen.Root, 0, 0,
		uint16(layout.Width), uint16(layout.Height), depth, visual.ID,
		&x11.WindowAttributes{
			BackgroundPixel: pal.WindowBG.Pixel(),
			HasBackground:   true,
			BorderPixel:     0,
			HasBorder:       true,
			EventMask: x11.EventExposure | x11.EventKeyPress |
				x11.EventButtonPress | x11.EventButtonRelease |
				x11.EventPointerMotion | x11.EventStructureNotify,
			HasEventMask: true,
			Colormap:     colormap,
			HasColormap:  true,
		})
	if err != nil {
		return Result{}, err
	}
	defer conn.DestroyWindow(win)

	title := req.Title
	if err := conn.ChangePropertyString(win, x11.AtomWMName, x11.AtomString, title+"\x00"); err != nil {
		return Result{}, err
	}
	if err := conn.ChangePropertyString(win, atoms.netWMName, atoms.utf8String, title); err != nil {
		return Result{}, err
	}
	if err := conn.ChangePropertyString(win, x11.AtomWMClass, x11.AtomString, wmClass); err != nil {
		return Result{}, err
	}
	// Opt into a ClientMessage on close instead of a forced kill.
	if err := conn.ChangePropertyAtoms(win, atoms.wmProtocols, []x11.Atom{atoms.wmDeleteWindow}); err != nil {
		return Result{}, err
	}
	if err := conn.ChangePropertyAtoms(win, atoms.netWMWindowType, []x11.Atom{atoms.netWMWindowTypeDialog}); err != nil {
		return Result{}, err
	}
	if err := conn.ChangePropertyCards(win, x11.AtomWMNormalHints, x11.AtomWMSizeHints,
		sizeHintsFixed(layout.Width, layout.Height)); err != nil {
		return Result{}, err
	}

	id, err = conn.NextID()
	if err != nil {
		return Result{}, err
	}
	gc := x11.GContext(id)
	err = conn.CreateGC(gc, win, &x11.GCAttributes{
		Foreground:          pal.Text.Pixel(),
		HasForeground:       true,
		Background:          pal.WindowBG.Pixel(),
		HasBackground:       true,
		Font:                fnt.ID,
		HasFont:             true,
		NoGraphicsExposures: true,
	})
	if err != nil {
		return Result{}, err
	}

	if err := conn.MapWindow(win); err != nil {
		return Result{}, err
	}
	if err := conn.RaiseWindow(win); err != nil {
		return Result{}, err
	}

	rend := &renderer{
		conn:   conn,
		win:    win,
		gc:     gc,
		fnt:    fnt,
		pal:    pal,
		layout: layout,
		icon:   req.Icon.bitmap(),
		accent: pal.Accent(req.Icon.String()),
	}
	st := NewState(layout)
	st.Keysym = keymap.Lookup
	st.DeleteWindow = atoms.wmDeleteWindow

	slog.Debug("dialog shown",
		"width", layout.Width, "height", layout.Height,
		"buttons", len(layout.Buttons), "icon", req.Icon.String())

	// The event loop: a blocking read-dispatch-redraw cycle on the
	// single thread that owns the connection. It stops the instant the
	// state machine reaches its terminal state; remaining events are
	// discarded with the connection.
	for !st.Done {
		ev, err := conn.NextEvent()
		if err != nil {
			return Result{}, err
		}
		redraw := st.Handle(ev)
		if st.Done {
			break
		}
		if redraw {
			if err := rend.draw(st); err != nil {
				return Result{}, err
			}
		}
	}
	return st.Result, nil
}
