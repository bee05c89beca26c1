package dialog

import (
	"github.com/1broseidon/alerta/internal/font"
	"github.com/1broseidon/alerta/internal/icons"
	"github.com/1broseidon/alerta/internal/theme"
	"github.com/1broseidon/alerta/internal/x11"
)

// renderer repaints the whole dialog from the layout and the current
// interaction state. There is no partial-redraw path: the window is
// small and short-lived, so a full pass on every change keeps the
// drawing trivially correct.
type renderer struct {
	conn   *x11.Conn
	win    x11.Window
	gc     x11.GContext
	fnt    *font.Font
	pal    theme.Palette
	layout *Layout
	icon   *icons.Bitmap
	accent theme.RGB
}

func (r *renderer) setColors(fg, bg theme.RGB) error {
	return r.conn.ChangeGC(r.gc, &x11.GCAttributes{
		Foreground:    fg.Pixel(),
		HasForeground: true,
		Background:    bg.Pixel(),
		HasBackground: true,
	})
}

func (r *renderer) fill(rc Rect) error {
	return r.conn.PolyFillRectangle(r.win, r.gc, []x11.Rectangle{{
		X: int16(rc.X), Y: int16(rc.Y), W: uint16(rc.W), H: uint16(rc.H),
	}})
}

// drawText paints one text run with its background box, chunked to the
// protocol's per-request limit.
func (r *renderer) drawText(x, baseline int, s string) error {
	b := r.fnt.Encode(s)
	for len(b) > 0 {
		chunk := b
		if len(chunk) > 255 {
			chunk = chunk[:255]
		}
		if err := r.conn.ImageText8(r.win, r.gc, int16(x), int16(baseline), chunk); err != nil {
			return err
		}
		for _, c := range chunk {
			x += r.fnt.TextWidth(string(rune(c)))
		}
		b = b[len(chunk):]
	}
	return nil
}

func (r *renderer) drawIcon() error {
	if r.icon == nil {
		return nil
	}
	if err := r.setColors(r.accent, r.pal.WindowBG); err != nil {
		return err
	}
	var rects []x11.Rectangle
	for _, run := range r.icon.Runs() {
		rects = append(rects, x11.Rectangle{
			X: int16(r.layout.Icon.X + run.X),
			Y: int16(r.layout.Icon.Y + run.Y),
			W: uint16(run.W),
			H: 1,
		})
	}
	return r.conn.PolyFillRectangle(r.win, r.gc, rects)
}

func (r *renderer) drawButton(b ButtonLayout, st *State, idx int) error {
	fillColor := r.pal.Button
	switch {
	case st.Pressed == idx && st.Hover == idx:
		fillColor = r.pal.ButtonPressed
	case st.Hover == idx:
		fillColor = r.pal.ButtonHover
	}

	if err := r.setColors(fillColor, r.pal.WindowBG); err != nil {
		return err
	}
	if err := r.fill(b.Rect); err != nil {
		return err
	}

	if err := r.setColors(r.pal.ButtonOutline, fillColor); err != nil {
		return err
	}
	outline := []x11.Rectangle{{
		X: int16(b.Rect.X), Y: int16(b.Rect.Y),
		W: uint16(b.Rect.W - 1), H: uint16(b.Rect.H - 1),
	}}
	if err := r.conn.PolyRectangle(r.win, r.gc, outline); err != nil {
		return err
	}
	if st.Focus == idx {
		// Inner outline marks keyboard focus.
		inset := 2
		pts := []x11.Point{
			{X: int16(b.Rect.X + inset), Y: int16(b.Rect.Y + inset)},
			{X: int16(b.Rect.X + b.Rect.W - 1 - inset), Y: int16(b.Rect.Y + inset)},
			{X: int16(b.Rect.X + b.Rect.W - 1 - inset), Y: int16(b.Rect.Y + b.Rect.H - 1 - inset)},
			{X: int16(b.Rect.X + inset), Y: int16(b.Rect.Y + b.Rect.H - 1 - inset)},
			{X: int16(b.Rect.X + inset), Y: int16(b.Rect.Y + inset)},
		}
		if err := r.conn.PolyLine(r.win, r.gc, pts); err != nil {
			return err
		}
	}

	if err := r.setColors(r.pal.Text, fillColor); err != nil {
		return err
	}
	labelW := r.fnt.TextWidth(b.Label)
	x := b.Rect.X + (b.Rect.W-labelW)/2
	baseline := b.Rect.Y + (b.Rect.H-r.fnt.Height())/2 + r.fnt.Ascent
	return r.drawText(x, baseline, b.Label)
}

// draw repaints the full window for the given interaction state.
func (r *renderer) draw(st *State) error {
	if err := r.setColors(r.pal.WindowBG, r.pal.WindowBG); err != nil {
		return err
	}
	if err := r.fill(Rect{W: r.layout.Width, H: r.layout.Height}); err != nil {
		return err
	}
	if err := r.drawIcon(); err != nil {
		return err
	}
	if err := r.setColors(r.pal.Text, r.pal.WindowBG); err != nil {
		return err
	}
	for _, line := range r.layout.Lines {
		if line.Text == "" {
			continue
		}
		if err := r.drawText(line.X, line.Baseline, line.Text); err != nil {
			return err
		}
	}
	for i, b := range r.layout.Buttons {
		if err := r.drawButton(b, st, i); err != nil {
			return err
		}
	}
	return nil
}
