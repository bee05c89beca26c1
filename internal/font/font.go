// Package font measures and encodes dialog text using an X server core
// font. Metrics are fetched once at load time; measurement afterwards
// is pure computation, so layout never needs the connection.
package font

import (
	"errors"
	"fmt"

	"github.com/1broseidon/alerta/internal/x11"
)

// ErrNoFont reports that none of the candidate fonts could be opened.
var ErrNoFont = errors.New("font: no usable font available")

// candidates are tried in order; "fixed" is an alias every usable X
// server provides.
var candidates = []string{
	"-misc-fixed-medium-r-normal--13-*-*-*-*-*-iso8859-1",
	"fixed",
	"9x15",
	"6x13",
}

// Font is a loaded server font plus its immutable metrics table.
type Font struct {
	ID      x11.Font
	Ascent  int
	Descent int

	info *x11.FontInfo
}

// Height is the line height used for wrapping and layout.
func (f *Font) Height() int {
	return f.Ascent + f.Descent
}

// Load opens the first usable candidate font and fetches its metrics.
func Load(conn *x11.Conn) (*Font, error) {
	var lastErr error
	for _, name := range candidates {
		id, err := conn.NextID()
		if err != nil {
			return nil, err
		}
		fid := x11.Font(id)
		if err := conn.OpenFont(fid, name); err != nil {
			return nil, err
		}
		info, err := conn.QueryFont(fid)
		if err != nil {
			// A bad font name surfaces as an error on the QueryFont
			// round trip; try the next candidate.
			var reqErr *x11.RequestError
			if errors.As(err, &reqErr) {
				lastErr = fmt.Errorf("open %q: %w", name, err)
				continue
			}
			return nil, err
		}
		return &Font{
			ID:      fid,
			Ascent:  int(info.Ascent),
			Descent: int(info.Descent),
			info:    info,
		}, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFont, lastErr)
	}
	return nil, ErrNoFont
}

// Encode maps s onto the font's single-byte index space. Code points
// outside Latin-1 are replaced with the font's default char so they
// render as the server's placeholder glyph.
func (f *Font) Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = rune(f.info.DefaultChar & 0xff)
		}
		out = append(out, byte(r))
	}
	return out
}

func (f *Font) advance(b byte) int {
	info := f.info
	if uint16(b) < info.MinChar || uint16(b) > info.MaxChar {
		b = byte(info.DefaultChar)
		if uint16(b) < info.MinChar || uint16(b) > info.MaxChar {
			return int(info.MaxBounds.Width)
		}
	}
	if len(info.Chars) == 0 {
		return int(info.MinBounds.Width)
	}
	i := int(uint16(b)) - int(info.MinChar)
	if i >= len(info.Chars) {
		return int(info.MaxBounds.Width)
	}
	return int(info.Chars[i].Width)
}

// TextWidth returns the advance width of s in pixels.
func (f *Font) TextWidth(s string) int {
	w := 0
	for _, b := range f.Encode(s) {
		w += f.advance(b)
	}
	return w
}
