package dialog

import (
	"errors"

	"github.com/1broseidon/alerta/internal/font"
	"github.com/1broseidon/alerta/internal/icons"
)

// Fixed layout constants, in pixels.
const (
	windowPadding  = 10
	buttonPadding  = 12
	spacing        = 10
	minWidth       = 400
	minHeight      = 100
	minButtonWidth = 75
)

// ErrNoButtons is returned for a request with an empty button set; a
// dialog with no way to answer it is never produced.
var ErrNoButtons = errors.New("dialog: request has no buttons")

// Rect is a pixel rectangle in window coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Text abstracts the measurements the layout needs from a loaded font,
// so layout stays a pure function testable with synthetic metrics.
type Text struct {
	Width  func(string) int
	Height int
	Ascent int
}

// TextLine is one wrapped message line with its baseline position.
type TextLine struct {
	Text     string
	X        int
	Baseline int
}

// ButtonLayout is one button's resolved geometry.
type ButtonLayout struct {
	Rect   Rect
	Label  string
	Action int
}

// Layout is the fully resolved dialog geometry, computed once per
// invocation and immutable afterwards.
type Layout struct {
	Width, Height int
	Icon          Rect
	HasIcon       bool
	Lines         []TextLine
	Buttons       []ButtonLayout
	// DefaultIndex is activated by Enter/Space with nothing focused.
	DefaultIndex int
	// CancelIndex is activated by Escape, -1 when no button is tagged
	// cancel.
	CancelIndex int
}

// Compute turns a request and text metrics into a Layout. It performs
// no I/O.
func Compute(req *Request, m Text) (*Layout, error) {
	if len(req.Buttons) == 0 {
		return nil, ErrNoButtons
	}

	iconSpan := 0
	if req.Icon != IconNone {
		iconSpan = icons.Size + spacing
	}

	maxTextWidth := minWidth - 2*windowPadding - iconSpan
	lines := font.Wrap(req.Message, maxTextWidth, m.Width)
	textW, textH := 0, 0
	if len(lines) > 0 {
		for _, l := range lines {
			if w := m.Width(l); w > textW {
				textW = w
			}
		}
		textH = len(lines) * m.Height
	}

	// Button sizes from their labels; the row is right-aligned.
	btnH := m.Height + 2*buttonPadding
	widths := make([]int, len(req.Buttons))
	rowW := 0
	for i, b := range req.Buttons {
		w := m.Width(b.Label) + 2*buttonPadding
		if w < minButtonWidth {
			w = minButtonWidth
		}
		widths[i] = w
		rowW += w
	}
	rowW += (len(req.Buttons) - 1) * spacing

	winW := minWidth
	if w := iconSpan + textW + 2*windowPadding; w > winW {
		winW = w
	}
	if w := rowW + 2*windowPadding; w > winW {
		winW = w
	}

	contentH := textH
	if req.Icon != IconNone && icons.Size > contentH {
		contentH = icons.Size
	}
	winH := contentH + btnH + spacing + 2*windowPadding
	if winH < minHeight {
		winH = minHeight
	}

	// The content area above the button row; icon and text center
	// vertically within it.
	availH := winH - btnH - spacing - 2*windowPadding

	l := &Layout{
		Width:        winW,
		Height:       winH,
		DefaultIndex: 0,
		CancelIndex:  -1,
	}

	if req.Icon != IconNone {
		l.HasIcon = true
		l.Icon = Rect{
			X: windowPadding,
			Y: windowPadding + (availH-icons.Size)/2,
			W: icons.Size,
			H: icons.Size,
		}
	}

	textX := windowPadding + iconSpan
	textY := windowPadding + (availH-textH)/2
	for i, line := range lines {
		l.Lines = append(l.Lines, TextLine{
			Text:     line,
			X:        textX,
			Baseline: textY + i*m.Height + m.Ascent,
		})
	}

	x := winW - windowPadding - rowW
	y := winH - windowPadding - btnH
	for i, b := range req.Buttons {
		l.Buttons = append(l.Buttons, ButtonLayout{
			Rect:   Rect{X: x, Y: y, W: widths[i], H: btnH},
			Label:  b.Label,
			Action: i,
		})
		x += widths[i] + spacing
	}

	for i, b := range req.Buttons {
		if b.Default {
			l.DefaultIndex = i
			break
		}
	}
	for i, b := range req.Buttons {
		if b.Cancel {
			l.CancelIndex = i
			break
		}
	}
	return l, nil
}

// buttonAt returns the index of the button containing (x, y), or -1.
func (l *Layout) buttonAt(x, y int) int {
	for i, b := range l.Buttons {
		if b.Rect.Contains(x, y) {
			return i
		}
	}
	return -1
}
