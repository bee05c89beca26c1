package dialog

import (
	"testing"

	"github.com/1broseidon/alerta/internal/icons"
)

// testText measures every character as 7 pixels wide, line height 13.
func testText() Text {
	return Text{
		Width:  func(s string) int { return 7 * len(s) },
		Height: 13,
		Ascent: 11,
	}
}

func okRequest(msg string) *Request {
	return &Request{Message: msg, Buttons: []Button{{Label: "OK", Default: true}}}
}

func TestCompute_NoButtons(t *testing.T) {
	if _, err := Compute(&Request{Message: "hi"}, testText()); err != ErrNoButtons {
		t.Fatalf("got %v, want ErrNoButtons", err)
	}
}

func TestCompute_MinimumSize(t *testing.T) {
	l, err := Compute(okRequest("Hello, World!"), testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != minWidth || l.Height != minHeight {
		t.Fatalf("size %dx%d, want %dx%d", l.Width, l.Height, minWidth, minHeight)
	}
	if len(l.Lines) != 1 || l.Lines[0].Text != "Hello, World!" {
		t.Fatalf("lines: %+v", l.Lines)
	}
	if l.HasIcon {
		t.Fatalf("icon laid out without one requested")
	}
}

func TestCompute_EmptyMessage(t *testing.T) {
	l, err := Compute(okRequest(""), testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(l.Lines) != 0 {
		t.Fatalf("lines for empty message: %+v", l.Lines)
	}
	if l.Width != minWidth || l.Height != minHeight {
		t.Fatalf("size %dx%d, want minimum", l.Width, l.Height)
	}
}

func TestCompute_ButtonsRightAlignedInsideWindow(t *testing.T) {
	req := &Request{
		Message: "pick one",
		Buttons: []Button{
			{Label: "Yes", Default: true},
			{Label: "No"},
			{Label: "Cancel", Cancel: true},
		},
	}
	l, err := Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(l.Buttons) != 3 {
		t.Fatalf("got %d buttons", len(l.Buttons))
	}
	last := l.Buttons[2].Rect
	if last.X+last.W != l.Width-windowPadding {
		t.Fatalf("row not right-aligned: ends at %d, width %d", last.X+last.W, l.Width)
	}
	for i, b := range l.Buttons {
		if b.Rect.X < windowPadding || b.Rect.X+b.Rect.W > l.Width-windowPadding {
			t.Fatalf("button %d outside margins: %+v", i, b.Rect)
		}
		if b.Rect.W < minButtonWidth {
			t.Fatalf("button %d narrower than minimum: %+v", i, b.Rect)
		}
		if b.Action != i {
			t.Fatalf("button %d has action %d", i, b.Action)
		}
	}
	// Declaration order, left to right, with the fixed gap.
	for i := 1; i < len(l.Buttons); i++ {
		prev := l.Buttons[i-1].Rect
		if l.Buttons[i].Rect.X != prev.X+prev.W+spacing {
			t.Fatalf("gap between buttons %d and %d wrong", i-1, i)
		}
	}
}

func TestCompute_ButtonWidthFollowsLabel(t *testing.T) {
	req := &Request{
		Message: "m",
		Buttons: []Button{
			{Label: "A"},
			{Label: "A much longer label"},
		},
	}
	l, err := Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Buttons[0].Rect.W != minButtonWidth {
		t.Fatalf("short label width %d, want minimum %d", l.Buttons[0].Rect.W, minButtonWidth)
	}
	long := 7*len("A much longer label") + 2*buttonPadding
	if l.Buttons[1].Rect.W != long {
		t.Fatalf("long label width %d, want %d", l.Buttons[1].Rect.W, long)
	}
}

func TestCompute_IconReservesSpace(t *testing.T) {
	req := okRequest("Hello")
	req.Icon = IconInfo
	l, err := Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !l.HasIcon {
		t.Fatalf("icon not laid out")
	}
	if l.Icon.X != windowPadding || l.Icon.W != icons.Size || l.Icon.H != icons.Size {
		t.Fatalf("icon rect: %+v", l.Icon)
	}
	if got := l.Lines[0].X; got != windowPadding+icons.Size+spacing {
		t.Fatalf("text starts at %d, want %d", got, windowPadding+icons.Size+spacing)
	}
}

func TestCompute_LongMessageGrowsHeightNotWidth(t *testing.T) {
	words := make([]byte, 0, 200)
	for i := 0; i < 40; i++ {
		words = append(words, "word "...)
	}
	msg := string(words[:len(words)-1])
	l, err := Compute(okRequest(msg), testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != minWidth {
		t.Fatalf("width grew to %d for wrappable text", l.Width)
	}
	if len(l.Lines) < 2 {
		t.Fatalf("long message not wrapped: %+v", l.Lines)
	}
	if l.Height <= minHeight {
		t.Fatalf("height did not grow: %d", l.Height)
	}
	for _, line := range l.Lines {
		if 7*len(line.Text) > minWidth-2*windowPadding {
			t.Fatalf("line overflows: %q", line.Text)
		}
	}
}

func TestCompute_WideButtonRowGrowsWidth(t *testing.T) {
	req := &Request{
		Message: "m",
		Buttons: []Button{
			{Label: "This is a very wide button label indeed"},
			{Label: "And this one is just as wide as the first"},
		},
	}
	l, err := Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	rowW := l.Buttons[0].Rect.W + spacing + l.Buttons[1].Rect.W
	if l.Width != rowW+2*windowPadding {
		t.Fatalf("width %d does not fit row %d plus margins", l.Width, rowW)
	}
}

func TestCompute_DefaultAndCancelIndices(t *testing.T) {
	req := &Request{
		Message: "m",
		Buttons: []Button{
			{Label: "Retry", Default: true},
			{Label: "Cancel", Cancel: true},
		},
	}
	l, err := Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.DefaultIndex != 0 || l.CancelIndex != 1 {
		t.Fatalf("default %d cancel %d", l.DefaultIndex, l.CancelIndex)
	}

	// Untagged sets fall back to the first button / no cancel.
	req = &Request{Message: "m", Buttons: []Button{{Label: "A"}, {Label: "B"}}}
	l, err = Compute(req, testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.DefaultIndex != 0 || l.CancelIndex != -1 {
		t.Fatalf("default %d cancel %d for untagged set", l.DefaultIndex, l.CancelIndex)
	}
}

func TestButtonAt(t *testing.T) {
	l, err := Compute(okRequest("hi"), testText())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	b := l.Buttons[0].Rect
	if got := l.buttonAt(b.X+1, b.Y+1); got != 0 {
		t.Fatalf("buttonAt inside = %d", got)
	}
	if got := l.buttonAt(b.X-1, b.Y); got != -1 {
		t.Fatalf("buttonAt outside = %d", got)
	}
	if got := l.buttonAt(b.X+b.W, b.Y); got != -1 {
		t.Fatalf("buttonAt on exclusive edge = %d", got)
	}
}
