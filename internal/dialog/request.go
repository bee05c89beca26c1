// Package dialog lays out, renders and runs a modal message dialog on
// an X11 display.
package dialog

import (
	"fmt"

	"github.com/1broseidon/alerta/internal/icons"
	"github.com/1broseidon/alerta/internal/theme"
)

// IconKind selects the picture shown next to the message.
type IconKind int

const (
	IconNone IconKind = iota
	IconInfo
	IconWarning
	IconError
	IconQuestion
)

func (k IconKind) String() string {
	switch k {
	case IconInfo:
		return "info"
	case IconWarning:
		return "warning"
	case IconError:
		return "error"
	case IconQuestion:
		return "question"
	}
	return "none"
}

// ParseIcon maps the external icon name onto an IconKind.
func ParseIcon(s string) (IconKind, error) {
	switch s {
	case "none":
		return IconNone, nil
	case "info":
		return IconInfo, nil
	case "warning":
		return IconWarning, nil
	case "error":
		return IconError, nil
	case "question":
		return IconQuestion, nil
	}
	return IconNone, fmt.Errorf("unknown icon %q", s)
}

func (k IconKind) bitmap() *icons.Bitmap {
	switch k {
	case IconInfo:
		return icons.Info()
	case IconWarning:
		return icons.Warning()
	case IconError:
		return icons.Error()
	case IconQuestion:
		return icons.Question()
	}
	return nil
}

// Button is one labeled action. At most one button should be tagged
// Default and at most one Cancel; the first tagged wins otherwise.
type Button struct {
	Label   string
	Default bool
	Cancel  bool
}

// Request describes one dialog invocation. It is treated as immutable
// once Show is called.
type Request struct {
	Message string
	Title   string
	Icon    IconKind
	Theme   theme.Kind
	Buttons []Button
}

// Preset returns the button set for one of the named presets.
func Preset(name string) ([]Button, bool) {
	switch name {
	case "close":
		return []Button{{Label: "Close", Default: true, Cancel: true}}, true
	case "ok":
		return []Button{{Label: "OK", Default: true}}, true
	case "okcancel":
		return []Button{
			{Label: "OK", Default: true},
			{Label: "Cancel", Cancel: true},
		}, true
	case "retrycancel":
		return []Button{
			{Label: "Retry", Default: true},
			{Label: "Cancel", Cancel: true},
		}, true
	case "yesno":
		return []Button{
			{Label: "Yes", Default: true},
			{Label: "No"},
		}, true
	case "yesnocancel":
		return []Button{
			{Label: "Yes", Default: true},
			{Label: "No"},
			{Label: "Cancel", Cancel: true},
		}, true
	}
	return nil, false
}

// Result is the outcome of a dialog invocation.
type Result struct {
	// Action is the index of the chosen button in the request's
	// declaration order. Only meaningful when Closed is false.
	Action int
	// Closed reports that the dialog went away without a button
	// choice (window-manager close).
	Closed bool
}
