// Command alerta displays a simple message dialog on the local X11 (or
// XWayland) server and reports the user's choice through its exit
// status:
//
//	0-N  the button with this index was clicked (0 is the leftmost)
//	50   the window was closed by other means (window manager close)
//	64   invalid command-line arguments
//	100  an error occurred while displaying the dialog
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/alerta/internal/dialog"
	"github.com/1broseidon/alerta/internal/theme"
)

var version = "dev"

// Exit status conventions.
const (
	exitClosed = 50
	exitUsage  = 64
	exitError  = 100
)

type options struct {
	title   string
	icon    string
	buttons string
	theme   string
	color   string
	verbose bool
}

// showError wraps failures from the dialog core so they map to the
// error exit status instead of the usage one.
type showError struct{ err error }

func (e *showError) Error() string { return e.err.Error() }
func (e *showError) Unwrap() error { return e.err }

func newRootCmd(opts *options, result *dialog.Result) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerta <message>",
		Short: "Display a message dialog on the local X11 server",
		Long: `Alerta displays a simple modal message dialog with an icon, a message
and a row of buttons, talking to the X server directly.

Exit status: 0-N for the clicked button (0 is the leftmost), 50 when the
window was closed without choosing a button, 64 for invalid arguments,
100 when displaying the dialog failed.`,
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args[0], opts)
			if err != nil {
				return err
			}
			if opts.verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			res, err := dialog.Show(req)
			if err != nil {
				return &showError{err: err}
			}
			*result = res
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.title, "title", "", "window title")
	flags.StringVar(&opts.icon, "icon", "info", "icon to display: info, warning, error, question, none")
	flags.StringVar(&opts.buttons, "buttons", "close", "button preset: close, ok, okcancel, retrycancel, yesno, yesnocancel; or a comma-separated list of custom labels")
	flags.StringVar(&opts.theme, "theme", "auto", "color theme: light, dark, auto")
	flags.StringVar(&opts.color, "color", "auto", "ANSI colors in console output: always, auto, never")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	return cmd
}

func buildRequest(message string, opts *options) (*dialog.Request, error) {
	icon, err := dialog.ParseIcon(opts.icon)
	if err != nil {
		return nil, err
	}
	buttons, err := parseButtons(opts.buttons)
	if err != nil {
		return nil, err
	}
	th, err := resolveTheme(opts.theme)
	if err != nil {
		return nil, err
	}
	return &dialog.Request{
		Message: message,
		Title:   opts.title,
		Icon:    icon,
		Theme:   th,
		Buttons: buttons,
	}, nil
}

// parseButtons accepts a named preset or a comma-separated custom
// list. In a custom list a "+label" marks the default button and a
// "-label" the cancel button.
func parseButtons(spec string) ([]dialog.Button, error) {
	if buttons, ok := dialog.Preset(spec); ok {
		return buttons, nil
	}
	if !strings.Contains(spec, ",") && !strings.HasPrefix(spec, "+") && !strings.HasPrefix(spec, "-") {
		return nil, fmt.Errorf("unknown button preset %q", spec)
	}
	var buttons []dialog.Button
	haveDefault, haveCancel := false, false
	for _, label := range strings.Split(spec, ",") {
		label = strings.TrimSpace(label)
		b := dialog.Button{Label: label}
		switch {
		case strings.HasPrefix(label, "+"):
			if haveDefault {
				return nil, fmt.Errorf("more than one default button in %q", spec)
			}
			haveDefault = true
			b = dialog.Button{Label: label[1:], Default: true}
		case strings.HasPrefix(label, "-"):
			if haveCancel {
				return nil, fmt.Errorf("more than one cancel button in %q", spec)
			}
			haveCancel = true
			b = dialog.Button{Label: label[1:], Cancel: true}
		}
		if b.Label == "" {
			return nil, fmt.Errorf("empty button label in %q", spec)
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}

// resolveTheme maps the --theme flag onto a palette kind. "auto" reads
// the desktop's preference hints; a dark GTK theme selects the dark
// palette, everything else falls back to light.
func resolveTheme(name string) (theme.Kind, error) {
	switch name {
	case "light":
		return theme.Light, nil
	case "dark":
		return theme.Dark, nil
	case "auto":
		if strings.Contains(strings.ToLower(os.Getenv("GTK_THEME")), "dark") {
			return theme.Dark, nil
		}
		return theme.Light, nil
	}
	return theme.Light, fmt.Errorf("unknown theme %q", name)
}

// exitStatus maps a dialog result onto the documented exit codes.
func exitStatus(res dialog.Result) int {
	if res.Closed {
		return exitClosed
	}
	return res.Action
}

// useColor decides whether stderr messages get ANSI color.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

func main() {
	opts := &options{}
	var result dialog.Result
	cmd := newRootCmd(opts, &result)

	if err := cmd.Execute(); err != nil {
		prefix := "error:"
		if useColor(opts.color) {
			prefix = "\x1b[31merror:\x1b[0m"
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", prefix, err)
		var se *showError
		if errors.As(err, &se) {
			os.Exit(exitError)
		}
		os.Exit(exitUsage)
	}
	os.Exit(exitStatus(result))
}
