package x11

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// baseTCPPort is the port of display :0 when connecting over TCP.
const baseTCPPort = 6000

// Display identifies a display server endpoint, parsed from a spec of
// the form [host]:display[.screen] as found in $DISPLAY.
type Display struct {
	Host    string
	Display int
	Screen  int
}

// ParseDisplay parses spec, falling back to $DISPLAY when spec is empty.
func ParseDisplay(spec string) (Display, error) {
	if spec == "" {
		spec = os.Getenv("DISPLAY")
	}
	if spec == "" {
		return Display{}, fmt.Errorf("no display specified and DISPLAY is not set")
	}

	colon := strings.LastIndex(spec, ":")
	if colon < 0 {
		return Display{}, fmt.Errorf("invalid display %q: missing ':'", spec)
	}

	d := Display{Host: spec[:colon]}
	rest := spec[colon+1:]
	if dot := strings.Index(rest, "."); dot >= 0 {
		screen, err := strconv.Atoi(rest[dot+1:])
		if err != nil || screen < 0 {
			return Display{}, fmt.Errorf("invalid screen number in display %q", spec)
		}
		d.Screen = screen
		rest = rest[:dot]
	}
	num, err := strconv.Atoi(rest)
	if err != nil || num < 0 {
		return Display{}, fmt.Errorf("invalid display number in display %q", spec)
	}
	d.Display = num
	return d, nil
}

// dial opens the byte stream to the display server. Empty and "unix"
// hosts use the abstract-free Unix socket convention; anything else is
// a TCP host.
func (d Display) dial() (net.Conn, error) {
	if d.Host == "" || d.Host == "unix" {
		path := fmt.Sprintf("/tmp/.X11-unix/X%d", d.Display)
		c, err := net.Dial("unix", path)
		if err != nil {
			return nil, connErr(KindRefused, "dial "+path, err)
		}
		return c, nil
	}
	addr := net.JoinHostPort(d.Host, strconv.Itoa(baseTCPPort+d.Display))
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, connErr(KindRefused, "dial "+addr, err)
	}
	return c, nil
}
