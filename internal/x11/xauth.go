package x11

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Xauthority entry families we accept for local displays.
const (
	familyLocal = 256
	familyWild  = 65535
)

const cookieAuthName = "MIT-MAGIC-COOKIE-1"

type authEntry struct {
	family  uint16
	address string
	number  string
	name    string
	data    []byte
}

// authority returns the authorization name and data to present for the
// given display, or empty values when no usable cookie exists (some
// servers accept unauthenticated local connections).
func authority(d Display) (name string, data []byte) {
	path := os.Getenv("XAUTHORITY")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		path = filepath.Join(home, ".Xauthority")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil
	}
	defer f.Close()

	entries, err := parseAuthority(f)
	if err != nil {
		return "", nil
	}
	num := strconv.Itoa(d.Display)
	for _, e := range entries {
		if e.name != cookieAuthName {
			continue
		}
		if e.number != "" && e.number != num {
			continue
		}
		switch e.family {
		case familyLocal, familyWild:
			return e.name, e.data
		}
	}
	return "", nil
}

// parseAuthority decodes the Xauthority file format: a sequence of
// entries with big-endian length-prefixed fields, independent of the
// display connection's byte order.
func parseAuthority(r io.Reader) ([]authEntry, error) {
	var entries []authEntry
	for {
		var family uint16
		if err := binary.Read(r, binary.BigEndian, &family); err != nil {
			if err == io.EOF {
				return entries, nil
			}
			return nil, err
		}
		addr, err := readAuthField(r)
		if err != nil {
			return nil, err
		}
		number, err := readAuthField(r)
		if err != nil {
			return nil, err
		}
		name, err := readAuthField(r)
		if err != nil {
			return nil, err
		}
		data, err := readAuthField(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, authEntry{
			family:  family,
			address: string(addr),
			number:  string(number),
			name:    string(name),
			data:    data,
		})
	}
}

func readAuthField(r io.Reader) ([]byte, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
