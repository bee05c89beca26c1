package x11

import "testing"

func TestParseDisplay(t *testing.T) {
	cases := []struct {
		spec string
		want Display
	}{
		{":0", Display{Host: "", Display: 0, Screen: 0}},
		{":1", Display{Host: "", Display: 1, Screen: 0}},
		{":0.1", Display{Host: "", Display: 0, Screen: 1}},
		{"localhost:2.0", Display{Host: "localhost", Display: 2, Screen: 0}},
		{"host.example:10.3", Display{Host: "host.example", Display: 10, Screen: 3}},
		{"unix:0", Display{Host: "unix", Display: 0, Screen: 0}},
	}
	for _, c := range cases {
		got, err := ParseDisplay(c.spec)
		if err != nil {
			t.Fatalf("ParseDisplay(%q): %v", c.spec, err)
		}
		if got != c.want {
			t.Fatalf("ParseDisplay(%q) = %+v, want %+v", c.spec, got, c.want)
		}
	}
}

func TestParseDisplay_Invalid(t *testing.T) {
	for _, spec := range []string{"nonsense", ":", ":x", ":0.", ":0.x", ":-1", ":0.-2"} {
		if _, err := ParseDisplay(spec); err == nil {
			t.Fatalf("ParseDisplay(%q) accepted invalid spec", spec)
		}
	}
}

func TestParseDisplay_FallsBackToEnvironment(t *testing.T) {
	t.Setenv("DISPLAY", ":5.1")
	got, err := ParseDisplay("")
	if err != nil {
		t.Fatalf("ParseDisplay: %v", err)
	}
	if got.Display != 5 || got.Screen != 1 {
		t.Fatalf("got %+v, want display 5 screen 1", got)
	}
}

func TestParseDisplay_EmptyWithoutEnvironment(t *testing.T) {
	t.Setenv("DISPLAY", "")
	if _, err := ParseDisplay(""); err == nil {
		t.Fatalf("expected error with no display spec and no DISPLAY")
	}
}
