// Package theme holds the dialog color palettes. The tables are
// compiled into the binary; nothing is read from disk at runtime.
package theme

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind selects a palette.
type Kind int

const (
	Light Kind = iota
	Dark
)

func (k Kind) String() string {
	if k == Dark {
		return "dark"
	}
	return "light"
}

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

// Pixel returns the 24-bit TrueColor pixel value for the 0xRRGGBB
// channel layout the dialog's visual is selected for.
func (c RGB) Pixel() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnmarshalYAML parses "#rrggbb" color literals.
func (c *RGB) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	*c = RGB{R: r, G: g, B: b}
	return nil
}

// Palette is one theme's color table, indexed by role.
type Palette struct {
	WindowBG      RGB `yaml:"window_bg"`
	Text          RGB `yaml:"text"`
	Button        RGB `yaml:"button"`
	ButtonHover   RGB `yaml:"button_hover"`
	ButtonPressed RGB `yaml:"button_pressed"`
	ButtonOutline RGB `yaml:"button_outline"`
	// Accents color the icon glyph per icon kind.
	Accents map[string]RGB `yaml:"accents"`
}

// Accent returns the icon color for the named kind, falling back to
// the text color for unknown names.
func (p *Palette) Accent(kind string) RGB {
	if c, ok := p.Accents[kind]; ok {
		return c
	}
	return p.Text
}

//go:embed palettes.yaml
var palettesYAML []byte

var palettes map[string]Palette

func init() {
	if err := yaml.Unmarshal(palettesYAML, &palettes); err != nil {
		panic(fmt.Sprintf("theme: bad embedded palette table: %v", err))
	}
	for _, name := range []string{"light", "dark"} {
		if _, ok := palettes[name]; !ok {
			panic(fmt.Sprintf("theme: embedded palette table is missing %q", name))
		}
	}
}

// Get returns the palette for kind.
func Get(kind Kind) Palette {
	return palettes[kind.String()]
}
