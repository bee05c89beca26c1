package x11

// Keysyms the dialog reacts to, from the standard keysym set.
const (
	KeySpace      uint32 = 0x0020
	KeyTab        uint32 = 0xff09
	KeyReturn     uint32 = 0xff0d
	KeyEscape     uint32 = 0xff1b
	KeyKPEnter    uint32 = 0xff8d
	KeyISOLeftTab uint32 = 0xfe20
)
