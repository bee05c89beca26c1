package font

import "strings"

// Wrap breaks text into lines no wider than maxWidth according to the
// width function, which reports the pixel width of a string.
//
// Explicit newlines always break, regardless of width, and blank lines
// are preserved. Within a line the break is greedy: words accumulate
// until the next one would overflow. A single word wider than maxWidth
// is placed on a line of its own and allowed to overflow; words are
// never hyphenated. Wrapping the newline-joined output again with the
// same width yields the same lines.
func Wrap(text string, maxWidth int, width func(string) int) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if width(line+" "+word) <= maxWidth {
				line += " " + word
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
