// Package icons builds the dialog's monochrome icon bitmaps. The
// shapes are generated once at startup from simple geometry; the
// renderer recolors them per theme and paints them as horizontal runs
// of filled rectangles, so no image transfer format is involved.
package icons

// Size is the square icon dimension in pixels.
const Size = 32

// Bitmap is a monochrome pixel grid. Set pixels are drawn in the icon
// accent color; clear pixels let the window background show through.
type Bitmap struct {
	W, H int
	bits []bool
}

func newBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, bits: make([]bool, w*h)}
}

// At reports whether the pixel at (x, y) is set.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.bits[y*b.W+x]
}

func (b *Bitmap) set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.bits[y*b.W+x] = on
}

func (b *Bitmap) rect(x, y, w, h int, on bool) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.set(xx, yy, on)
		}
	}
}

// fillCircle sets every pixel within radius r of (cx, cy).
func (b *Bitmap) fillCircle(cx, cy, r int) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				b.set(x, y, true)
			}
		}
	}
}

// fillTriangle sets an upward triangle with apex (ax, ay) and a flat
// base at baseY spanning [x0, x1].
func (b *Bitmap) fillTriangle(ax, ay, baseY, x0, x1 int) {
	h := baseY - ay
	if h <= 0 {
		return
	}
	for y := ay; y <= baseY; y++ {
		t := y - ay
		left := ax + (x0-ax)*t/h
		right := ax + (x1-ax)*t/h
		for x := left; x <= right; x++ {
			b.set(x, y, true)
		}
	}
}

// diagonal clears a thick diagonal stroke between two points; used to
// knock the multiplication sign out of the error icon.
func (b *Bitmap) clearDiagonal(x0, y0, x1, y1, thickness int) {
	steps := x1 - x0
	if steps < 0 {
		steps = -steps
	}
	if dy := y1 - y0; dy > steps {
		steps = dy
	} else if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		b.rect(x0, y0, thickness, thickness, false)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		b.rect(x, y, thickness, thickness, false)
	}
}

// Run is a horizontal span of set pixels.
type Run struct {
	X, Y, W int
}

// Runs decomposes the bitmap into horizontal spans for rectangle-fill
// drawing.
func (b *Bitmap) Runs() []Run {
	var runs []Run
	for y := 0; y < b.H; y++ {
		x := 0
		for x < b.W {
			if !b.At(x, y) {
				x++
				continue
			}
			start := x
			for x < b.W && b.At(x, y) {
				x++
			}
			runs = append(runs, Run{X: start, Y: y, W: x - start})
		}
	}
	return runs
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, on := range b.bits {
		if on {
			n++
		}
	}
	return n
}

// Info is a filled circle with the letter i knocked out.
func Info() *Bitmap {
	b := newBitmap(Size, Size)
	b.fillCircle(15, 15, 14)
	b.rect(13, 6, 5, 5, false)   // dot
	b.rect(13, 13, 5, 12, false) // stem
	return b
}

// Question is a filled circle with a question mark knocked out.
func Question() *Bitmap {
	b := newBitmap(Size, Size)
	b.fillCircle(15, 15, 14)
	b.rect(11, 7, 9, 3, false)  // top bar
	b.rect(17, 9, 3, 5, false)  // right side
	b.rect(13, 13, 5, 3, false) // elbow
	b.rect(13, 16, 3, 3, false) // descender
	b.rect(13, 22, 4, 4, false) // dot
	return b
}

// Error is a filled circle with a multiplication sign knocked out.
func Error() *Bitmap {
	b := newBitmap(Size, Size)
	b.fillCircle(15, 15, 14)
	b.clearDiagonal(9, 9, 19, 19, 3)
	b.clearDiagonal(19, 9, 9, 19, 3)
	return b
}

// Warning is a filled triangle with an exclamation mark knocked out.
func Warning() *Bitmap {
	b := newBitmap(Size, Size)
	b.fillTriangle(15, 2, 29, 1, 30)
	b.rect(13, 11, 5, 10, false) // stem
	b.rect(13, 24, 5, 4, false)  // dot
	return b
}
