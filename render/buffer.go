package render

import (
	"math"
)

// Cell is one composed terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Bold  bool
	Depth float64 // View distance of the nearest depth-tested write, +Inf when empty
}

// light accumulates additive contributions in linear float space before quantization
type light struct {
	R, G, B float64
}

// FrameBuffer is a depth-tested cell compositor with a separate additive light layer
type FrameBuffer struct {
	cells  []Cell
	lights []light
	width  int
	height int
	bg     RGB
}

// NewFrameBuffer creates a buffer with the specified dimensions
func NewFrameBuffer(width, height int, bg RGB) *FrameBuffer {
	b := &FrameBuffer{bg: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *FrameBuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.lights = make([]light, size)
	} else {
		b.cells = b.cells[:size]
		b.lights = b.lights[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns width and height in cells
func (b *FrameBuffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to background using exponential copy
func (b *FrameBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: b.bg, Bg: b.bg, Depth: math.Inf(1)}
	b.lights[0] = light{}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.lights); filled *= 2 {
		copy(b.lights[filled:], b.lights[:filled])
	}
}

// inBounds returns true if in screen bounds
func (b *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of bounds returns the zero cell
func (b *FrameBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetDepth writes a glyph if depth is nearer than what the cell holds
func (b *FrameBuffer) SetDepth(x, y int, r rune, fg RGB, depth float64, bold bool) bool {
	if !b.inBounds(x, y) {
		return false
	}
	dst := &b.cells[y*b.width+x]
	if depth >= dst.Depth {
		return false
	}
	dst.Rune = r
	dst.Fg = fg
	dst.Bold = bold
	dst.Depth = depth
	return true
}

// SetOverlay writes a glyph ignoring depth (HUD)
func (b *FrameBuffer) SetOverlay(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	dst.Bold = false
	dst.Depth = 0
}

// AddLight accumulates additive color (0..1 per channel, unbounded sum)
func (b *FrameBuffer) AddLight(x, y int, r, g, bl float64) {
	if !b.inBounds(x, y) {
		return
	}
	l := &b.lights[y*b.width+x]
	l.R += r
	l.G += g
	l.B += bl
}

// LightAt returns the accumulated light at a cell
func (b *FrameBuffer) LightAt(x, y int) (r, g, bl float64) {
	if !b.inBounds(x, y) {
		return 0, 0, 0
	}
	l := b.lights[y*b.width+x]
	return l.R, l.G, l.B
}

// sparkGlyphs are chosen by light luminance, dim to bright
var sparkGlyphs = []rune{'·', '•', '✦', '✸'}

// sparkThreshold is the minimum luminance that draws a spark glyph
const sparkThreshold = 0.06

// ComposeLights resolves the additive layer onto the cells
// Lit cells show a spark glyph whose color is the cell's foreground plus light
func (b *FrameBuffer) ComposeLights(limit int) {
	rows := min(limit, b.height)
	for y := 0; y < rows; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			l := b.lights[idx]
			lum := l.R*0.299 + l.G*0.587 + l.B*0.114
			if lum < sparkThreshold {
				continue
			}
			c := &b.cells[idx]
			add := RGB{R: clamp(l.R * 255), G: clamp(l.G * 255), B: clamp(l.B * 255)}

			gi := int(lum * float64(len(sparkGlyphs)))
			gi = min(max(gi, 0), len(sparkGlyphs)-1)

			c.Rune = sparkGlyphs[gi]
			c.Fg = Add(b.bg, add, 1)
			c.Bold = lum > 0.5
			// Glow bleeds into the cell background
			c.Bg = Add(c.Bg, Scale(add, 0.15), 1)
		}
	}
}
