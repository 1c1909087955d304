package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/scene"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// Default glyphs per sprite when a material leaves Glyph unset
const (
	defaultDotGlyph  = '•'
	maxSpriteRadius  = 6.0 // Rows; caps the footprint of bursts right in front of the camera
	labelDepthOffset = 0.01
)

// projectedPoint is a cached screen-space point
type projectedPoint struct {
	x, y   float64
	depth  float64
	radius float64 // Rows
	index  int
}

type cacheEntry struct {
	points  []projectedPoint
	version uint64
	frame   uint64
}

// Renderer draws a scene graph through a camera onto a tcell screen
// Projected points are cached per renderable and rebuilt on camera change or when the renderable reports dirty
type Renderer struct {
	screen tcell.Screen
	buf    *FrameBuffer
	bg     RGB
	hudFg  RGB
	hudBg  RGB

	cellAspect float64
	cache      map[scene.Renderable]*cacheEntry
	frame      uint64
}

// NewRenderer creates a renderer bound to a screen
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	bg := RGB{constants.BackgroundR, constants.BackgroundG, constants.BackgroundB}
	return &Renderer{
		screen:     screen,
		buf:        NewFrameBuffer(w, h, bg),
		bg:         bg,
		hudFg:      RGB{0xa0, 0xa0, 0xa8},
		hudBg:      RGB{0x14, 0x14, 0x16},
		cellAspect: constants.CellAspect,
		cache:      make(map[scene.Renderable]*cacheEntry),
	}
}

// Buffer exposes the composed frame for inspection
func (r *Renderer) Buffer() *FrameBuffer {
	return r.buf
}

// CacheSize returns the number of cached renderables
func (r *Renderer) CacheSize() int {
	return len(r.cache)
}

// Render composes one frame and flushes it to the screen
// The camera viewport is expected to match the screen minus the HUD rows
func (r *Renderer) Render(graph *scene.Graph, camera *scene.Camera, hud string) {
	w, h := r.screen.Size()
	if bw, bh := r.buf.Size(); bw != w || bh != h {
		r.buf.Resize(w, h)
	} else {
		r.buf.Clear()
	}

	r.frame++
	version := camera.Version()
	_, viewRows := camera.Viewport()
	viewRows = min(viewRows, h)

	graph.Each(func(node scene.Renderable) {
		switch n := node.(type) {
		case scene.Label:
			r.drawLabel(n, camera)
		case scene.ShadedCloud:
			r.drawCloud(n, n.Colors(), camera, version, viewRows)
		case scene.PointCloud:
			r.drawCloud(n, nil, camera, version, viewRows)
		}
	})

	r.buf.ComposeLights(viewRows)
	r.pruneCache()

	if h > viewRows {
		r.drawHUD(hud, h-1)
	}
	r.flush()
}

// project returns cached screen points for a cloud, rebuilding on change
func (r *Renderer) project(cloud scene.PointCloud, camera *scene.Camera, version uint64) []projectedPoint {
	entry, ok := r.cache[cloud]
	dirty := false
	if d, isDirtier := cloud.(scene.Dirtier); isDirtier && d.Dirty() {
		dirty = true
	}

	if !ok || dirty || entry.version != version {
		if !ok {
			entry = &cacheEntry{}
			r.cache[cloud] = entry
		}
		size := cloud.Material().Size
		entry.points = entry.points[:0]
		for i, p := range cloud.Points() {
			x, y, depth, visible := camera.Project(p)
			if !visible {
				continue
			}
			entry.points = append(entry.points, projectedPoint{
				x:      x,
				y:      y,
				depth:  depth,
				radius: camera.ProjectedSize(size, depth) / 2,
				index:  i,
			})
		}
		entry.version = version
		if dirty {
			cloud.(scene.Dirtier).MarkClean()
		}
	}
	entry.frame = r.frame
	return entry.points
}

// pruneCache drops entries for renderables no longer in the graph
func (r *Renderer) pruneCache() {
	for k, e := range r.cache {
		if e.frame != r.frame {
			delete(r.cache, k)
		}
	}
}

func (r *Renderer) drawCloud(cloud scene.PointCloud, colors []colorful.Color, camera *scene.Camera, version uint64, rows int) {
	mat := cloud.Material()
	points := r.project(cloud, camera, version)

	if mat.Blending == scene.BlendAdditive {
		for _, p := range points {
			r.splat(p, mat, rows)
		}
		return
	}

	glyph := mat.Glyph
	if glyph == 0 {
		glyph = defaultDotGlyph
	}
	base := FromColorful(mat.Color)
	for _, p := range points {
		x, y := int(math.Floor(p.x)), int(math.Floor(p.y))
		if y >= rows {
			continue
		}
		fg := base
		if colors != nil {
			fg = FromColorful(colors[p.index])
		}
		if mat.Opacity < 1 {
			fg = Blend(r.bg, fg, mat.Opacity)
		}
		if mat.DepthTest {
			r.buf.SetDepth(x, y, glyph, fg, p.depth, false)
		} else {
			r.buf.SetDepth(x, y, glyph, fg, 0, false)
		}
	}
}

// splat accumulates one additive sprite into the light layer
func (r *Renderer) splat(p projectedPoint, mat scene.Material, rows int) {
	radius := min(p.radius, maxSpriteRadius)
	cx, cy := int(math.Floor(p.x)), int(math.Floor(p.y))
	opacity := mat.Opacity

	if radius < 0.75 || mat.Sprite == scene.SpriteDot {
		if cy >= rows {
			return
		}
		c := subCellFalloff(mat.Color, radius)
		if mat.Sprite == scene.SpriteDot {
			c = mat.Color
		}
		r.buf.AddLight(cx, cy, c.R*opacity, c.G*opacity, c.B*opacity)
		return
	}

	// Columns are narrower than rows, widen horizontally to keep the sprite round
	rx := radius / r.cellAspect
	x0, x1 := int(math.Floor(p.x-rx)), int(math.Ceil(p.x+rx))
	y0, y1 := int(math.Floor(p.y-radius)), int(math.Ceil(p.y+radius))
	y1 = min(y1, rows-1)

	for y := max(y0, 0); y <= y1; y++ {
		dy := (float64(y) + 0.5 - p.y) / radius
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - p.x) / rx
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= 1 {
				continue
			}
			c := SoftFalloff(mat.Color, d)
			r.buf.AddLight(x, y, c.R*opacity, c.G*opacity, c.B*opacity)
		}
	}
}

// drawLabel centers text on its projected anchor, each glyph depth-tested
func (r *Renderer) drawLabel(label scene.Label, camera *scene.Camera) {
	x, y, depth, ok := camera.Project(label.Anchor())
	if !ok {
		return
	}
	mat := label.Material()
	fg := FromColorful(mat.Color)

	text := label.Text()
	start := int(math.Floor(x)) - runewidth.StringWidth(text)/2
	row := int(math.Floor(y))
	d := depth - labelDepthOffset
	if !mat.DepthTest {
		d = 0
	}

	col := start
	for _, ch := range text {
		if ch != ' ' {
			r.buf.SetDepth(col, row, ch, fg, d, true)
		}
		col += runewidth.RuneWidth(ch)
	}
}

func (r *Renderer) drawHUD(text string, row int) {
	w, _ := r.buf.Size()
	for x := 0; x < w; x++ {
		r.buf.SetOverlay(x, row, ' ', r.hudFg, r.hudBg)
	}
	col := 1
	for _, ch := range text {
		if col >= w {
			break
		}
		r.buf.SetOverlay(col, row, ch, r.hudFg, r.hudBg)
		col += runewidth.RuneWidth(ch)
	}
}

// flush copies the buffer to the screen and shows it
func (r *Renderer) flush() {
	w, h := r.buf.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := r.buf.Get(x, y)
			style := tcell.StyleDefault.
				Foreground(c.Fg.Tcell()).
				Background(c.Bg.Tcell()).
				Bold(c.Bold)
			r.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	r.screen.Show()
}

// ScreenToCell converts a world point to a cell, for tests and hit checks
func ScreenToCell(camera *scene.Camera, p vmath.Vec3F) (int, int, bool) {
	x, y, _, ok := camera.Project(p)
	if !ok {
		return 0, 0, false
	}
	return int(math.Floor(x)), int(math.Floor(y)), true
}
