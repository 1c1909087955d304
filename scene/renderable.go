package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/vmath"
)

// Blending selects how a renderable composites onto the frame
type Blending uint8

const (
	BlendNormal   Blending = iota // Replace cell color when nearer
	BlendAdditive                 // Add light onto the cell
)

// Sprite selects the per-point footprint
type Sprite uint8

const (
	SpriteDot  Sprite = iota // Single glyph, no falloff
	SpriteSoft               // Radial gradient: white core, tinted mid, dark rim
)

// Material describes how a renderable's points are drawn
type Material struct {
	Color     colorful.Color
	Size      float64 // World units
	Opacity   float64 // 0..1
	Blending  Blending
	Sprite    Sprite
	DepthTest bool
	Glyph     rune // 0 selects the renderer default for the sprite
}

// Renderable is anything that can be added to the Graph
type Renderable interface {
	Material() Material
}

// PointCloud is a renderable drawn as individual points
type PointCloud interface {
	Renderable
	// Points returns world-space positions, valid until the next mutation
	Points() []vmath.Vec3F
}

// ShadedCloud is a point cloud with precomputed per-point colors (lit props)
type ShadedCloud interface {
	PointCloud
	Colors() []colorful.Color
}

// Label is a text string anchored at a world position and centered on it
type Label interface {
	Renderable
	Text() string
	Anchor() vmath.Vec3F
}

// Dirtier is implemented by renderables whose points change over time
// Renderers re-project dirty renderables and then mark them clean
type Dirtier interface {
	Dirty() bool
	MarkClean()
}
