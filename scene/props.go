package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// Prop is a static, pre-lit point cloud (floor, table, cake)
type Prop struct {
	name     string
	points   []vmath.Vec3F
	colors   []colorful.Color
	material Material
}

func (p *Prop) Name() string             { return p.name }
func (p *Prop) Material() Material       { return p.material }
func (p *Prop) Points() []vmath.Vec3F    { return p.points }
func (p *Prop) Colors() []colorful.Color { return p.colors }

// propBuilder accumulates surface samples and lights them once
type propBuilder struct {
	light  Lighting
	points []vmath.Vec3F
	colors []colorful.Color
}

func (b *propBuilder) add(p, normal vmath.Vec3F, base colorful.Color) {
	b.points = append(b.points, p)
	b.colors = append(b.colors, b.light.Shade(base, normal))
}

func (b *propBuilder) build(name string, glyph rune, size float64) *Prop {
	return &Prop{
		name:   name,
		points: b.points,
		colors: b.colors,
		material: Material{
			Size:      size,
			Opacity:   1,
			Blending:  BlendNormal,
			Sprite:    SpriteDot,
			DepthTest: true,
			Glyph:     glyph,
		},
	}
}

// NewFloor builds a tiled square at FloorY, grout lines between tiles
func NewFloor(light Lighting) *Prop {
	b := &propBuilder{light: light}
	tileA := colorful.Color{R: 0.42, G: 0.40, B: 0.38}
	tileB := colorful.Color{R: 0.33, G: 0.31, B: 0.30}
	grout := colorful.Color{R: 0.12, G: 0.12, B: 0.13}
	up := vmath.Vec3F{Y: 1}

	n := constants.FloorSamples
	half := constants.FloorSize / 2
	step := constants.FloorSize / float64(n-1)
	tile := constants.FloorSize / constants.FloorTiles

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := -half + float64(i)*step
			z := -half + float64(j)*step

			// Tile-local coordinates in [0, 1)
			u := math.Mod((x+half)/tile, 1)
			v := math.Mod((z+half)/tile, 1)

			base := tileA
			if (int((x+half)/tile)+int((z+half)/tile))%2 == 1 {
				base = tileB
			}
			if u < 0.09 || v < 0.09 {
				base = grout
			}
			b.add(vmath.Vec3F{X: x, Y: constants.FloorY, Z: z}, up, base)
		}
	}
	return b.build("floor", '·', step)
}

// NewTable builds a round top on a single pedestal
func NewTable(light Lighting) *Prop {
	b := &propBuilder{light: light}
	wood := colorful.Color{R: 0.45, G: 0.28, B: 0.16}
	origin := vmath.Vec3F{X: constants.TableX, Y: constants.TableY, Z: constants.TableZ}

	const (
		topRadius = 9.0
		topHeight = 5.5
		legRadius = 1.2
	)

	// Top disc
	for r := 0.0; r <= topRadius; r += 1.0 {
		segments := max(int(2*math.Pi*r/1.0), 1)
		for s := 0; s < segments; s++ {
			a := 2 * math.Pi * float64(s) / float64(segments)
			p := vmath.V3FAdd(origin, vmath.Vec3F{X: r * math.Cos(a), Y: topHeight, Z: r * math.Sin(a)})
			b.add(p, vmath.Vec3F{Y: 1}, wood)
		}
	}

	// Pedestal
	for y := 0.0; y < topHeight; y += 0.5 {
		for s := 0; s < 8; s++ {
			a := 2 * math.Pi * float64(s) / 8
			normal := vmath.Vec3F{X: math.Cos(a), Z: math.Sin(a)}
			p := vmath.V3FAdd(origin, vmath.Vec3F{X: legRadius * normal.X, Y: y, Z: legRadius * normal.Z})
			b.add(p, normal, wood)
		}
	}
	return b.build("table", '▒', 1.0)
}

// NewCake builds a two-tier cake with candles; flames are returned as a separate additive cloud
func NewCake(light Lighting) (*Prop, *Prop) {
	b := &propBuilder{light: light}
	sponge := colorful.Color{R: 0.96, G: 0.80, B: 0.86}
	icing := colorful.Color{R: 1.0, G: 0.97, B: 0.94}
	candle := colorful.Color{R: 0.55, G: 0.75, B: 1.0}
	origin := vmath.Vec3F{X: constants.CakeX, Y: constants.CakeY, Z: constants.CakeZ}

	tiers := []struct{ radius, bottom, height float64 }{
		{radius: 4.5, bottom: 0, height: 2.5},
		{radius: 3.0, bottom: 2.5, height: 2.0},
	}
	for _, t := range tiers {
		segments := int(2 * math.Pi * t.radius / 0.8)
		for y := t.bottom; y < t.bottom+t.height; y += 0.6 {
			for s := 0; s < segments; s++ {
				a := 2 * math.Pi * float64(s) / float64(segments)
				normal := vmath.Vec3F{X: math.Cos(a), Z: math.Sin(a)}
				p := vmath.V3FAdd(origin, vmath.Vec3F{X: t.radius * normal.X, Y: y, Z: t.radius * normal.Z})
				b.add(p, normal, sponge)
			}
		}
		// Icing on the tier top
		for r := 0.0; r <= t.radius; r += 0.8 {
			ring := max(int(2*math.Pi*r/0.8), 1)
			for s := 0; s < ring; s++ {
				a := 2 * math.Pi * float64(s) / float64(ring)
				p := vmath.V3FAdd(origin, vmath.Vec3F{X: r * math.Cos(a), Y: t.bottom + t.height, Z: r * math.Sin(a)})
				b.add(p, vmath.Vec3F{Y: 1}, icing)
			}
		}
	}

	flames := &propBuilder{light: Lighting{Ambient: 1}}
	flame := colorful.Color{R: 1.0, G: 0.75, B: 0.3}
	top := tiers[len(tiers)-1].bottom + tiers[len(tiers)-1].height
	for c := 0; c < 5; c++ {
		a := 2 * math.Pi * float64(c) / 5
		base := vmath.V3FAdd(origin, vmath.Vec3F{X: 1.8 * math.Cos(a), Y: top, Z: 1.8 * math.Sin(a)})
		for y := 0.0; y < 1.5; y += 0.5 {
			b.add(vmath.V3FAdd(base, vmath.Vec3F{Y: y}), vmath.Vec3F{X: math.Cos(a), Z: math.Sin(a)}, candle)
		}
		flames.points = append(flames.points, vmath.V3FAdd(base, vmath.Vec3F{Y: 1.9}))
		flames.colors = append(flames.colors, flame)
	}

	body := b.build("cake", '▓', 0.8)
	glow := flames.build("candles", '*', 0.6)
	glow.material.Blending = BlendAdditive
	glow.material.Sprite = SpriteSoft
	glow.material.Color = flame
	glow.material.DepthTest = false
	return body, glow
}
