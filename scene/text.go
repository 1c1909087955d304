package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// Text is a greeting line centered on a world anchor
type Text struct {
	text     string
	anchor   vmath.Vec3F
	material Material
}

// NewText creates a depth-tested label
func NewText(text string, anchor vmath.Vec3F, color colorful.Color) *Text {
	return &Text{
		text:   text,
		anchor: anchor,
		material: Material{
			Color:     color,
			Opacity:   1,
			Blending:  BlendNormal,
			Sprite:    SpriteDot,
			DepthTest: true,
		},
	}
}

func (t *Text) Text() string        { return t.text }
func (t *Text) Anchor() vmath.Vec3F { return t.anchor }
func (t *Text) Material() Material  { return t.material }

// Greeting holds the three stacked text lines
type Greeting struct {
	Lines [3]string
	Color colorful.Color
}

// DefaultGreeting returns the stock birthday lines
func DefaultGreeting() Greeting {
	c, _ := colorful.Hex(constants.TextColor)
	return Greeting{
		Lines: [3]string{constants.GreetingLine1, constants.GreetingLine2, constants.GreetingName},
		Color: c,
	}
}

// Populate adds floor, greeting, table and cake to g
func Populate(g *Graph, light Lighting, greeting Greeting) {
	g.Add(NewFloor(light))

	heights := [3]float64{constants.TextLine1Y, constants.TextLine2Y, constants.TextLine3Y}
	for i, line := range greeting.Lines {
		if line == "" {
			continue
		}
		g.Add(NewText(line, vmath.Vec3F{Y: heights[i]}, greeting.Color))
	}

	g.Add(NewTable(light))
	cake, candles := NewCake(light)
	g.Add(cake)
	g.Add(candles)
}
