package particle

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/constants"
)

// PastelColor draws a soft color: any hue, saturation 25–95%, lightness 85–95%
func PastelColor(rng *rand.Rand) colorful.Color {
	h := rng.Float64() * 360
	s := constants.PastelSaturationMin + (constants.PastelSaturationMax-constants.PastelSaturationMin)*rng.Float64()
	l := constants.PastelLightnessMin + (constants.PastelLightnessMax-constants.PastelLightnessMin)*rng.Float64()
	return colorful.Hsl(h, s, l).Clamped()
}

// ParsePalette converts hex strings ("#rrggbb") to colors
func ParsePalette(hex []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", h, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// DefaultPalette returns the built-in named colors
func DefaultPalette() []colorful.Color {
	p, err := ParsePalette(constants.Palette)
	if err != nil {
		panic(err)
	}
	return p
}
