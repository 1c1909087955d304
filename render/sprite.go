package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Soft sprite gradient stops, normalized radius
const (
	softCoreEnd  = 0.2 // White core fades into the tint by here
	softTintEnd  = 0.4 // Tint holds until here, then fades to black at the rim
	minFootprint = 0.35
)

// SoftFalloff returns the additive contribution of a soft sprite at normalized radius d
// d=0 is the white core, d>=1 contributes nothing
func SoftFalloff(tint colorful.Color, d float64) colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	switch {
	case d < 0:
		return white
	case d < softCoreEnd:
		return white.BlendRgb(tint, d/softCoreEnd)
	case d < softTintEnd:
		return tint
	case d < 1:
		return tint.BlendRgb(colorful.Color{}, (d-softTintEnd)/(1-softTintEnd))
	default:
		return colorful.Color{}
	}
}

// subCellFalloff approximates a sprite smaller than one cell
// The sprite is averaged over its footprint and weighted by coverage, with a floor so far bursts stay visible
func subCellFalloff(tint colorful.Color, radiusRows float64) colorful.Color {
	coverage := radiusRows * radiusRows * 4
	coverage = max(coverage, minFootprint)
	coverage = min(coverage, 1)
	avg := SoftFalloff(tint, softTintEnd)
	return colorful.Color{R: avg.R * coverage, G: avg.G * coverage, B: avg.B * coverage}
}
