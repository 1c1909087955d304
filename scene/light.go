package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/birthday-burst/constants"
	"github.com/lixenwraith/birthday-burst/vmath"
)

// DirectionalLight shines from Position toward the origin
type DirectionalLight struct {
	Position  vmath.Vec3F
	Intensity float64
}

// Lighting is an ambient term plus directional lights, evaluated with Lambert shading
type Lighting struct {
	Ambient     float64
	Directional []DirectionalLight
}

// DefaultLighting returns four lights at the corners above the scene, brighter in front
func DefaultLighting() Lighting {
	d := constants.DirectionalLightDist
	return Lighting{
		Ambient: constants.AmbientIntensity,
		Directional: []DirectionalLight{
			{Position: vmath.Vec3F{X: d, Y: d, Z: d}, Intensity: constants.KeyLightIntensity},
			{Position: vmath.Vec3F{X: -d, Y: d, Z: d}, Intensity: constants.KeyLightIntensity},
			{Position: vmath.Vec3F{X: d, Y: d, Z: -d}, Intensity: constants.BackLightIntensity},
			{Position: vmath.Vec3F{X: -d, Y: d, Z: -d}, Intensity: constants.BackLightIntensity},
		},
	}
}

// Irradiance returns the total light factor for a surface normal
func (l Lighting) Irradiance(normal vmath.Vec3F) float64 {
	n := vmath.V3FNormalize(normal)
	total := l.Ambient
	for _, d := range l.Directional {
		dir := vmath.V3FNormalize(d.Position)
		total += math.Max(0, vmath.V3FDot(n, dir)) * d.Intensity
	}
	return total
}

// Shade applies irradiance to base, compressing into range so bright areas keep hue
func (l Lighting) Shade(base colorful.Color, normal vmath.Vec3F) colorful.Color {
	e := l.Irradiance(normal)
	// Reinhard-style tone map, irradiance 1 leaves base unchanged
	k := e / (1 + e) * 2
	return colorful.Color{R: base.R * k, G: base.G * k, B: base.B * k}.Clamped()
}
