package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/traffic-grid/core"
)

// Lane tints keep the two axes distinguishable on the white road base
var (
	tintHorizontal = colorful.Color{R: 1, G: 0.91, B: 0.69}
	tintVertical   = colorful.Color{R: 0.78, G: 0.88, B: 1}
	tintBackward   = colorful.Color{R: 0, G: 0, B: 0}

	densityLow  = colorful.Color{R: 0.2, G: 0.8, B: 0.3}
	densityHigh = colorful.Color{R: 0.9, G: 0.15, B: 0.1}
)

const (
	laneTint     = 0.3
	backwardDark = 0.08
)

// laneShades is indexed by [axis][direction == Backward]
var laneShades = buildLaneShades()

func buildLaneShades() [2][2]core.RGB {
	var out [2][2]core.RGB
	base := toColorful(core.RGBRoad)
	for axis, tint := range []colorful.Color{tintHorizontal, tintVertical} {
		shade := base.BlendLab(tint, laneTint)
		out[axis][0] = fromColorful(shade)
		out[axis][1] = fromColorful(shade.BlendLab(tintBackward, backwardDark))
	}
	return out
}

// LaneShade returns the background of an empty road cell
func LaneShade(c core.Cell) core.RGB {
	axis := 0
	if c.Axis() == core.Vertical {
		axis = 1
	}
	dir := 0
	if c.Direction() == core.Backward {
		dir = 1
	}
	return laneShades[axis][dir]
}

// DensityColor maps road occupancy in [0,1] onto a green to red ramp
func DensityColor(d float64) core.RGB {
	d = min(max(d, 0), 1)
	return fromColorful(densityLow.BlendHcl(densityHigh, d))
}

func toColorful(c core.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) core.RGB {
	r, g, b := c.Clamped().RGB255()
	return core.RGB{R: r, G: g, B: b}
}
