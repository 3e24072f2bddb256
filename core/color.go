package core

import "fmt"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack    = RGB{0, 0, 0}
	RGBRoad     = RGB{255, 255, 255}
	RGBObstacle = RGB{34, 139, 34}
)

// DefaultPalette is the vehicle color rotation
var DefaultPalette = []RGB{
	{0, 186, 153},
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{254, 149, 0},
	{64, 100, 55},
	{206, 100, 50},
	{176, 100, 50},
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
