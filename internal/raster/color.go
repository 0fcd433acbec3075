package raster

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel selects one component of a ColorRGB.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists every channel in R, G, B order.
var Channels = []Channel{Red, Green, Blue}

func (ch Channel) String() string {
	switch ch {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(ch))
	}
}

// ColorRGB represents an RGB color with 8-bit components and no alpha.
//
// ColorRGB implements color.Color as a fully opaque color, so it can be
// passed directly to image.Image setters.
type ColorRGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Black is the fill color of a freshly allocated output raster.
var Black = ColorRGB{}

// ParseHex parses a color string like "#FF0000", "ff0000" or "#f00".
func ParseHex(s string) (ColorRGB, error) {
	if s == "" {
		return ColorRGB{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return ColorRGB{}, fmt.Errorf("invalid hex color length %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorRGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ColorRGB{R: r, G: g, B: b}, nil
}

// RGBA implements color.Color.
func (c ColorRGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Channel returns the value of a single component.
func (c ColorRGB) Channel(ch Channel) int {
	switch ch {
	case Red:
		return int(c.R)
	case Green:
		return int(c.G)
	case Blue:
		return int(c.B)
	default:
		panic(fmt.Sprintf("raster: invalid channel %d", int(ch)))
	}
}

// ManhattanDistance returns |ΔR| + |ΔG| + |ΔB|, in the range 0-765.
func (c ColorRGB) ManhattanDistance(other ColorRGB) int {
	d := 0
	for _, ch := range Channels {
		d += absDiff(c.Channel(ch), other.Channel(ch))
	}
	return d
}

// DeltaE returns the CIEDE2000 perceptual distance between two colors.
// Values below roughly 0.01 are indistinguishable; 1.0 is a large difference.
func (c ColorRGB) DeltaE(other ColorRGB) float64 {
	return c.colorful().DistanceCIEDE2000(other.colorful())
}

// Hex returns the color in "#RRGGBB" form.
func (c ColorRGB) Hex() string {
	return c.colorful().Hex()
}

func (c ColorRGB) String() string {
	return fmt.Sprintf("%dR, %dG, %dB", c.R, c.G, c.B)
}

func (c ColorRGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
