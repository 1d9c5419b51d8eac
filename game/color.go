package game

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/oerror"
)

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ParseHexColor parses a colour of the form "#rrggbb".
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, oerror.New(ErrorInvalidHexColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, oerror.New(ErrorInvalidHexColor, s)
	}
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// MustParseHexColor parses a colour, falling back to black if it is malformed.
func MustParseHexColor(s string) Color {
	c, _ := ParseHexColor(s)
	return c
}

// Lerp linearly interpolates between c and to by t.
func (c Color) Lerp(to Color, t float32) Color {
	t = mgl32.Clamp(t, 0, 1)
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// Scale multiplies every component of c by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// IsZero returns true for black.
func (c Color) IsZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// RGBA8 returns the colour as 8-bit components with full alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	conv := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return conv(c.R), conv(c.G), conv(c.B), 255
}
