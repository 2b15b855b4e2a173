package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color is a packed 0xRRGGBB value
type Color uint32

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Tcell converts to a true-color terminal color
func (c Color) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}

// Scale multiplies each channel by k, saturating at 255
func (c Color) Scale(k float64) Color {
	if k <= 0 {
		return 0
	}
	ch := func(v uint8) uint8 {
		s := float64(v) * k
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return RGB(ch(c.R()), ch(c.G()), ch(c.B()))
}

// Blend interpolates from a to b, t clamped to [0,1]
func Blend(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return RGB(mix(a.R(), b.R()), mix(a.G(), b.G()), mix(a.B(), b.B()))
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts "#rrggbb", "0xrrggbb" or a decimal integer
// TOML integer literals such as 0xff00ff reach here in decimal form
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	if s == "" {
		return fmt.Errorf("%w: empty color", ErrInvalidTheme)
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return fmt.Errorf("%w: color %q: %v", ErrInvalidTheme, string(text), err)
	}
	if v > 0xffffff {
		return fmt.Errorf("%w: color %q out of range", ErrInvalidTheme, string(text))
	}
	*c = Color(v)
	return nil
}
