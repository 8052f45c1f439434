package text

import (
	"fmt"
	"strconv"
)

// Color is a 24-bit RGB text color.
type Color uint32

const (
	Black       Color = 0x000000
	DarkBlue    Color = 0x0000aa
	DarkGreen   Color = 0x00aa00
	DarkAqua    Color = 0x00aaaa
	DarkRed     Color = 0xaa0000
	DarkPurple  Color = 0xaa00aa
	Gold        Color = 0xffaa00
	Gray        Color = 0xaaaaaa
	DarkGray    Color = 0x555555
	Blue        Color = 0x5555ff
	Green       Color = 0x55ff55
	Aqua        Color = 0x55ffff
	Red         Color = 0xff5555
	LightPurple Color = 0xff55ff
	Yellow      Color = 0xffff55
	White       Color = 0xffffff
)

var namedColors = map[string]Color{
	"black":        Black,
	"dark_blue":    DarkBlue,
	"dark_green":   DarkGreen,
	"dark_aqua":    DarkAqua,
	"dark_red":     DarkRed,
	"dark_purple":  DarkPurple,
	"gold":         Gold,
	"gray":         Gray,
	"dark_gray":    DarkGray,
	"blue":         Blue,
	"green":        Green,
	"aqua":         Aqua,
	"red":          Red,
	"light_purple": LightPurple,
	"yellow":       Yellow,
	"white":        White,
}

var colorNames = func() map[Color]string {
	m := make(map[Color]string, len(namedColors))
	for name, c := range namedColors {
		m[c] = name
	}
	return m
}()

// ParseHexColor parses "#rrggbb".
func ParseHexColor(s string) (Color, bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, false
	}
	return Color(v), true
}

// NamedColor resolves one of the 16 legacy color names.
func NamedColor(name string) (Color, bool) {
	c, ok := namedColors[name]
	return c, ok
}

// ParseColor tries hex first, then the named table.
func ParseColor(s string) (Color, error) {
	if c, ok := ParseHexColor(s); ok {
		return c, nil
	}
	if c, ok := NamedColor(s); ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xffffff)
}

// Name returns the legacy name when c equals a named color.
func (c Color) Name() (string, bool) {
	name, ok := colorNames[c]
	return name, ok
}

// String is the wire form: the legacy name if there is one, else hex.
func (c Color) String() string {
	if name, ok := c.Name(); ok {
		return name
	}
	return c.Hex()
}
