package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// EyePalette is the set of eye colours the keyboard cycles through.
var EyePalette = []string{"#66c36a", "#4aa3df", "#e0a030", "#d9534f", "#a070d0", "#f2f2f2"}

// ParseHex decodes a #rrggbb colour.
func ParseHex(s string) (color.NRGBA, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("ui: not a #rrggbb colour: %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("ui: not a #rrggbb colour: %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// NextEyeColor returns the palette entry after cur, or the first one when
// cur is not in the palette.
func NextEyeColor(cur string) string {
	for i, c := range EyePalette {
		if strings.EqualFold(c, cur) {
			return EyePalette[(i+1)%len(EyePalette)]
		}
	}
	return EyePalette[0]
}
