package theme

import (
	"math"
	"strconv"
	"strings"
)

// Adapt converts all hex colors in a theme to 256-color ANSI codes if the
// terminal color depth is less than 24-bit. Returns the theme unchanged if
// the terminal supports 24-bit color (colorDepth >= 24).
func Adapt(t Theme, colorDepth int) Theme {
	if colorDepth >= 24 {
		return t
	}

	for _, field := range []*string{
		&t.Background, &t.Foreground, &t.Dim, &t.Accent,
		&t.Border, &t.BorderFocus, &t.Title,
		&t.PriceUp, &t.PriceDown, &t.PriceFlat,
		&t.ChartLine, &t.ChartGrid,
		&t.StatusOK, &t.StatusWarn, &t.StatusError,
	} {
		*field = to256Color(*field)
	}

	return t
}

// to256Color converts a hex color string (e.g. "#ff5500") to the nearest
// 256-color ANSI index, returned as a string like "196". Returns the original
// string unchanged if parsing fails.
func to256Color(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}

	// The candidate can come from the 6x6x6 cube (16-231) or the 24-step
	// grayscale ramp (232-255). Pick whichever is closer.
	cubeIdx := nearestCubeIndex(r, g, b)
	grayIdx := nearestGray(r, g, b)

	cr, cg, cb := cubeRGB(cubeIdx)
	gr, gg, gb := grayRGB(grayIdx)

	idx := cubeIdx
	if colorDistance(r, g, b, gr, gg, gb) < colorDistance(r, g, b, cr, cg, cb) {
		idx = grayIdx
	}

	return strconv.Itoa(idx)
}

// nearestCubeIndex finds the nearest color in the 6x6x6 color cube.
func nearestCubeIndex(r, g, b uint8) int {
	return 16 + 36*nearestCubeComponent(r) + 6*nearestCubeComponent(g) + nearestCubeComponent(b)
}

// cubeLevels are the channel values used by the 6x6x6 cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// nearestCubeComponent maps a 0-255 value to the nearest 6-level cube index.
func nearestCubeComponent(v uint8) int {
	best := 0
	bestDist := math.MaxInt32
	for i, lv := range cubeLevels {
		d := int(v) - int(lv)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// nearestGray finds the nearest color in the 24-step grayscale ramp
// (indices 232-255, values 8, 18, ..., 238).
func nearestGray(r, g, b uint8) int {
	gray := (int(r) + int(g) + int(b)) / 3
	idx := (gray - 8 + 5) / 10
	if idx < 0 {
		idx = 0
	}
	if idx > 23 {
		idx = 23
	}
	return 232 + idx
}

// cubeRGB converts a cube index (16-231) back to RGB channels.
func cubeRGB(idx int) (r, g, b uint8) {
	idx -= 16
	return cubeLevels[idx/36], cubeLevels[(idx%36)/6], cubeLevels[idx%6]
}

// grayRGB converts a grayscale index (232-255) back to RGB channels.
func grayRGB(idx int) (r, g, b uint8) {
	v := uint8(8 + (idx-232)*10)
	return v, v, v
}

// colorDistance is the Euclidean distance between two RGB colors.
func colorDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// parseHex parses "#RRGGBB" or "RRGGBB" into channel values.
func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
