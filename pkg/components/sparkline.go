package components

import (
	"math"
	"strings"
)

// Sparkline block characters: 8 vertical levels per cell.
var sparkBlocks = [8]rune{
	'▁', '▂', '▃', '▄',
	'▅', '▆', '▇', '█',
}

// SparklineStyle configures the appearance of a price sparkline.
type SparklineStyle struct {
	// UpColor and DownColor select the line color by comparing the last
	// point against the first. FlatColor is used when they are equal.
	UpColor   string
	DownColor string
	FlatColor string
}

// Sparkline renders a series of values as Unicode block elements, colored by
// the direction of the move over the rendered window. Only the last width
// points are shown. Returns "" for empty data or non-positive width.
func Sparkline(data []float64, width int, style SparklineStyle) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	minY, maxY := points[0], points[0]
	for _, v := range points[1:] {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	var b strings.Builder
	span := maxY - minY
	for _, v := range points {
		idx := 3
		if span > 0 {
			idx = int(math.Round((v - minY) / span * 7))
			if idx > 7 {
				idx = 7
			}
		}
		b.WriteRune(sparkBlocks[idx])
	}

	hex := style.FlatColor
	switch {
	case points[len(points)-1] > points[0]:
		hex = style.UpColor
	case points[len(points)-1] < points[0]:
		hex = style.DownColor
	}
	if hex == "" {
		return b.String()
	}
	return Colorize(b.String(), hex)
}
