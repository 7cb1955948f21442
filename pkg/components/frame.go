package components

import (
	"strings"
)

// frameChars holds the box-drawing characters for one border style.
type frameChars struct {
	TopLeft, TopRight       string
	BottomLeft, BottomRight string
	Horizontal, Vertical    string
}

var (
	roundedChars = frameChars{
		TopLeft: "╭", TopRight: "╮",
		BottomLeft: "╰", BottomRight: "╯",
		Horizontal: "─", Vertical: "│",
	}
	heavyChars = frameChars{
		TopLeft: "┏", TopRight: "┓",
		BottomLeft: "┗", BottomRight: "┛",
		Horizontal: "━", Vertical: "┃",
	}
)

// FrameStyle controls the chrome around one widget.
type FrameStyle struct {
	Title string

	// Badge appears right-aligned in the top border, typically the symbol
	// group marker like "●A".
	Badge      string
	BadgeColor string // hex color for the badge

	// Focused switches to heavy border characters and FocusColor.
	Focused     bool
	BorderColor string // hex color for unfocused borders
	FocusColor  string // hex color for the focused border
	TitleColor  string // hex color for the title text
}

// RenderFrame renders content inside a bordered widget frame of the given
// outer dimensions. Content lines are truncated or padded to the interior
// width and the interior is filled with blank lines when content runs short.
// Returns "" when the frame cannot fit its own borders.
func RenderFrame(content string, width, height int, style FrameStyle) string {
	if width < 2 || height < 2 {
		return ""
	}

	chars := roundedChars
	borderHex := style.BorderColor
	if style.Focused {
		chars = heavyChars
		if style.FocusColor != "" {
			borderHex = style.FocusColor
		}
	}
	pre := Color(borderHex)
	suf := ""
	if pre != "" {
		suf = Reset()
	}

	interior := width - 2
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}

	var buf strings.Builder
	buf.WriteString(pre + chars.TopLeft + suf)
	buf.WriteString(renderTopBar(style, chars.Horizontal, interior, pre, suf))
	buf.WriteString(pre + chars.TopRight + suf)
	buf.WriteByte('\n')

	for i := 0; i < height-2; i++ {
		buf.WriteString(pre + chars.Vertical + suf)
		if i < len(lines) {
			buf.WriteString(Fit(lines[i], interior))
		} else {
			buf.WriteString(strings.Repeat(" ", interior))
		}
		buf.WriteString(pre + chars.Vertical + suf)
		buf.WriteByte('\n')
	}

	buf.WriteString(pre + chars.BottomLeft)
	buf.WriteString(strings.Repeat(chars.Horizontal, interior))
	buf.WriteString(chars.BottomRight + suf)

	return buf.String()
}

// renderTopBar builds the top border segment between the corners, embedding
// the title on the left and the badge on the right.
func renderTopBar(style FrameStyle, hChar string, barWidth int, pre, suf string) string {
	if barWidth <= 0 {
		return ""
	}

	title := ""
	if style.Title != "" {
		// Room for one border char each side plus the flanking spaces.
		maxTitle := barWidth - 4
		if style.Badge != "" {
			maxTitle -= VisibleLen(style.Badge) + 3
		}
		if maxTitle > 0 {
			t := TruncateWithTail(style.Title, maxTitle, "…")
			if style.TitleColor != "" {
				t = Colorize(t, style.TitleColor)
			}
			if style.Focused {
				t = Bold(t)
			}
			title = " " + t + " "
		}
	}

	badge := ""
	if style.Badge != "" && barWidth >= VisibleLen(style.Badge)+4 {
		b := style.Badge
		if style.BadgeColor != "" {
			b = Colorize(b, style.BadgeColor)
		}
		badge = " " + b + " "
	}

	fill := barWidth - VisibleLen(title) - VisibleLen(badge)
	if fill < 0 {
		return pre + strings.Repeat(hChar, barWidth) + suf
	}

	left := 0
	if title != "" {
		left = 1
		fill--
	}

	var buf strings.Builder
	buf.WriteString(pre + strings.Repeat(hChar, left) + suf)
	buf.WriteString(title)
	buf.WriteString(pre + strings.Repeat(hChar, fill) + suf)
	buf.WriteString(badge)
	return buf.String()
}
