package layout

import "strings"

// Average glyph advance as a fraction of the font size, in points.
// Good enough for wrapping freeform notes; backends never re-wrap.
const avgGlyphEm = 0.5

const mmPerPoint = 0.3528

// wrapText greedily wraps s into lines no wider than width
// millimeters at the given font size, using a rune-count estimate of
// line width. Explicit newlines are preserved as paragraph breaks.
func wrapText(s string, width, fontSize float64) []string {
	maxRunes := int(width / (fontSize * avgGlyphEm * mmPerPoint))
	if maxRunes < 1 {
		maxRunes = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxRunes)...)
	}
	return lines
}

func wrapParagraph(p string, maxRunes int) []string {
	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len([]rune(word)) > maxRunes {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:maxRunes]))
			word = string(r[maxRunes:])
		}
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= maxRunes:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
