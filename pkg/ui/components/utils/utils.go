package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// TruncateToWidth cuts text to at most width display cells, ending in "…"
// when something was dropped.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return TrimToWidth(text, width)
	}
	return TrimToWidth(text, width-1) + ellipsis
}

// TrimToWidth trims string to width without ellipsis
func TrimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}

// noLineStart holds punctuation that must not begin a wrapped row.
const noLineStart = "、。，．）」』】？！"

// WrapToWidth splits text into rows of at most width display cells.
// Japanese text has no spaces to break on, so this wraps per rune. When a row
// would start with closing punctuation, the preceding rune moves down with it.
func WrapToWidth(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var rows []string
	var row []rune
	current := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if current+rw > width && current > 0 {
			var carry []rune
			if strings.ContainsRune(noLineStart, r) && len(row) > 1 {
				carry = []rune{row[len(row)-1]}
				row = row[:len(row)-1]
			}
			rows = append(rows, string(row))
			row = carry
			current = runewidth.StringWidth(string(row))
		}
		row = append(row, r)
		current += rw
	}
	if len(row) > 0 || len(rows) == 0 {
		rows = append(rows, string(row))
	}
	return rows
}
