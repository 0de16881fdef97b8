package disclaimer

import (
	"strings"

	"urcloud_chat/pkg/chat"
	"urcloud_chat/pkg/ui/components/utils"
	"urcloud_chat/pkg/ui/styles"
	"urcloud_chat/pkg/version"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const (
	AcceptHint = "[y / Enter] 同意して開始    [q] 終了"
	maxInner   = 64
	minInner   = 20
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(styles.ColorBorder)
	keyStyle    = lipgloss.NewStyle().Foreground(styles.ColorAccent).Bold(true)
)

// Render returns the disclaimer box centered in a width x height area.
func Render(width, height int) string {
	box := Box(width - 4)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Box renders the disclaimer card with inner width capped to fit in width.
func Box(width int) string {
	boxWidth := width - 2
	if boxWidth > maxInner {
		boxWidth = maxInner
	}
	if boxWidth < minInner {
		boxWidth = minInner
	}

	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return borderStyle.Render("│") + content + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}
	centered := func(text string, style lipgloss.Style) string {
		text = utils.TruncateToWidth(text, boxWidth)
		w := runewidth.StringWidth(text)
		left := (boxWidth - w) / 2
		return makeLine(strings.Repeat(" ", left)+style.Render(text), left+w)
	}

	top := borderStyle.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := borderStyle.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	lines := []string{top, empty, centered(chat.DisclaimerTitle, styles.TitleStyle), empty}

	for _, item := range chat.DisclaimerLines {
		for i, row := range utils.WrapToWidth(item, boxWidth-6) {
			prefix := "    "
			if i == 0 {
				prefix = "  • "
			}
			lines = append(lines, makeLine(prefix+styles.TextStyle.Render(row), runewidth.StringWidth(prefix+row)))
		}
	}

	lines = append(lines, empty, centered(AcceptHint, keyStyle), empty)
	lines = append(lines, centered(version.Summary(), styles.TextMutedStyle))
	lines = append(lines, bottom)

	return strings.Join(lines, "\n")
}
