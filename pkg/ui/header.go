package ui

import (
	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/ui/components/utils"
	"urcloud_chat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const (
	headerHeight = 3
	logoText     = "UC"
	subtitleText = "税務・会計・経理・法務・労務相談チャット"
)

// renderHeader draws the two header lines plus the bottom rule.
func renderHeader(width int, modelName string) string {
	inner := width - 2
	if inner < 10 {
		inner = 10
	}

	logo := styles.LogoStyle.Render(logoText)
	title := logo + " " + styles.TitleStyle.Render(ai.AssistantName)
	if modelName != "" {
		badge := styles.BadgeStyle.Render("Powered by " + modelName)
		if ansi.StringWidth(title)+1+ansi.StringWidth(badge) <= inner {
			title += " " + badge
		}
	}
	title = ansi.Truncate(title, inner, "…")

	sub := utils.TruncateToWidth(subtitleText+" · "+ai.ContactURL, inner)

	return styles.HeaderStyle.Width(width).Render(title + "\n" + styles.TextMutedStyle.Render(sub))
}
