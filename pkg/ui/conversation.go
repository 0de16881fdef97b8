package ui

import (
	"fmt"
	"strings"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/attachment"
	"urcloud_chat/pkg/chat"
	"urcloud_chat/pkg/render"
	"urcloud_chat/pkg/ui/components/utils"
	"urcloud_chat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

const (
	userLabel        = "あなた"
	modelLabel       = "AI"
	thinkingText     = "考え中"
	suggestionsTitle = "続けて追加の質問も可能です"

	// border plus horizontal padding of the bubble styles
	bubbleFrame = 4
	minBubble   = 12
	chipPadding = 2
)

// conversationState is what renderConversation needs from the session.
type conversationState struct {
	Messages        []ai.Message
	Loading         bool
	ShowSuggestions bool
	ThinkingFrame   int
}

// renderConversation lays out all messages for the viewport at the given width.
func renderConversation(state conversationState, width int) string {
	if width < minBubble {
		width = minBubble
	}

	var blocks []string
	for _, msg := range state.Messages {
		switch {
		case msg.Role == ai.RoleUser:
			blocks = append(blocks, renderUserMessage(msg, width))
		case msg.IsError:
			blocks = append(blocks, renderModelMessage(msg, width, styles.ErrorBubbleStyle))
		default:
			blocks = append(blocks, renderModelMessage(msg, width, styles.ModelBubbleStyle))
		}
	}

	if state.Loading {
		blocks = append(blocks, renderThinking(state.ThinkingFrame))
	} else if state.ShowSuggestions {
		blocks = append(blocks, renderSuggestions(width))
	}

	return strings.Join(blocks, "\n\n")
}

func renderUserMessage(msg ai.Message, width int) string {
	bubbleWidth := width * 4 / 5
	if bubbleWidth < minBubble {
		bubbleWidth = width
	}
	inner := bubbleWidth - bubbleFrame

	var parts []string
	if msg.Content != "" {
		parts = append(parts, styles.TextStyle.Render(render.Text(msg.Content, inner)))
	}
	for _, att := range msg.Attachments {
		parts = append(parts, styles.AttachmentChipStyle.Render(utils.TruncateToWidth(attachmentLabel(att), inner-chipPadding)))
	}

	label := styles.RoleStyle.Render(messageLabel(userLabel, msg))
	bubble := styles.UserBubbleStyle.Render(strings.Join(parts, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, label, bubble))
}

func renderModelMessage(msg ai.Message, width int, style lipgloss.Style) string {
	inner := width - bubbleFrame - 2
	if inner < minBubble-bubbleFrame {
		inner = minBubble - bubbleFrame
	}

	body := render.HTML(msg.Content, inner)
	if sources := render.Sources(msg.Grounding, inner); sources != "" {
		body += "\n\n" + sources
	}

	label := styles.RoleStyle.Render(messageLabel(modelLabel, msg))
	return lipgloss.JoinVertical(lipgloss.Left, label, style.Render(body))
}

func renderThinking(frame int) string {
	dots := strings.Repeat(".", frame%4)
	text := styles.TextMutedStyle.Render(thinkingText + dots + strings.Repeat(" ", 3-len(dots)))
	return lipgloss.JoinVertical(lipgloss.Left, styles.RoleStyle.Render(modelLabel), styles.ModelBubbleStyle.Render(text))
}

func renderSuggestions(width int) string {
	lines := []string{styles.TextMutedStyle.Render(suggestionsTitle)}
	for i, s := range chat.Suggestions {
		key := styles.ChipStyle.Render(fmt.Sprintf("Alt+%d", i+1))
		lines = append(lines, "  "+key+" "+styles.TextStyle.Render(utils.TruncateToWidth(s.Icon+" "+s.Label, width-11)))
	}
	return strings.Join(lines, "\n")
}

func messageLabel(name string, msg ai.Message) string {
	if msg.Timestamp.IsZero() {
		return name
	}
	return name + " · " + msg.Timestamp.Format("15:04")
}

func attachmentLabel(att ai.Attachment) string {
	name := att.Name
	if name == "" {
		name = "添付ファイル"
	}
	return fmt.Sprintf("%s %s (%s)", attachment.Icon(att.MimeType), name, attachment.Subtype(att.MimeType))
}
