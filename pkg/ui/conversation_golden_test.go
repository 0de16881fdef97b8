package ui

import (
	"strings"
	"testing"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/chat"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

// normalizeOutput removes styling and the padding lipgloss adds after the
// last visible cell so goldens stay readable.
func normalizeOutput(output string) string {
	lines := strings.Split(ansi.Strip(output), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func TestRenderConversation_Golden(t *testing.T) {
	state := conversationState{
		Messages: []ai.Message{
			{ID: chat.GreetingID, Role: ai.RoleModel, Content: chat.GreetingHTML},
			{
				Role:        ai.RoleUser,
				Content:     "インボイスの登録について",
				Attachments: []ai.Attachment{{MimeType: "application/pdf", Name: "請求書.pdf"}},
			},
			{
				Role:    ai.RoleModel,
				Content: "<p>登録申請書を提出します。</p>",
				Grounding: &ai.GroundingMetadata{
					Sources: []ai.GroundingSource{{URI: "https://www.nta.go.jp/", Title: "国税庁"}},
				},
			},
		},
		ShowSuggestions: true,
	}

	golden.RequireEqual(t, []byte(normalizeOutput(renderConversation(state, 100))))
}
