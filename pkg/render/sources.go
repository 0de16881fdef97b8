package render

import (
	"fmt"
	"strings"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

// SourcesTitle heads the list of grounding sources.
const SourcesTitle = "参考情報"

// Sources renders the grounding sources of a reply as a numbered list.
// It returns an empty string when there is nothing to show.
func Sources(g *ai.GroundingMetadata, width int) string {
	if !g.HasSources() {
		return ""
	}
	if width < 8 {
		width = 8
	}

	lines := []string{styles.SubheadingStyle.Render("🔗 " + SourcesTitle)}
	for i, src := range g.Sources {
		marker := fmt.Sprintf("%d. ", i+1)
		pad := strings.Repeat(" ", len(marker))
		title := ansi.Truncate(src.Title, width-len(marker), "…")
		lines = append(lines, marker+styles.TextStyle.Render(title))
		if src.URI != src.Title {
			lines = append(lines, pad+styles.LinkStyle.Render(ansi.Truncate(src.URI, width-len(marker), "…")))
		}
	}
	return strings.Join(lines, "\n")
}
