package disclaimer

import (
	"strings"
	"testing"

	"urcloud_chat/pkg/chat"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func TestBox_ContainsTitleAndHint(t *testing.T) {
	out := ansi.Strip(Box(80))

	if !strings.Contains(out, chat.DisclaimerTitle) {
		t.Error("Expected disclaimer title")
	}
	if !strings.Contains(out, "同意して開始") {
		t.Error("Expected accept hint")
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╰") {
		t.Error("Expected box border characters")
	}
}

func TestBox_ContainsEveryDisclaimerLine(t *testing.T) {
	out := ansi.Strip(Box(200))
	flat := strings.NewReplacer("│", "", " ", "", "\n", "", "•", "").Replace(out)

	for _, line := range chat.DisclaimerLines {
		want := strings.ReplaceAll(line, " ", "")
		if !strings.Contains(flat, want) {
			t.Errorf("Expected disclaimer line %q", line)
		}
	}
}

func TestBox_LinesHaveEqualWidth(t *testing.T) {
	lines := strings.Split(ansi.Strip(Box(50)), "\n")
	want := runewidth.StringWidth(lines[0])
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w != want {
			t.Fatalf("line %d width %d, want %d: %q", i, w, want, line)
		}
	}
}
