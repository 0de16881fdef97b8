package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewStatusBarView(t *testing.T) {
	sb := NewStatusBarView()

	if sb == nil {
		t.Fatal("NewStatusBarView() returned nil")
	}
	if sb.width != 80 {
		t.Errorf("Expected default width 80, got %d", sb.width)
	}
}

func TestStatusBarView_DefaultHints(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(200)

	lines := strings.Split(ansi.Strip(sb.Render()), "\n")
	if len(lines) != Height {
		t.Fatalf("Expected %d lines, got %d", Height, len(lines))
	}
	if !strings.HasPrefix(lines[0], SendHint) {
		t.Errorf("Expected send hint first, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "Ctrl+O") {
		t.Errorf("Expected key hints, got %q", lines[0])
	}
	if lines[1] != WarningMsg {
		t.Errorf("Expected warning line, got %q", lines[1])
	}
}

func TestStatusBarView_SetMessage(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(120)

	sb.SetMessage("ファイルサイズは10MB以下にしてください。", true)

	rendered := ansi.Strip(sb.Render())
	if !strings.HasPrefix(rendered, "ファイルサイズは10MB以下にしてください。") {
		t.Fatalf("Expected notice on first line, got %q", rendered)
	}
	if strings.Contains(rendered, SendHint) {
		t.Error("Expected notice to replace the key hints")
	}

	sb.ClearMessage()
	if sb.Message() != "" {
		t.Fatal("Expected message to be cleared")
	}
	if !strings.HasPrefix(ansi.Strip(sb.Render()), SendHint) {
		t.Error("Expected hints after clearing")
	}
}

func TestStatusBarView_TruncatesToWidth(t *testing.T) {
	for _, width := range []int{12, 30, 60} {
		sb := NewStatusBarView()
		sb.SetWidth(width)
		sb.SetCanSend(true)

		for _, line := range strings.Split(sb.Render(), "\n") {
			if w := ansi.StringWidth(line); w > width {
				t.Fatalf("width %d: line exceeds width (%d): %q", width, w, ansi.Strip(line))
			}
		}
	}
}
