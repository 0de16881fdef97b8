package statusbar

import (
	"strings"

	"urcloud_chat/pkg/ui/components/utils"
	"urcloud_chat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	SendHint   = "Shift+Enter / Ctrl+S で送信"
	KeysHint   = "Ctrl+O 添付 · Ctrl+X 添付削除 · Ctrl+Y コピー · PgUp/PgDn スクロール · Ctrl+C 終了"
	WarningMsg = "AIは間違いを犯す可能性があります。必ず専門家（税理士・弁護士等）に確認してください。"
)

// Height is the number of lines Render produces.
const Height = 2

// StatusBarView renders the footer under the input box
type StatusBarView struct {
	message string
	isError bool
	canSend bool
	width   int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{width: 80}
}

// SetMessage sets a notice that replaces the key hints until cleared.
func (s *StatusBarView) SetMessage(msg string, isError bool) {
	s.message = strings.TrimSpace(msg)
	s.isError = isError
}

// ClearMessage drops the current notice.
func (s *StatusBarView) ClearMessage() {
	s.message = ""
	s.isError = false
}

// Message returns the current notice.
func (s *StatusBarView) Message() string {
	return s.message
}

// SetCanSend highlights the send hint.
func (s *StatusBarView) SetCanSend(canSend bool) {
	s.canSend = canSend
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the two footer lines
func (s *StatusBarView) Render() string {
	width := s.width
	if width < 10 {
		width = 10
	}

	var first string
	switch {
	case s.message != "" && s.isError:
		first = styles.ErrorStyle.Render(utils.TruncateToWidth(s.message, width))
	case s.message != "":
		first = noticeStyle.Render(utils.TruncateToWidth(s.message, width))
	default:
		sendStyle := styles.FooterStyle
		if s.canSend {
			sendStyle = sendActiveStyle
		}
		hint := utils.TruncateToWidth(SendHint, width)
		rest := utils.TruncateToWidth(" · "+KeysHint, width-ansi.StringWidth(hint))
		first = sendStyle.Render(hint) + styles.FooterStyle.Render(rest)
	}

	second := styles.FooterStyle.Render(utils.TruncateToWidth(WarningMsg, width))
	return first + "\n" + second
}

var (
	sendActiveStyle = lipgloss.NewStyle().
			Foreground(styles.ColorAccent).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(styles.ColorSuccess)
)
