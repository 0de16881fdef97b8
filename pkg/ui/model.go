package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/attachment"
	"urcloud_chat/pkg/chat"
	"urcloud_chat/pkg/render"
	"urcloud_chat/pkg/ui/components/disclaimer"
	"urcloud_chat/pkg/ui/components/statusbar"
	"urcloud_chat/pkg/ui/styles"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	inputHeight       = 3
	inputFrame        = 2
	pendingLineHeight = 1
	thinkingInterval  = 400 * time.Millisecond

	inputPlaceholder  = "質問を入力してください（Shift+Enter で送信）"
	attachPrompt      = "添付するファイルのパス: "
	attachPlaceholder = "~/Documents/invoice.pdf"
)

// clipboardOut receives the OSC52 sequence for Ctrl+Y.
var clipboardOut io.Writer = os.Stdout

// replyMsg carries the result of a model call back into the update loop.
type replyMsg struct {
	reply ai.Reply
	err   error
}

type thinkingTickMsg struct{}

// Options configure a new Model.
type Options struct {
	Client             ai.Client
	ModelName          string
	MaxAttachmentBytes int64
	// Attachment is preloaded as the pending attachment, if set.
	Attachment *ai.Attachment
	Context    context.Context
}

// Model represents the Bubble Tea application state
type Model struct {
	ctx       context.Context
	session   *chat.Session
	client    ai.Client
	modelName string
	maxBytes  int64

	viewport    viewport.Model
	input       textarea.Model
	attachInput textinput.Model
	attaching   bool
	statusBar   *statusbar.StatusBarView

	thinkingFrame int
	// follow keeps the viewport pinned to the newest message until the
	// user scrolls away from the bottom.
	follow bool

	width  int
	height int
	ready  bool
}

// NewModel creates a new Bubble Tea model
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	maxBytes := opts.MaxAttachmentBytes
	if maxBytes <= 0 {
		maxBytes = attachment.MaxSize
	}

	session := chat.NewSession()
	if opts.Attachment != nil {
		session.SetAttachment(*opts.Attachment)
	}

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.CharLimit = 0
	input.SetHeight(inputHeight)
	input.Blur()

	attachInput := textinput.New()
	attachInput.Prompt = attachPrompt
	attachInput.Placeholder = attachPlaceholder

	return Model{
		ctx:         ctx,
		session:     session,
		client:      opts.Client,
		modelName:   opts.ModelName,
		maxBytes:    maxBytes,
		viewport:    viewport.New(),
		input:       input,
		attachInput: attachInput,
		statusBar:   statusbar.NewStatusBarView(),
		follow:      true,
	}
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refresh(m.follow)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		if !m.session.DisclaimerAccepted() || m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		if m.attaching {
			m.attachInput, cmd = m.attachInput.Update(msg)
			return m, cmd
		}
		m.input, cmd = m.input.Update(msg)
		m.statusBar.SetCanSend(m.session.CanSend(m.input.Value()))
		return m, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.follow = m.viewport.AtBottom()
		return m, cmd

	case replyMsg:
		if msg.err != nil {
			m.session.Fail(msg.err)
		} else {
			m.session.Complete(msg.reply)
		}
		m.input.Focus()
		m.statusBar.SetCanSend(m.session.CanSend(m.input.Value()))
		m.follow = true
		m.refresh(true)
		return m, nil

	case thinkingTickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		m.thinkingFrame++
		m.refresh(m.follow)
		return m, thinkingTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.session.DisclaimerAccepted() {
		switch key {
		case "y", "Y", "enter":
			m.session.AcceptDisclaimer()
			slog.Info("disclaimer_accepted")
			m.input.Focus()
			m.statusBar.SetCanSend(m.session.CanSend(""))
			m.refresh(true)
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.attaching {
		return m.handleAttachKey(msg)
	}

	switch key {
	case "shift+enter", "ctrl+s":
		return m.send(m.input.Value(), false)
	case "ctrl+o":
		if m.session.Loading() {
			return m, nil
		}
		m.attaching = true
		m.attachInput.Reset()
		m.input.Blur()
		m.statusBar.ClearMessage()
		return m, m.attachInput.Focus()
	case "ctrl+x":
		if len(m.session.Pending()) > 0 {
			m.session.RemoveAttachment()
			m.statusBar.SetMessage("添付ファイルを削除しました。", false)
			m.statusBar.SetCanSend(m.session.CanSend(m.input.Value()))
		}
		return m, nil
	case "ctrl+y":
		m.copyLastReply()
		return m, nil
	case "alt+1", "alt+2", "alt+3", "alt+4":
		if !m.session.ShowSuggestions() {
			return m, nil
		}
		idx := int(key[len(key)-1] - '1')
		return m.send(chat.Suggestions[idx].Label, true)
	case "pgup":
		m.viewport.PageUp()
		m.follow = m.viewport.AtBottom()
		return m, nil
	case "pgdown":
		m.viewport.PageDown()
		m.follow = m.viewport.AtBottom()
		return m, nil
	}

	if m.session.Loading() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.statusBar.Message() != "" {
		m.statusBar.ClearMessage()
	}
	m.statusBar.SetCanSend(m.session.CanSend(m.input.Value()))
	return m, cmd
}

func (m Model) handleAttachKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAttach()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.attachInput.Value())
		if path == "" {
			m.closeAttach()
			return m, nil
		}
		var (
			att ai.Attachment
			err error
		)
		if strings.HasPrefix(path, "data:") {
			att, err = attachment.FromDataURL(path, m.maxBytes)
		} else {
			att, err = attachment.Load(path, m.maxBytes)
		}
		if err != nil {
			slog.Warn("attachment_load_failed", "path", attachSource(path), "error", err)
			m.statusBar.SetMessage(attachErrorText(err), true)
			return m, nil
		}
		m.session.SetAttachment(att)
		slog.Info("attachment_selected", "name", att.Name, "mime", att.MimeType)
		m.closeAttach()
		m.statusBar.SetMessage(fmt.Sprintf("%s を添付しました。", att.Name), false)
		m.statusBar.SetCanSend(m.session.CanSend(m.input.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.attachInput, cmd = m.attachInput.Update(msg)
	return m, cmd
}

func (m *Model) closeAttach() {
	m.attaching = false
	m.attachInput.Blur()
	m.attachInput.Reset()
	m.input.Focus()
}

func (m Model) send(text string, fromSuggestion bool) (tea.Model, tea.Cmd) {
	req, ok := m.session.Begin(text, fromSuggestion)
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.statusBar.ClearMessage()
	m.statusBar.SetCanSend(false)
	m.thinkingFrame = 0
	m.follow = true
	m.refresh(true)

	return m, tea.Batch(requestCmd(m.ctx, m.client, req), thinkingTick())
}

func requestCmd(ctx context.Context, client ai.Client, req chat.Request) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return replyMsg{err: errors.New("no model client configured")}
		}
		reply, err := req.Do(ctx, client)
		return replyMsg{reply: reply, err: err}
	}
}

func thinkingTick() tea.Cmd {
	return tea.Tick(thinkingInterval, func(time.Time) tea.Msg {
		return thinkingTickMsg{}
	})
}

func (m *Model) copyLastReply() {
	reply, ok := m.session.LastReply()
	if !ok {
		m.statusBar.SetMessage("コピーできる回答がありません。", true)
		return
	}
	text := render.Plain(reply.Content)
	if _, err := fmt.Fprint(clipboardOut, osc52.New(text)); err != nil {
		slog.Warn("clipboard_copy_failed", "error", err)
		m.statusBar.SetMessage("コピーに失敗しました。", true)
		return
	}
	m.statusBar.SetMessage("回答をクリップボードにコピーしました。", false)
}

// attachSource shortens pasted data URLs for logging.
func attachSource(s string) string {
	if header, _, ok := strings.Cut(s, ","); ok && strings.HasPrefix(s, "data:") {
		return header + ",..."
	}
	return s
}

func attachErrorText(err error) string {
	switch {
	case errors.Is(err, attachment.ErrTooLarge):
		return attachment.ErrTooLarge.Error()
	case errors.Is(err, attachment.ErrUnsupportedType):
		return attachment.ErrUnsupportedType.Error()
	default:
		return "ファイルを読み込めませんでした: " + err.Error()
	}
}

// resize recomputes widget sizes from the window size.
func (m *Model) resize() {
	m.statusBar.SetWidth(m.width)
	m.input.SetWidth(max(m.width-inputFrame, 1))
	m.attachInput.SetWidth(max(m.width-len(attachPrompt)-1, 1))
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(m.viewportHeight())
}

func (m Model) viewportHeight() int {
	h := m.height - headerHeight - (inputHeight + inputFrame) - pendingLineHeight - statusbar.Height
	if h < 1 {
		h = 1
	}
	return h
}

// refresh re-renders the conversation into the viewport.
func (m *Model) refresh(follow bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderConversation(conversationState{
		Messages:        m.session.Messages(),
		Loading:         m.session.Loading(),
		ShowSuggestions: m.session.ShowSuggestions(),
		ThinkingFrame:   m.thinkingFrame,
	}, m.width))
	if follow {
		m.viewport.GotoBottom()
	}
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) render() string {
	if !m.ready {
		return "Initializing..."
	}
	if !m.session.DisclaimerAccepted() {
		return disclaimer.Render(m.width, m.height)
	}

	boxStyle := styles.InputBoxStyle
	if m.input.Focused() {
		boxStyle = styles.InputBoxFocusedStyle
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderHeader(m.width, m.modelName),
		m.viewport.View(),
		m.renderPendingLine(),
		boxStyle.Render(m.input.View()),
		m.statusBar.Render(),
	)
}

func (m Model) renderPendingLine() string {
	if m.attaching {
		return m.attachInput.View()
	}
	pending := m.session.Pending()
	if len(pending) == 0 {
		return ""
	}
	chip := styles.AttachmentChipStyle.Render(attachmentLabel(pending[0]))
	return chip + styles.WarningStyle.Render("  Ctrl+X で削除")
}
