package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"urcloud_chat/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	reply ai.Reply
	err   error

	calls          int
	gotHistory     []ai.Message
	gotText        string
	gotAttachments []ai.Attachment
}

func (c *stubClient) SendMessage(ctx context.Context, history []ai.Message, text string, attachments []ai.Attachment) (ai.Reply, error) {
	c.calls++
	c.gotHistory = history
	c.gotText = text
	c.gotAttachments = attachments
	return c.reply, c.err
}

func newTestSession() *Session {
	s := NewSession()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	s.now = func() time.Time { return time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) }
	return s
}

var testPDF = ai.Attachment{MimeType: "application/pdf", Data: "JVBERi0=", Name: "doc.pdf"}

func TestSession_DisclaimerGate(t *testing.T) {
	s := newTestSession()

	assert.False(t, s.DisclaimerAccepted())
	assert.False(t, s.CanSend("質問"))
	_, ok := s.Begin("質問", false)
	assert.False(t, ok, "send must be refused before the disclaimer is accepted")
	assert.Empty(t, s.Messages())
}

func TestSession_AcceptDisclaimerSeedsGreetingOnce(t *testing.T) {
	s := newTestSession()

	s.AcceptDisclaimer()
	s.AcceptDisclaimer()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, GreetingID, msgs[0].ID)
	assert.Equal(t, ai.RoleModel, msgs[0].Role)
	assert.Equal(t, GreetingHTML, msgs[0].Content)
	assert.True(t, s.ShowSuggestions())
}

func TestSession_BeginRefusesEmptyInput(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	_, ok := s.Begin("   \n ", false)
	assert.False(t, ok)
	assert.False(t, s.CanSend("  "))
	assert.Len(t, s.Messages(), 1)
	assert.False(t, s.Loading())
}

func TestSession_BeginRecordsUserMessage(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()
	s.SetAttachment(testPDF)

	req, ok := s.Begin("  この契約書を確認して  ", false)
	require.True(t, ok)

	assert.Equal(t, "この契約書を確認して", req.Text)
	assert.Len(t, req.History, 1, "history is the state before the new message")
	assert.Equal(t, []ai.Attachment{testPDF}, req.Attachments)

	assert.True(t, s.Loading())
	assert.Empty(t, s.Pending(), "pending attachment is cleared on send")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ai.RoleUser, msgs[1].Role)
	assert.Equal(t, "id-1", msgs[1].ID)
	assert.Equal(t, []ai.Attachment{testPDF}, msgs[1].Attachments)
	assert.False(t, s.ShowSuggestions())
}

func TestSession_AttachmentOnlySend(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()
	s.SetAttachment(testPDF)

	assert.True(t, s.CanSend(""))
	req, ok := s.Begin("", false)
	require.True(t, ok)
	assert.Equal(t, "", req.Text)
	assert.Len(t, req.Attachments, 1)
}

func TestSession_BeginRefusedWhileLoading(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	_, ok := s.Begin("first", false)
	require.True(t, ok)

	_, ok = s.Begin("second", false)
	assert.False(t, ok)
	assert.False(t, s.CanSend("second"))
	assert.Len(t, s.Messages(), 2)
}

func TestSession_SetAttachmentReplaces(t *testing.T) {
	s := newTestSession()
	png := ai.Attachment{MimeType: "image/png", Data: "iVBORw0KGgo=", Name: "a.png"}

	s.SetAttachment(testPDF)
	s.SetAttachment(png)
	assert.Equal(t, []ai.Attachment{png}, s.Pending())

	s.RemoveAttachment()
	assert.Empty(t, s.Pending())
}

func TestSession_CompleteAndFail(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	_, ok := s.Begin("Q1", false)
	require.True(t, ok)
	grounding := &ai.GroundingMetadata{Sources: []ai.GroundingSource{{URI: "https://www.nta.go.jp", Title: "国税庁"}}}
	s.Complete(ai.Reply{Text: "<p>A1</p>", Grounding: grounding})

	assert.False(t, s.Loading())
	assert.True(t, s.ShowSuggestions())
	last, ok := s.LastReply()
	require.True(t, ok)
	assert.Equal(t, "<p>A1</p>", last.Content)
	assert.Same(t, grounding, last.Grounding)

	_, ok = s.Begin("Q2", false)
	require.True(t, ok)
	s.Fail(errors.New("boom"))

	msgs := s.Messages()
	require.Len(t, msgs, 5)
	assert.True(t, msgs[4].IsError)
	assert.Equal(t, ErrorHTML, msgs[4].Content)
	assert.False(t, s.Loading())
	assert.False(t, s.ShowSuggestions(), "no suggestions after an error")

	last, ok = s.LastReply()
	require.True(t, ok)
	assert.Equal(t, "<p>A1</p>", last.Content, "error messages are skipped")
}

func TestSession_SuggestionRewrittenOnGreeting(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	req, ok := s.Begin(Suggestions[0].Label, true)
	require.True(t, ok)
	assert.Equal(t, introRewrites[Suggestions[0].Label], req.Text)
}

func TestSession_OfficeSuggestionSentAsIs(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	req, ok := s.Begin(Suggestions[3].Label, true)
	require.True(t, ok)
	assert.Equal(t, Suggestions[3].Label, req.Text)
}

func TestSession_SuggestionNotRewrittenLater(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	_, ok := s.Begin("Q1", false)
	require.True(t, ok)
	s.Complete(ai.Reply{Text: "<p>A1</p>"})

	req, ok := s.Begin(Suggestions[1].Label, true)
	require.True(t, ok)
	assert.Equal(t, Suggestions[1].Label, req.Text)
}

func TestSession_TypedTextMatchingSuggestionNotRewritten(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	req, ok := s.Begin(Suggestions[0].Label, false)
	require.True(t, ok)
	assert.Equal(t, Suggestions[0].Label, req.Text)
}

func TestSession_SendSuccess(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()
	s.SetAttachment(testPDF)
	client := &stubClient{reply: ai.Reply{Text: "<p>回答</p>"}}

	sent := s.Send(context.Background(), client, "要約して", false)
	require.True(t, sent)

	assert.Equal(t, 1, client.calls)
	assert.Len(t, client.gotHistory, 1)
	assert.Equal(t, "要約して", client.gotText)
	assert.Equal(t, []ai.Attachment{testPDF}, client.gotAttachments)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "<p>回答</p>", msgs[2].Content)
	assert.False(t, s.Loading())
}

func TestSession_SendFailure(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()
	client := &stubClient{err: ai.NewRequestError(errors.New("timeout"))}

	require.True(t, s.Send(context.Background(), client, "Q", false))

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[2].IsError)
	assert.False(t, s.Loading())

	// The error message never reaches the next request.
	client.err = nil
	client.reply = ai.Reply{Text: "<p>ok</p>"}
	require.True(t, s.Send(context.Background(), client, "retry", false))
	assert.Len(t, client.gotHistory, 3)
	assert.Len(t, ai.BuildContents(client.gotHistory, "retry", nil), 3)
}

func TestSession_SendRefused(t *testing.T) {
	s := newTestSession()
	client := &stubClient{}

	assert.False(t, s.Send(context.Background(), client, "Q", false))
	assert.Equal(t, 0, client.calls)
}

func TestSession_MessagesReturnsCopy(t *testing.T) {
	s := newTestSession()
	s.AcceptDisclaimer()

	msgs := s.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, GreetingHTML, s.Messages()[0].Content)
}
