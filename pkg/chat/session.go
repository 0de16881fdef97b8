// Package chat holds the conversation state behind the chat screen.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"urcloud_chat/pkg/ai"

	"github.com/google/uuid"
)

// Request is a snapshot of everything one send needs.
// History is the conversation before the new user message.
type Request struct {
	History     []ai.Message
	Text        string
	Attachments []ai.Attachment
}

// Do performs the model call. It does not touch any session state, so it
// can run off the UI goroutine.
func (r Request) Do(ctx context.Context, client ai.Client) (ai.Reply, error) {
	return client.SendMessage(ctx, r.History, r.Text, r.Attachments)
}

// Session tracks the message list, the loading flag, the disclaimer gate and
// the pending attachment. It is not safe for concurrent use; the UI mutates
// it only from its update loop.
type Session struct {
	messages           []ai.Message
	loading            bool
	disclaimerAccepted bool
	pending            []ai.Attachment

	newID func() string
	now   func() time.Time
}

// NewSession creates an empty session with the disclaimer not yet accepted.
func NewSession() *Session {
	return &Session{
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// AcceptDisclaimer opens the chat and seeds the greeting on first acceptance.
func (s *Session) AcceptDisclaimer() {
	s.disclaimerAccepted = true
	if len(s.messages) == 0 {
		s.messages = append(s.messages, ai.Message{
			ID:        GreetingID,
			Role:      ai.RoleModel,
			Content:   GreetingHTML,
			Timestamp: s.now(),
		})
	}
}

// DisclaimerAccepted reports whether the gate has been passed.
func (s *Session) DisclaimerAccepted() bool {
	return s.disclaimerAccepted
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []ai.Message {
	out := make([]ai.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Loading reports whether a reply is outstanding.
func (s *Session) Loading() bool {
	return s.loading
}

// SetAttachment replaces the pending attachment. Only one is kept at a time.
func (s *Session) SetAttachment(att ai.Attachment) {
	s.pending = []ai.Attachment{att}
}

// RemoveAttachment drops the pending attachment.
func (s *Session) RemoveAttachment() {
	s.pending = nil
}

// Pending returns the attachments that will go out with the next send.
func (s *Session) Pending() []ai.Attachment {
	out := make([]ai.Attachment, len(s.pending))
	copy(out, s.pending)
	return out
}

// CanSend reports whether input would produce a send right now.
func (s *Session) CanSend(input string) bool {
	if !s.disclaimerAccepted || s.loading {
		return false
	}
	return strings.TrimSpace(input) != "" || len(s.pending) > 0
}

// Begin validates the input and, if it can be sent, records the user message,
// clears the pending attachment and sets the loading flag.
// fromSuggestion marks text coming from a suggestion chip; such text is sent
// untrimmed and, while only the greeting is shown, rewritten into a usage question.
func (s *Session) Begin(text string, fromSuggestion bool) (Request, bool) {
	if fromSuggestion {
		if len(s.messages) == 1 {
			if rewritten, ok := introRewrites[text]; ok {
				text = rewritten
			}
		}
	} else {
		text = strings.TrimSpace(text)
	}

	if !s.disclaimerAccepted || s.loading {
		return Request{}, false
	}
	if text == "" && len(s.pending) == 0 {
		return Request{}, false
	}

	req := Request{
		History:     s.Messages(),
		Text:        text,
		Attachments: s.pending,
	}
	s.pending = nil

	s.messages = append(s.messages, ai.Message{
		ID:          s.newID(),
		Role:        ai.RoleUser,
		Content:     text,
		Attachments: req.Attachments,
		Timestamp:   s.now(),
	})
	s.loading = true

	slog.Debug("chat_send_begin",
		"history_messages", len(req.History),
		"text_length", len(text),
		"attachments", len(req.Attachments),
		"from_suggestion", fromSuggestion,
	)
	return req, true
}

// Complete appends the model reply and clears the loading flag.
func (s *Session) Complete(reply ai.Reply) {
	s.messages = append(s.messages, ai.Message{
		ID:        s.newID(),
		Role:      ai.RoleModel,
		Content:   reply.Text,
		Timestamp: s.now(),
		Grounding: reply.Grounding,
	})
	s.loading = false
}

// Fail appends the fixed apology and clears the loading flag.
func (s *Session) Fail(err error) {
	slog.Error("chat_send_failed", "error", err)
	s.messages = append(s.messages, ai.Message{
		ID:        s.newID(),
		Role:      ai.RoleModel,
		Content:   ErrorHTML,
		Timestamp: s.now(),
		IsError:   true,
	})
	s.loading = false
}

// Send runs Begin, the model call and Complete or Fail in one go.
// It returns false when the input was not sendable.
func (s *Session) Send(ctx context.Context, client ai.Client, text string, fromSuggestion bool) bool {
	req, ok := s.Begin(text, fromSuggestion)
	if !ok {
		return false
	}
	reply, err := req.Do(ctx, client)
	if err != nil {
		s.Fail(err)
		return true
	}
	s.Complete(reply)
	return true
}

// ShowSuggestions reports whether suggestion chips should be offered.
func (s *Session) ShowSuggestions() bool {
	if s.loading || len(s.messages) == 0 {
		return false
	}
	last := s.messages[len(s.messages)-1]
	return last.Role == ai.RoleModel && !last.IsError
}

// LastReply returns the most recent successful model message.
func (s *Session) LastReply() (ai.Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		msg := s.messages[i]
		if msg.Role == ai.RoleModel && !msg.IsError {
			return msg, true
		}
	}
	return ai.Message{}, false
}
