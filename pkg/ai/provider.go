package ai

import (
	"context"
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Attachment is a file sent alongside a user message.
// Data holds the base64 payload without any data-URL header.
type Attachment struct {
	MimeType string
	Data     string
	Name     string
}

// GroundingSource is a web page the reply was grounded on.
type GroundingSource struct {
	URI   string
	Title string
}

// GroundingMetadata describes the search grounding attached to a reply.
type GroundingMetadata struct {
	WebSearchQueries []string
	Sources          []GroundingSource
}

// HasSources reports whether there is anything worth listing.
func (g *GroundingMetadata) HasSources() bool {
	return g != nil && len(g.Sources) > 0
}

// Message represents a single entry in the conversation.
// Model content is HTML; user content is plain text.
type Message struct {
	ID          string
	Role        Role
	Content     string
	Attachments []Attachment
	Timestamp   time.Time
	IsError     bool
	Grounding   *GroundingMetadata
}

// Reply is a normalized answer from the model.
type Reply struct {
	Text      string
	Grounding *GroundingMetadata
}

// Client sends one conversation turn to the model.
// history is the conversation before the new message.
type Client interface {
	SendMessage(ctx context.Context, history []Message, text string, attachments []Attachment) (Reply, error)
}
