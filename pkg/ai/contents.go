package ai

// InlineData is a base64 payload embedded in a request part.
type InlineData struct {
	MimeType string
	Data     string
}

// Part is one piece of a turn: either text or inline data.
type Part struct {
	Text       string
	InlineData *InlineData
}

// Turn is a single role-tagged entry of the request contents.
type Turn struct {
	Role  Role
	Parts []Part
}

// BuildContents converts the conversation history plus the new user input into
// request turns. Error messages are left out, and history turns that would carry
// no parts are dropped. The new user turn is always last.
func BuildContents(history []Message, text string, attachments []Attachment) []Turn {
	turns := make([]Turn, 0, len(history)+1)

	for _, msg := range history {
		if msg.IsError {
			continue
		}
		parts := messageParts(msg.Content, msg.Attachments)
		if len(parts) == 0 {
			continue
		}
		role := msg.Role
		if role != RoleModel {
			role = RoleUser
		}
		turns = append(turns, Turn{Role: role, Parts: parts})
	}

	turns = append(turns, Turn{
		Role:  RoleUser,
		Parts: messageParts(text, attachments),
	})
	return turns
}

func messageParts(text string, attachments []Attachment) []Part {
	parts := make([]Part, 0, 1+len(attachments))
	if text != "" {
		parts = append(parts, Part{Text: text})
	}
	for _, att := range attachments {
		parts = append(parts, Part{
			InlineData: &InlineData{
				MimeType: att.MimeType,
				Data:     att.Data,
			},
		})
	}
	return parts
}
