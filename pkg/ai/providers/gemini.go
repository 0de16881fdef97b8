package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/config"
	"urcloud_chat/pkg/logging"

	"google.golang.org/genai"
)

type geminiModelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGeminiClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GeminiClient implements ai.Client against the Gemini API.
type GeminiClient struct {
	models          geminiModelsClient
	model           string
	temperature     float64
	searchGrounding bool
	timeout         time.Duration
}

// NewGeminiClient creates a Gemini client from config.
func NewGeminiClient(cfg config.Config) (*GeminiClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		slog.Debug("gemini_client_missing_key")
		return nil, fmt.Errorf("gemini api_key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = config.DefaultModel
	}

	timeoutSeconds := cfg.APITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = config.DefaultAPITimeoutSeconds
	}

	client, err := newGeminiClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	slog.Debug("gemini_client_ready",
		"model", model,
		"timeout_seconds", timeoutSeconds,
		"search_grounding", cfg.SearchGrounding,
	)
	return &GeminiClient{
		models:          client.Models,
		model:           model,
		temperature:     cfg.Temperature,
		searchGrounding: cfg.SearchGrounding,
		timeout:         time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// Model returns the model name requests are sent to.
func (c *GeminiClient) Model() string {
	return c.model
}

// SendMessage sends the conversation plus the new user input and waits for the full reply.
func (c *GeminiClient) SendMessage(ctx context.Context, history []ai.Message, text string, attachments []ai.Attachment) (ai.Reply, error) {
	contents, err := toGenaiContents(ai.BuildContents(history, text, attachments))
	if err != nil {
		slog.Error("gemini_request_build_error", "error", err)
		return ai.Reply{}, ai.NewRequestError(err)
	}

	cfg := c.requestConfig()

	logger := slog.Default()
	if logger.Enabled(context.Background(), logging.LevelTrace) {
		logger.Log(context.Background(), logging.LevelTrace, "gemini_request_dump",
			"model", c.model,
			"contents", dumpContents(contents),
		)
	}

	slog.Info("gemini_request_start",
		"model", c.model,
		"turns", len(contents),
		"attachments", len(attachments),
	)

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.model, contents, cfg)
	if err != nil {
		slog.Error("gemini_request_error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return ai.Reply{}, ai.NewRequestError(err)
	}

	text = extractVisibleText(resp)
	if text == "" {
		slog.Warn("gemini_empty_reply")
		text = ai.FallbackReplyText
	}
	grounding := extractGrounding(resp)

	slog.Info("gemini_request_done",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"reply_length", len(text),
		"sources", sourceCount(grounding),
	)
	return ai.Reply{Text: text, Grounding: grounding}, nil
}

func (c *GeminiClient) requestConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: ai.SystemInstruction},
			},
		},
		Temperature: genai.Ptr(float32(c.temperature)),
	}
	if c.searchGrounding {
		cfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}
	return cfg
}

func (c *GeminiClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline || c.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.timeout)
}

func toGenaiContents(turns []ai.Turn) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, part := range turn.Parts {
			if part.InlineData != nil {
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode attachment (%s): %w", part.InlineData.MimeType, err)
				}
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{
						MIMEType: part.InlineData.MimeType,
						Data:     data,
					},
				})
				continue
			}
			parts = append(parts, &genai.Part{Text: part.Text})
		}

		content := &genai.Content{Role: genai.RoleUser, Parts: parts}
		if turn.Role == ai.RoleModel {
			content.Role = genai.RoleModel
		}
		contents = append(contents, content)
	}
	return contents, nil
}

func extractVisibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func extractGrounding(resp *genai.GenerateContentResponse) *ai.GroundingMetadata {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	out := &ai.GroundingMetadata{
		WebSearchQueries: append([]string(nil), meta.WebSearchQueries...),
	}
	seen := make(map[string]bool)
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		uri := strings.TrimSpace(chunk.Web.URI)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = uri
		}
		out.Sources = append(out.Sources, ai.GroundingSource{URI: uri, Title: title})
	}

	if len(out.Sources) == 0 && len(out.WebSearchQueries) == 0 {
		return nil
	}
	return out
}

func sourceCount(g *ai.GroundingMetadata) int {
	if g == nil {
		return 0
	}
	return len(g.Sources)
}

func dumpContents(contents []*genai.Content) string {
	var sb strings.Builder
	for i, content := range contents {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		fmt.Fprintf(&sb, "%s:", content.Role)
		for _, part := range content.Parts {
			if part.InlineData != nil {
				fmt.Fprintf(&sb, " [inline %s %d bytes]", part.InlineData.MIMEType, len(part.InlineData.Data))
				continue
			}
			sb.WriteString(" ")
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// Ensure interface compliance
var _ ai.Client = (*GeminiClient)(nil)
