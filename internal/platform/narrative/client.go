package narrative

import (
	"context"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a hospital intake assistant. Given confirmed appointment details,
write a short, friendly visit guide for the patient. Mention the doctor, department, date, time
and location exactly as given. Do not invent details.`

// Client wraps the upstream narrative-generation model. Its output is
// free text; callers re-parse it and fall back to a template when the
// call fails or returns boilerplate.
type Client struct {
	ai    *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		ai:    openai.NewClient(apiKey),
		model: model,
	}
}

// GenerateGuide produces a narrative visit guide from an appointment summary.
func (c *Client) GenerateGuide(ctx context.Context, appointmentSummary string) (string, error) {
	resp, err := c.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: appointmentSummary},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "narrative completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("narrative completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
