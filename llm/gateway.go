package llm

import (
	"context"
	"errors"

	"github.com/powderlabs/skitutor/domain"
)

// Gateway is the boundary over the external text-generation call: an ordered
// message list in, generated text out. Implementations are stateless.
type Gateway interface {
	Generate(ctx context.Context, messages []domain.Message) (string, error)
}

// GenerationError wraps any failure of the generation call (transport, auth,
// quota, malformed response). It is the only error type Generate returns;
// callers decide what text to degrade to.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ChatGateway implements Gateway on top of Client with a fixed model.
type ChatGateway struct {
	client *Client
	model  string
}

// NewChatGateway creates a gateway bound to the given model identifier.
func NewChatGateway(client *Client, model string) *ChatGateway {
	return &ChatGateway{client: client, model: model}
}

var _ Gateway = (*ChatGateway)(nil)

// Generate sends the messages as a chat completion request and returns the
// first choice's content verbatim, with no post-processing.
func (g *ChatGateway) Generate(ctx context.Context, messages []domain.Message) (string, error) {
	req := &ChatCompletionRequest{
		Model:    g.model,
		Messages: make([]ChatMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, ChatMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", &GenerationError{Err: errors.New("completion returned no choices")}
	}

	return resp.Choices[0].Message.Content, nil
}
