package chat

import (
	"context"
	"log"

	"github.com/powderlabs/skitutor/domain"
	"github.com/powderlabs/skitutor/prompt"
)

// respondFallback produces the redirect reply for a matched category. The
// exchange sent to the gateway is exactly two messages: the category prompt
// and the current utterance. No conversation history is included, so the
// redirect stays short, on-topic, and immune to anything injected earlier in
// the session.
func (s *Service) respondFallback(ctx context.Context, category domain.Category, utterance string) string {
	// Injection attempts are answered without any model call at all.
	if category == domain.CategoryInjection {
		return prompt.InjectionReply
	}

	fallbackPrompt, ok := prompt.Fallback(category)
	if !ok {
		log.Printf("WARN: no fallback prompt for category %q", category)
		return prompt.SafeFallbackReply
	}

	exchange := []domain.Message{
		{Role: domain.RoleSystem, Content: fallbackPrompt},
		{Role: domain.RoleUser, Content: utterance},
	}

	response, err := s.gateway.Generate(ctx, exchange)
	if err != nil {
		log.Printf("WARN: fallback generation failed for category %s: %v", category, err)
		return prompt.SafeFallbackReply
	}

	return response
}
