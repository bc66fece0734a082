// Package chat implements the per-turn control flow: resolve the session,
// classify the utterance, and route it either to full-history generation or
// to a stateless category fallback.
package chat

import (
	"context"
	"log"
	"sync"

	"github.com/powderlabs/skitutor/domain"
	"github.com/powderlabs/skitutor/llm"
	"github.com/powderlabs/skitutor/policy"
	"github.com/powderlabs/skitutor/prompt"
	"github.com/powderlabs/skitutor/store"
)

// Service is the turn orchestrator.
type Service struct {
	store   store.Store
	gateway llm.Gateway
	engine  *policy.Engine

	// Per-session locks serialize concurrent turns against the same session
	// id so appends never interleave. Lock entries are never reclaimed;
	// sessions already live for the process lifetime.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the turn orchestrator.
func New(s store.Store, gateway llm.Gateway, engine *policy.Engine) *Service {
	return &Service{
		store:   s,
		gateway: gateway,
		engine:  engine,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Service) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// SubmitTurn processes one user turn end to end and returns the response text
// and the session id (newly minted when the input id was empty or unknown).
// Generation failures never surface as errors: they degrade to plain-language
// response text. The returned error covers store failures only.
func (s *Service) SubmitTurn(ctx context.Context, message, sessionID string) (string, string, error) {
	session, err := s.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	lock := s.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	// The user turn is persisted before routing, regardless of which path
	// serves it.
	if err := s.store.Append(ctx, session.ID, domain.Message{
		Role:    domain.RoleUser,
		Content: message,
	}); err != nil {
		return "", "", err
	}

	category, err := s.engine.Classify(ctx, message)
	if err != nil {
		log.Printf("WARN: classification failed, treating as in-scope: %v", err)
		category = domain.CategoryNone
	}

	if category != domain.CategoryNone {
		// Fallback replies are intentionally not recorded in the session
		// history; the redirect is stateless.
		return s.respondFallback(ctx, category, message), session.ID, nil
	}

	history, err := s.store.Messages(ctx, session.ID)
	if err != nil {
		return "", "", err
	}

	response, err := s.gateway.Generate(ctx, history)
	if err != nil {
		log.Printf("ERROR: generation failed for session %s: %v", session.ID, err)
		// Surfaced as conversational content, never as a protocol error.
		response = prompt.GenerationErrorPrefix + err.Error()
	}

	if err := s.store.Append(ctx, session.ID, domain.Message{
		Role:    domain.RoleAssistant,
		Content: response,
	}); err != nil {
		return "", "", err
	}

	return response, session.ID, nil
}

// ClearSession removes the session's history. Unknown ids are fine.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
