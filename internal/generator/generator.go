package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"email-writer/internal/domain"
	"email-writer/internal/llm"
	"email-writer/internal/metrics"
	"email-writer/internal/prompt"
)

// Generator defines the interface for producing email replies
type Generator interface {
	Generate(ctx context.Context, req domain.ReplyRequest) (string, error)
}

// Service builds the prompt for a request and asks the LLM for one reply.
type Service struct {
	llm llm.Client
}

// NewService creates a new reply generator with its LLM client injected
func NewService(client llm.Client) *Service {
	return &Service{llm: client}
}

// Generate returns the reply text. Provider failures are returned unchanged
// (wrapped) so callers can inspect the *types.ProviderError.
func (s *Service) Generate(ctx context.Context, req domain.ReplyRequest) (string, error) {
	start := time.Now()
	p := prompt.Build(req)
	slog.Debug("generate reply", "backend", s.llm.Name(), "tone", req.Tone, "prompt_len", len(p))

	reply, err := s.llm.Complete(ctx, p)
	if err != nil {
		metrics.GenerateDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		slog.Error("generate failed", "backend", s.llm.Name(), "error", err, "duration", time.Since(start))
		return "", fmt.Errorf("generate reply: %w", err)
	}

	metrics.GenerateDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	slog.Info("reply generated", "backend", s.llm.Name(), "reply_len", len(reply), "duration", time.Since(start))
	return reply, nil
}
