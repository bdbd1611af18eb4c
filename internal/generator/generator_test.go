package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"email-writer/internal/domain"
	"email-writer/internal/prompt"
	"email-writer/internal/types"
)

// MockLLM implements llm.Client for testing
type MockLLM struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
	calls        int
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

func (m *MockLLM) Name() string { return "mock" }

func TestService_Generate_Success(t *testing.T) {
	req := domain.ReplyRequest{
		EmailContent: "Are you joining the offsite?",
		Tone:         "casual",
		Instructions: "Say yes",
	}

	var sent string
	mock := &MockLLM{
		CompleteFunc: func(ctx context.Context, p string) (string, error) {
			sent = p
			return "Count me in!", nil
		},
	}

	got, err := NewService(mock).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "Count me in!" {
		t.Errorf("expected reply, got %q", got)
	}
	if sent != prompt.Build(req) {
		t.Errorf("expected built prompt to be sent, got:\n%s", sent)
	}
	if mock.calls != 1 {
		t.Errorf("expected one LLM call, got %d", mock.calls)
	}
}

func TestService_Generate_ProviderError(t *testing.T) {
	provErr := types.NewParseError(`{"choices":[]}`, types.ErrMissingField)
	mock := &MockLLM{
		CompleteFunc: func(ctx context.Context, p string) (string, error) {
			return "", provErr
		},
	}

	got, err := NewService(mock).Generate(context.Background(), domain.ReplyRequest{EmailContent: "hi"})
	if got != "" {
		t.Errorf("expected no reply on error, got %q", got)
	}

	var pe *types.ProviderError
	if !errors.As(err, &pe) || pe != provErr {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "generate reply: ") {
		t.Errorf("unexpected error message %q", err.Error())
	}
	if mock.calls != 1 {
		t.Errorf("expected no retry, got %d calls", mock.calls)
	}
}

func TestService_Generate_EmptyFields(t *testing.T) {
	mock := &MockLLM{
		CompleteFunc: func(ctx context.Context, p string) (string, error) {
			if strings.Contains(p, "Tone:") {
				t.Error("unexpected Tone line for empty tone")
			}
			return "ok", nil
		},
	}
	if _, err := NewService(mock).Generate(context.Background(), domain.ReplyRequest{}); err != nil {
		t.Fatalf("empty request should not be rejected: %v", err)
	}
}
