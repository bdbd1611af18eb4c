package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"email-writer/internal/client"
	"email-writer/internal/config"
	"email-writer/internal/generator"
)

// TestEndToEnd runs the real router, generator and HTTP client against a fake provider.
func TestEndToEnd(t *testing.T) {
	var hits atomic.Int32
	var lastPrompt atomic.Value
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Messages) != 1 {
			t.Errorf("bad provider request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		sentPrompt := body.Messages[0].Content
		lastPrompt.Store(sentPrompt)

		switch {
		case strings.Contains(sentPrompt, "BROKEN"):
			w.Write([]byte(`{"choices":[]}`))
		case strings.Contains(sentPrompt, "DOWN"):
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Write([]byte(`{"choices":[{"message":{"content":"\n\nHappy to help!\n"}}]}`))
		}
	}))
	defer provider.Close()

	cfg := testConfig()
	cfg.LLM = config.ProviderConfig{
		Backend:        config.BackendHTTP,
		Dialect:        config.DialectChat,
		BaseURL:        provider.URL,
		CompletionPath: "/chat/completions",
		Model:          "e2e-model",
		APIKeyHeader:   "Authorization",
		APIKey:         "k",
		Timeout:        2 * time.Second,
	}

	llm, err := client.NewLLM(cfg.LLM)
	if err != nil {
		t.Fatalf("NewLLM failed: %v", err)
	}
	srv := httptest.NewServer(NewRouter(cfg, generator.NewService(llm)))
	defer srv.Close()

	post := func(body string) (int, string) {
		resp, err := http.Post(srv.URL+PathGenerate, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post failed: %v", err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	code, body := post(`{"emailContent":"He wrote \"thanks\"\nand left","tone":"warm"}`)
	if code != http.StatusOK || body != "Happy to help!" {
		t.Fatalf("expected 200 trimmed reply, got %d %q", code, body)
	}
	sentPrompt, _ := lastPrompt.Load().(string)
	if !strings.Contains(sentPrompt, "Original email:\nHe wrote \"thanks\"\nand left") {
		t.Errorf("email not forwarded verbatim:\n%s", sentPrompt)
	}
	if !strings.Contains(sentPrompt, "Tone: warm") {
		t.Errorf("tone missing:\n%s", sentPrompt)
	}

	code, body = post(`{"emailContent":"BROKEN"}`)
	if code != http.StatusInternalServerError || !strings.HasPrefix(body, config.GenerateErrorPrefix) {
		t.Errorf("expected 500 for parse failure, got %d %q", code, body)
	}
	if !strings.Contains(body, "parse") {
		t.Errorf("expected parse stage in message, got %q", body)
	}

	code, body = post(`{"emailContent":"DOWN"}`)
	if code != http.StatusInternalServerError || !strings.Contains(body, "status 502") {
		t.Errorf("expected 500 for provider 502, got %d %q", code, body)
	}

	if n := hits.Load(); n != 3 {
		t.Errorf("expected one provider call per request (3), got %d", n)
	}
}
