package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"email-writer/internal/config"
	"email-writer/internal/metrics"
	"email-writer/internal/types"
)

// HTTPClient implements llm.Client with one JSON POST per call.
// It holds no mutable state; the underlying http.Client pools connections.
type HTTPClient struct {
	httpClient  *http.Client
	url         string
	model       string
	dialect     Dialect
	temperature bool
	timeout     time.Duration
}

// NewHTTPClient creates a client for the given provider. base may be nil to use
// http.DefaultTransport.
func NewHTTPClient(cfg config.ProviderConfig, base http.RoundTripper) (*HTTPClient, error) {
	dialect, err := ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultLLMTimeout
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Transport: NewTokenRoundTripper(base, cfg.APIKeyHeader, cfg.APIKey),
		},
		url:         cfg.URL(),
		model:       cfg.Model,
		dialect:     dialect,
		temperature: cfg.Temperature && dialect == DialectChat,
		timeout:     timeout,
	}, nil
}

// Name returns the dialect and model name
func (c *HTTPClient) Name() string {
	return string(c.dialect) + "-" + c.model
}

// Complete sends prompt to the provider and returns the trimmed reply.
func (c *HTTPClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.ProviderDuration.WithLabelValues(string(c.dialect)).Observe(time.Since(start).Seconds())
	}()

	text, err := c.complete(ctx, prompt)
	if err != nil {
		var pe *types.ProviderError
		if errors.As(err, &pe) {
			metrics.ProviderRequests.WithLabelValues(string(c.dialect), string(pe.Stage)).Inc()
		}
		return "", err
	}
	metrics.ProviderRequests.WithLabelValues(string(c.dialect), "success").Inc()
	return text, nil
}

func (c *HTTPClient) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.dialect.EncodeRequest(c.model, prompt, c.temperature)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", types.NewTransportError(types.KindConnection, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	slog.Debug("llm request", "url", c.url, "dialect", c.dialect, "bytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", types.NewTransportError(transportKind(err), fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", types.NewTransportError(transportKind(err), fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := providerMessage(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		slog.Debug("llm non-2xx", "status", resp.StatusCode, "body", types.Truncate(string(raw), config.MaxErrorBodyLen))
		return "", &types.ProviderError{
			Stage:      types.StageTransport,
			Kind:       types.KindStatus,
			StatusCode: resp.StatusCode,
			Body:       types.Truncate(string(raw), config.MaxErrorBodyLen),
			Err:        errors.New(msg),
		}
	}

	text, err := c.dialect.ExtractText(raw)
	if err != nil {
		return "", types.NewParseError(types.Truncate(string(raw), config.MaxErrorBodyLen), err)
	}
	return strings.TrimSpace(text), nil
}
