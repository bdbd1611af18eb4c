package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"email-writer/internal/config"
	"email-writer/internal/metrics"
	"email-writer/internal/types"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIAdapter implements llm.Client for the chat dialect using the OpenAI official client
type OpenAIAdapter struct {
	client      *openai.Client
	model       string
	temperature bool
	timeout     time.Duration
}

// NewOpenAIAdapter creates a new OpenAI adapter. The SDK's own retries are
// disabled; one call means one request.
func NewOpenAIAdapter(cfg config.ProviderConfig, httpClient *http.Client) *OpenAIAdapter {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if header := cfg.APIKeyHeader; header == "" || strings.EqualFold(header, "Authorization") {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// drop the bearer header the SDK derives from OPENAI_API_KEY
		opts = append(opts, option.WithHeaderDel("authorization"), option.WithHeader(header, cfg.APIKey))
	}
	client := openai.NewClient(opts...)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultLLMTimeout
	}

	return &OpenAIAdapter{
		client:      &client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
	}
}

// Name returns the model name
func (a *OpenAIAdapter) Name() string {
	return "openai-" + a.model
}

// Complete sends a single user message and returns the trimmed reply.
func (a *OpenAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.ProviderDuration.WithLabelValues(config.DialectChat).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if a.temperature {
		params.Temperature = openai.Float(config.ChatTemperature)
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		perr := a.wrapError(err)
		metrics.ProviderRequests.WithLabelValues(config.DialectChat, string(perr.Stage)).Inc()
		return "", perr
	}

	// The SDK decodes a missing or null content as "", so read the raw body instead.
	raw := resp.RawJSON()
	text, err := DialectChat.ExtractText([]byte(raw))
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(config.DialectChat, string(types.StageParse)).Inc()
		return "", types.NewParseError(types.Truncate(raw, config.MaxErrorBodyLen), err)
	}

	metrics.ProviderRequests.WithLabelValues(config.DialectChat, "success").Inc()
	return strings.TrimSpace(text), nil
}

// wrapError maps openai errors onto ProviderError stages
func (a *OpenAIAdapter) wrapError(err error) *types.ProviderError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &types.ProviderError{
			Stage:      types.StageTransport,
			Kind:       types.KindStatus,
			StatusCode: apiErr.StatusCode,
			Err:        fmt.Errorf("openai request: %w", err),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return types.NewParseError("", fmt.Errorf("%w: %w", types.ErrMalformedResponse, err))
	}

	return types.NewTransportError(transportKind(err), fmt.Errorf("openai request: %w", err))
}
