package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"unicode/utf8"

	"email-writer/internal/config"
	"email-writer/internal/domain"
	"email-writer/internal/generator"
	"email-writer/internal/metrics"
	"email-writer/internal/types"

	"github.com/tidwall/gjson"
)

// EmailHandler serves the reply generation endpoints
type EmailHandler struct {
	generator   generator.Generator
	maxBodySize int64
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(cfg *config.Config, gen generator.Generator) *EmailHandler {
	maxBody := cfg.Server.MaxBodySize
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodySize
	}
	return &EmailHandler{
		generator:   gen,
		maxBodySize: maxBody,
	}
}

// Generate handles POST /api/email/generate
func (h *EmailHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slog.Debug("received generate request", "content_length", r.ContentLength)
	metrics.GenerateRequests.WithLabelValues("received").Inc()

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("panic recovered in generate handler",
				"panic", rec,
				"stack", string(debug.Stack()))
			http.Error(w, config.GenerateErrorPrefix+"internal error", http.StatusInternalServerError)
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("read body failed", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		metrics.GenerateRequests.WithLabelValues("error_read").Inc()
		return
	}

	if !utf8.Valid(body) {
		slog.Warn("request body is not valid utf-8")
		http.Error(w, "Invalid encoding", http.StatusBadRequest)
		metrics.GenerateRequests.WithLabelValues("invalid_encoding").Inc()
		return
	}

	req, err := decodeReplyRequest(body)
	if err != nil {
		slog.Warn("invalid request body", "error", err, "payload_preview", types.Truncate(string(body), 200))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		metrics.GenerateRequests.WithLabelValues("invalid_body").Inc()
		return
	}

	reply, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		logProviderError(err)
		metrics.GenerateRequests.WithLabelValues("failed").Inc()
		http.Error(w, config.GenerateErrorPrefix+err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.GenerateRequests.WithLabelValues("success").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, reply)
}

// Ping handles GET /api/email/ping
func (h *EmailHandler) Ping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, config.PingResponse)
}

// decodeReplyRequest accepts a JSON object with a string emailContent. The
// optional fields may be strings or null.
func decodeReplyRequest(body []byte) (domain.ReplyRequest, error) {
	var req domain.ReplyRequest
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return req, fmt.Errorf("%w: body must be a JSON object", types.ErrInvalidInput)
	}
	if email := gjson.GetBytes(body, "emailContent"); email.Type != gjson.String {
		return req, fmt.Errorf("%w: emailContent must be a string", types.ErrInvalidInput)
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: %w", types.ErrInvalidInput, err)
	}
	return req, nil
}

func logProviderError(err error) {
	var pe *types.ProviderError
	if !errors.As(err, &pe) {
		slog.Error("generate request failed", "error", err)
		return
	}
	slog.Error("generate request failed",
		"stage", pe.Stage,
		"kind", pe.Kind,
		"status", pe.StatusCode,
		"error", pe.Err,
		"provider_body", pe.Body,
	)
}
