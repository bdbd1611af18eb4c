package client

import (
	"fmt"

	"email-writer/internal/config"
	"email-writer/internal/types"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Dialect selects the request/response schema spoken by the provider.
type Dialect string

const (
	DialectChat       Dialect = config.DialectChat
	DialectGenerative Dialect = config.DialectGenerative
)

// ParseDialect validates a configured dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case DialectChat, DialectGenerative:
		return d, nil
	default:
		return "", fmt.Errorf("unknown dialect: %q", s)
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []textPart `json:"parts"`
}

// EncodeRequest builds the JSON request body for prompt. String values go
// through a JSON encoder so quotes, backslashes and control characters survive.
func (d Dialect) EncodeRequest(model, prompt string, temperature bool) ([]byte, error) {
	body := []byte(`{}`)
	var err error

	switch d {
	case DialectChat:
		if body, err = sjson.SetBytes(body, "model", model); err != nil {
			return nil, fmt.Errorf("set model: %w", err)
		}
		messages := []chatMessage{{Role: "user", Content: prompt}}
		if body, err = sjson.SetBytes(body, "messages", messages); err != nil {
			return nil, fmt.Errorf("set messages: %w", err)
		}
		if temperature {
			if body, err = sjson.SetBytes(body, "temperature", config.ChatTemperature); err != nil {
				return nil, fmt.Errorf("set temperature: %w", err)
			}
		}
	case DialectGenerative:
		contents := []content{{Parts: []textPart{{Text: prompt}}}}
		if body, err = sjson.SetBytes(body, "contents", contents); err != nil {
			return nil, fmt.Errorf("set contents: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown dialect: %q", d)
	}
	return body, nil
}

// TextPath is the gjson path of the generated text in a successful response.
func (d Dialect) TextPath() string {
	if d == DialectGenerative {
		return "candidates.0.content.parts.0.text"
	}
	return "choices.0.message.content"
}

// ExtractText pulls the generated text out of a response body. It never
// returns an empty string in place of a missing field.
func (d Dialect) ExtractText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", types.ErrMalformedResponse
	}

	path := d.TextPath()
	res := gjson.GetBytes(body, path)
	if !res.Exists() {
		if msg := providerMessage(body); msg != "" {
			return "", fmt.Errorf("%w: %s (provider said: %s)", types.ErrMissingField, path, msg)
		}
		return "", fmt.Errorf("%w: %s", types.ErrMissingField, path)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("%w: %s is %s", types.ErrUnexpectedType, path, res.Type)
	}
	return res.Str, nil
}

// providerMessage returns the error message both dialects use in error envelopes.
func providerMessage(body []byte) string {
	return gjson.GetBytes(body, "error.message").String()
}
