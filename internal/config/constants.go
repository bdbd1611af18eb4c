package config

// LLM backends
const (
	BackendHTTP   = "http"
	BackendOpenAI = "openai"
)

// Request/response dialects
const (
	// DialectChat is the OpenAI-compatible chat-completions schema (Groq, OpenAI, ...).
	DialectChat = "chat"
	// DialectGenerative is the generateContent schema used by Gemini.
	DialectGenerative = "generative"
)

// ModelPlaceholder is replaced with the model name inside CompletionPath.
const ModelPlaceholder = "{model}"

// ChatTemperature is sent when ProviderConfig.Temperature is enabled.
const ChatTemperature = 0.7

// HTTP responses
const (
	PingResponse        = "API is working"
	GenerateErrorPrefix = "Error generating email: "
)

// MaxErrorBodyLen bounds provider bodies kept on errors and in logs.
const MaxErrorBodyLen = 1024
