package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts the text-generation service behind the insight
// generator. Implementations must return JSON conforming to the request
// schema when one is set.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request describes a single-turn generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation; insight generation sends one user message.
	Messages []Message

	// Schema, when set, makes the provider request structured output and
	// validates the response against it before returning.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output. Content is validated JSON when the
// request carried a schema.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
