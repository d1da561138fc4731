// Package providers implements the LLM backends behind the chat engine.
//
// DESIGN: A closed variant set (Gemini, OpenRouter, Ollama) behind one
// capability interface. The chat engine stays provider-agnostic: it walks an
// ordered chain of Provider values and falls back on auth failure or
// timeout. Each backend translates the shared Message history to its own
// wire format.
package providers

import (
	"context"
	"encoding/json"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is a single turn in the conversation history.
type Message struct {
	Role       string
	Content    string
	ToolCallID string // non-empty when Role == RoleTool
	ToolName   string // non-empty when Role == RoleTool
}

// ToolCall is a request from the model to invoke a tool.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]json.RawMessage
}

// Response is the model's reply to a chat turn. Exactly one of Text or
// ToolCall is meaningful.
type Response struct {
	Text     string
	ToolCall *ToolCall
}

// ToolDef describes a callable tool for function-calling capable models.
// Parameters is an OpenAI-compatible JSON Schema object.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Provider is the uniform chat capability every backend satisfies.
type Provider interface {
	// Chat sends the conversation history and returns the next response.
	// tools may be nil for backends without function calling.
	Chat(ctx context.Context, messages []Message, tools []ToolDef) (Response, error)

	// Label returns the human-readable name shown in the home screen and
	// fallback notices.
	Label() string
}
