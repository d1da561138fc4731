// Package chat holds conversation state and drives the provider chain.
package chat

import "jarvis/internal/providers"

// SystemPrompt is the persona seeded into every fresh session.
const SystemPrompt = `You are Jarvis, an AI assistant that helps users manage AI coding tools.

Use the provided tools when the user asks you to do something. Keep replies concise.
Do NOT narrate what you are about to do -- just call the tool and report the result.`

// Session is the in-memory conversation history for one interactive session.
// It is owned by a single goroutine and replaced wholesale, never mutated
// in place, whenever the active provider changes, so "reset on fallback"
// stays trivially correct.
type Session struct {
	Messages []providers.Message
}

// NewSession creates a Session seeded with the system prompt and a canned
// acknowledgement, so the first real user turn lands on a primed history.
func NewSession(systemPrompt string) *Session {
	s := &Session{}
	if systemPrompt != "" {
		s.Messages = append(s.Messages,
			providers.Message{Role: providers.RoleUser, Content: systemPrompt},
			providers.Message{Role: providers.RoleAssistant, Content: "Understood. I am Jarvis, your AI coding tools assistant."},
		)
	}
	return s
}

// AddUser appends a user turn.
func (s *Session) AddUser(content string) {
	s.Messages = append(s.Messages, providers.Message{Role: providers.RoleUser, Content: content})
}

// AddAssistant appends an assistant turn.
func (s *Session) AddAssistant(content string) {
	s.Messages = append(s.Messages, providers.Message{Role: providers.RoleAssistant, Content: content})
}

// AddToolResult appends a tool result turn.
func (s *Session) AddToolResult(toolCallID, toolName, result string) {
	s.Messages = append(s.Messages, providers.Message{
		Role:       providers.RoleTool,
		Content:    result,
		ToolCallID: toolCallID,
		ToolName:   toolName,
	})
}
