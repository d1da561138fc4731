package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama calls a local Ollama instance through its HTTP chat API.
// Tool definitions are ignored: local models get plain chat only.
type Ollama struct {
	host   string
	model  string
	client *http.Client
}

// NewOllama creates an Ollama provider. Empty host and model select the
// local defaults.
func NewOllama(host, model string) *Ollama {
	if host == "" {
		host = defaultOllamaHost
	}
	if model == "" {
		model = "llama3.2"
	}
	model = strings.TrimPrefix(model, "ollama/")
	return &Ollama{host: host, model: model, client: http.DefaultClient}
}

func (o *Ollama) Label() string { return "ollama/" + o.model + " (local)" }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error"`
}

// OllamaReachable reports whether an Ollama server answers at host. The
// probe is deliberately short so startup detection stays snappy.
func OllamaReachable(host string) bool {
	if host == "" {
		host = defaultOllamaHost
	}
	client := &http.Client{Timeout: 500 * time.Millisecond}
	resp, err := client.Get(host + "/api/tags")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (o *Ollama) Chat(ctx context.Context, messages []Message, _ []ToolDef) (Response, error) {
	wire := make([]ollamaMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role == RoleTool {
			// Ollama has no tool role; fold results into the user turn.
			role = RoleUser
		}
		wire = append(wire, ollamaMessage{Role: role, Content: m.Content})
	}

	body, err := json.Marshal(ollamaChatRequest{Model: o.model, Messages: wire, Stream: false})
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("ollama read: %w", err)
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Response{}, fmt.Errorf("ollama parse: %w", err)
	}
	if parsed.Error != "" {
		return Response{}, fmt.Errorf("ollama error: %s", parsed.Error)
	}

	return Response{Text: strings.TrimSpace(parsed.Message.Content)}, nil
}

var _ Provider = (*Ollama)(nil)
