package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const openRouterChatURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouter calls the OpenRouter chat completions API (OpenAI-compatible).
type OpenRouter struct {
	apiKey  string
	model   string // e.g. "google/gemini-flash-1.5", without the "openrouter/" prefix
	label   string
	baseURL string
	client  *http.Client
}

// NewOpenRouter creates an OpenRouter provider. model may carry the
// "openrouter/" env-var prefix; it is stripped. Empty model selects the
// default.
func NewOpenRouter(apiKey, model string) *OpenRouter {
	if model == "" {
		model = "google/gemini-flash-1.5"
	}
	model = strings.TrimPrefix(model, "openrouter/")
	return &OpenRouter{
		apiKey:  apiKey,
		model:   model,
		label:   "openrouter/" + model,
		baseURL: openRouterChatURL,
		client:  http.DefaultClient,
	}
}

func (o *OpenRouter) Label() string { return o.label }

// OpenAI-compatible wire types.
type orMessage struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	ToolCallID string `json:"tool_call_id,omitempty"`
	Name       string `json:"name,omitempty"`
}

type orTool struct {
	Type     string     `json:"type"`
	Function orFunction `json:"function"`
}

type orFunction struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

type orRequest struct {
	Model    string      `json:"model"`
	Messages []orMessage `json:"messages"`
	Tools    []orTool    `json:"tools,omitempty"`
}

func (o *OpenRouter) Chat(ctx context.Context, messages []Message, tools []ToolDef) (Response, error) {
	wire := make([]orMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, orMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
			Name:       m.ToolName,
		})
	}

	req := orRequest{Model: o.model, Messages: wire}
	for _, t := range tools {
		req.Tools = append(req.Tools, orTool{
			Type: "function",
			Function: orFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Title", "jarvis")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("openrouter read: %w", err)
	}

	// 401/403 carry the auth signature the chain classifier keys on.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Response{}, fmt.Errorf("openrouter %d unauthorized: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("openrouter %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if errMsg := gjson.GetBytes(raw, "error.message"); errMsg.Exists() {
		return Response{}, fmt.Errorf("openrouter API error: %s", errMsg.String())
	}

	msg := gjson.GetBytes(raw, "choices.0.message")
	if !msg.Exists() {
		return Response{}, fmt.Errorf("openrouter returned no choices")
	}

	if call := msg.Get("tool_calls.0"); call.Exists() {
		args := make(map[string]json.RawMessage)
		argsJSON := call.Get("function.arguments").String()
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			args["input"] = json.RawMessage(argsJSON)
		}
		return Response{
			ToolCall: &ToolCall{
				ID:   call.Get("id").String(),
				Name: call.Get("function.name").String(),
				Args: args,
			},
		}, nil
	}

	return Response{Text: strings.TrimSpace(msg.Get("content").String())}, nil
}

var _ Provider = (*OpenRouter)(nil)
